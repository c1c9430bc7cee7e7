package repo

import (
	"time"

	"github.com/rogerio-castellano/order-insights/internal/models"
)

// OrderFilter restricts insight queries to a purchase-date window. Since and
// Until are inclusive at day granularity, matching how the dashboard's date
// picker behaves. Year is a shorthand for a whole calendar year.
type OrderFilter struct {
	Since *time.Time
	Until *time.Time
	Year  *int
}

// IsZero reports whether the filter places no restriction at all.
func (f OrderFilter) IsZero() bool {
	return f.Since == nil && f.Until == nil && f.Year == nil
}

// Matches reports whether an order's purchase timestamp falls inside the
// window.
func (f OrderFilter) Matches(o models.Order) bool {
	if f.Year != nil && o.PurchasedAt.Year() != *f.Year {
		return false
	}
	day := o.PurchasedAt.Truncate(24 * time.Hour)
	if f.Since != nil && day.Before(f.Since.Truncate(24*time.Hour)) {
		return false
	}
	if f.Until != nil && day.After(f.Until.Truncate(24*time.Hour)) {
		return false
	}
	return true
}
