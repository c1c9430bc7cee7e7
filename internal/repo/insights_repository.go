package repo

import (
	"github.com/rogerio-castellano/order-insights/internal/analytics"
)

// InsightsRepository answers the dashboard queries. The in-memory
// implementation delegates to the analytics package over a snapshot; the
// Postgres implementation pushes the same semantics into SQL.
type InsightsRepository interface {
	TopCities(f OrderFilter, limit int) ([]analytics.CityOrderCount, error)
	TopCategories(f OrderFilter, limit int) ([]analytics.CityCategoryCount, error)
	Summary(f OrderFilter) (analytics.Summary, error)
}
