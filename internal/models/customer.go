package models

// Customer carries the city assignment used by the per-city aggregations.
// A customer belongs to exactly one city.
type Customer struct {
	ID    string `json:"customer_id"`
	City  string `json:"customer_city"`
	State string `json:"customer_state,omitempty"`
}
