package models

import "time"

// Order links a purchase to the customer that placed it. One order may
// carry several line items.
type Order struct {
	ID          string    `json:"order_id"`
	CustomerID  string    `json:"customer_id"`
	Status      string    `json:"order_status,omitempty"`
	PurchasedAt time.Time `json:"order_purchase_timestamp"`
}
