package models

// OrderItem is one product entry within an order. Counting line items, not
// distinct orders, is intentional: two items of the same order count twice.
type OrderItem struct {
	OrderID   string  `json:"order_id"`
	ProductID string  `json:"product_id"`
	Price     float64 `json:"price,omitempty"`
}
