package models

// Product maps a product to its local (untranslated) category code. The code
// may be empty when the source catalog has no category for the product.
type Product struct {
	ID           string `json:"product_id"`
	CategoryName string `json:"product_category_name"`
}
