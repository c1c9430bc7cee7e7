package repo

import (
	"github.com/rogerio-castellano/order-insights/internal/analytics"
	"github.com/rogerio-castellano/order-insights/internal/models"
)

// Dataset names accepted by the import endpoints.
const (
	DatasetOrders       = "orders"
	DatasetCustomers    = "customers"
	DatasetOrderItems   = "order_items"
	DatasetProducts     = "products"
	DatasetTranslations = "category_translations"
)

// ImportMode selects whether an upload replaces a dataset or appends to it.
type ImportMode string

const (
	ModeReplace ImportMode = "replace"
	ModeAppend  ImportMode = "append"
)

// DatasetCounts reports the number of rows held per dataset.
type DatasetCounts struct {
	Orders       int `json:"orders"`
	Customers    int `json:"customers"`
	OrderItems   int `json:"order_items"`
	Products     int `json:"products"`
	Translations int `json:"category_translations"`
}

// DatasetRepository stores the five source tables and hands out read-only
// snapshots for aggregation.
type DatasetRepository interface {
	Snapshot() (*analytics.Dataset, error)
	Counts() (DatasetCounts, error)
	StoreOrders(rows []models.Order, mode ImportMode) (int, error)
	StoreCustomers(rows []models.Customer, mode ImportMode) (int, error)
	StoreOrderItems(rows []models.OrderItem, mode ImportMode) (int, error)
	StoreProducts(rows []models.Product, mode ImportMode) (int, error)
	StoreTranslations(rows []models.CategoryTranslation, mode ImportMode) (int, error)
}
