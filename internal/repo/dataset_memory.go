package repo

import (
	"sync"

	"github.com/rogerio-castellano/order-insights/internal/analytics"
	"github.com/rogerio-castellano/order-insights/internal/models"
)

// InMemoryDatasetRepository holds the five tables in process memory. A
// snapshot is rebuilt on demand and never mutated afterwards, so handlers
// may aggregate over it while an import is in flight.
type InMemoryDatasetRepository struct {
	mu sync.RWMutex

	orders       []models.Order
	customers    []models.Customer
	items        []models.OrderItem
	products     []models.Product
	translations []models.CategoryTranslation
}

func NewInMemoryDatasetRepository() *InMemoryDatasetRepository {
	return &InMemoryDatasetRepository{}
}

// Seed loads a pre-assembled dataset, replacing everything held so far.
func (r *InMemoryDatasetRepository) Seed(ds *analytics.Dataset) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = ds.Orders
	r.customers = ds.Customers
	r.items = ds.Items
	r.products = ds.Products
	r.translations = ds.Translations
}

func (r *InMemoryDatasetRepository) Snapshot() (*analytics.Dataset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return analytics.NewDataset(
		append([]models.Order(nil), r.orders...),
		append([]models.Customer(nil), r.customers...),
		append([]models.OrderItem(nil), r.items...),
		append([]models.Product(nil), r.products...),
		append([]models.CategoryTranslation(nil), r.translations...),
	), nil
}

func (r *InMemoryDatasetRepository) Counts() (DatasetCounts, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return DatasetCounts{
		Orders:       len(r.orders),
		Customers:    len(r.customers),
		OrderItems:   len(r.items),
		Products:     len(r.products),
		Translations: len(r.translations),
	}, nil
}

func (r *InMemoryDatasetRepository) StoreOrders(rows []models.Order, mode ImportMode) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = store(r.orders, rows, mode)
	return len(rows), nil
}

func (r *InMemoryDatasetRepository) StoreCustomers(rows []models.Customer, mode ImportMode) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.customers = store(r.customers, rows, mode)
	return len(rows), nil
}

func (r *InMemoryDatasetRepository) StoreOrderItems(rows []models.OrderItem, mode ImportMode) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = store(r.items, rows, mode)
	return len(rows), nil
}

func (r *InMemoryDatasetRepository) StoreProducts(rows []models.Product, mode ImportMode) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = store(r.products, rows, mode)
	return len(rows), nil
}

func (r *InMemoryDatasetRepository) StoreTranslations(rows []models.CategoryTranslation, mode ImportMode) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.translations = store(r.translations, rows, mode)
	return len(rows), nil
}

// Clear drops all rows. Used by tests.
func (r *InMemoryDatasetRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = nil
	r.customers = nil
	r.items = nil
	r.products = nil
	r.translations = nil
}

func store[T any](existing, incoming []T, mode ImportMode) []T {
	if mode == ModeAppend {
		return append(existing, incoming...)
	}
	return append([]T(nil), incoming...)
}
