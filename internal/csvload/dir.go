package csvload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rogerio-castellano/order-insights/internal/analytics"
)

// Dataset file names as shipped in the Olist export.
const (
	OrdersFile       = "orders_dataset.csv"
	CustomersFile    = "customers_dataset.csv"
	OrderItemsFile   = "order_items_dataset.csv"
	ProductsFile     = "products_dataset.csv"
	TranslationsFile = "product_category_name_translation.csv"
)

// LoadDir reads the five dataset files from dir and assembles a Dataset
// snapshot. All five files must be present.
func LoadDir(dir string) (*analytics.Dataset, error) {
	orders, err := loadFile(dir, OrdersFile, LoadOrders)
	if err != nil {
		return nil, err
	}
	customers, err := loadFile(dir, CustomersFile, LoadCustomers)
	if err != nil {
		return nil, err
	}
	items, err := loadFile(dir, OrderItemsFile, LoadOrderItems)
	if err != nil {
		return nil, err
	}
	products, err := loadFile(dir, ProductsFile, LoadProducts)
	if err != nil {
		return nil, err
	}
	translations, err := loadFile(dir, TranslationsFile, LoadTranslations)
	if err != nil {
		return nil, err
	}

	return analytics.NewDataset(orders, customers, items, products, translations), nil
}

func loadFile[T any](dir, name string, load func(r io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	rows, err := load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return rows, nil
}
