package csvload

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/rogerio-castellano/order-insights/internal/models"
)

// LoadOrders parses orders_dataset.csv. Rows without an order id are
// rejected; the purchase timestamp must parse.
func LoadOrders(r io.Reader) ([]models.Order, error) {
	reader := csv.NewReader(r)
	idx, err := readHeader(reader, "order_id", "customer_id", "order_purchase_timestamp")
	if err != nil {
		return nil, err
	}

	var orders []models.Order
	err = forEachRecord(reader, func(record []string, rowNum int) error {
		id := idx.get(record, "order_id")
		if id == "" {
			return fmt.Errorf("row %d: missing order_id", rowNum)
		}
		ts, err := parseTimestamp(idx.get(record, "order_purchase_timestamp"))
		if err != nil {
			return fmt.Errorf("row %d: %v", rowNum, err)
		}
		orders = append(orders, models.Order{
			ID:          id,
			CustomerID:  idx.get(record, "customer_id"),
			Status:      idx.get(record, "order_status"),
			PurchasedAt: ts,
		})
		return nil
	})
	return orders, err
}

// LoadCustomers parses customers_dataset.csv.
func LoadCustomers(r io.Reader) ([]models.Customer, error) {
	reader := csv.NewReader(r)
	idx, err := readHeader(reader, "customer_id", "customer_city")
	if err != nil {
		return nil, err
	}

	var customers []models.Customer
	err = forEachRecord(reader, func(record []string, rowNum int) error {
		id := idx.get(record, "customer_id")
		if id == "" {
			return fmt.Errorf("row %d: missing customer_id", rowNum)
		}
		customers = append(customers, models.Customer{
			ID:    id,
			City:  idx.get(record, "customer_city"),
			State: idx.get(record, "customer_state"),
		})
		return nil
	})
	return customers, err
}

// LoadOrderItems parses order_items_dataset.csv.
func LoadOrderItems(r io.Reader) ([]models.OrderItem, error) {
	reader := csv.NewReader(r)
	idx, err := readHeader(reader, "order_id", "product_id")
	if err != nil {
		return nil, err
	}

	var items []models.OrderItem
	err = forEachRecord(reader, func(record []string, rowNum int) error {
		orderID := idx.get(record, "order_id")
		if orderID == "" {
			return fmt.Errorf("row %d: missing order_id", rowNum)
		}
		items = append(items, models.OrderItem{
			OrderID:   orderID,
			ProductID: idx.get(record, "product_id"),
			Price:     parseFloat(idx.get(record, "price")),
		})
		return nil
	})
	return items, err
}

// LoadProducts parses products_dataset.csv. An empty category is kept as-is;
// the aggregation layer decides what to do with uncategorized products.
func LoadProducts(r io.Reader) ([]models.Product, error) {
	reader := csv.NewReader(r)
	idx, err := readHeader(reader, "product_id")
	if err != nil {
		return nil, err
	}

	var products []models.Product
	err = forEachRecord(reader, func(record []string, rowNum int) error {
		id := idx.get(record, "product_id")
		if id == "" {
			return fmt.Errorf("row %d: missing product_id", rowNum)
		}
		products = append(products, models.Product{
			ID:           id,
			CategoryName: idx.get(record, "product_category_name"),
		})
		return nil
	})
	return products, err
}

// LoadTranslations parses product_category_name_translation.csv.
func LoadTranslations(r io.Reader) ([]models.CategoryTranslation, error) {
	reader := csv.NewReader(r)
	idx, err := readHeader(reader, "product_category_name", "product_category_name_english")
	if err != nil {
		return nil, err
	}

	var translations []models.CategoryTranslation
	err = forEachRecord(reader, func(record []string, rowNum int) error {
		name := idx.get(record, "product_category_name")
		if name == "" {
			return fmt.Errorf("row %d: missing product_category_name", rowNum)
		}
		translations = append(translations, models.CategoryTranslation{
			Name:        name,
			NameEnglish: idx.get(record, "product_category_name_english"),
		})
		return nil
	})
	return translations, err
}
