package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rogerio-castellano/order-insights/internal/analytics"
	"github.com/rogerio-castellano/order-insights/internal/models"
)

// PostgresDatasetRepository persists the five tables in Postgres. Imports
// run in a single transaction; replace mode truncates first.
type PostgresDatasetRepository struct {
	db *sql.DB
}

func NewPostgresDatasetRepository(db *sql.DB) *PostgresDatasetRepository {
	return &PostgresDatasetRepository{db: db}
}

const storeTimeout = 60 * time.Second

func (r *PostgresDatasetRepository) Snapshot() (*analytics.Dataset, error) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	orders, err := r.loadOrders(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := r.loadCustomers(ctx)
	if err != nil {
		return nil, err
	}
	items, err := r.loadOrderItems(ctx)
	if err != nil {
		return nil, err
	}
	products, err := r.loadProducts(ctx)
	if err != nil {
		return nil, err
	}
	translations, err := r.loadTranslations(ctx)
	if err != nil {
		return nil, err
	}

	return analytics.NewDataset(orders, customers, items, products, translations), nil
}

func (r *PostgresDatasetRepository) loadOrders(ctx context.Context) ([]models.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT order_id, customer_id, order_status, order_purchase_timestamp FROM orders`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.Status, &o.PurchasedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *PostgresDatasetRepository) loadCustomers(ctx context.Context) ([]models.Customer, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT customer_id, customer_city, customer_state FROM customers`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []models.Customer
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(&c.ID, &c.City, &c.State); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *PostgresDatasetRepository) loadOrderItems(ctx context.Context) ([]models.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT order_id, product_id, price FROM order_items`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var it models.OrderItem
		if err := rows.Scan(&it.OrderID, &it.ProductID, &it.Price); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *PostgresDatasetRepository) loadProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT product_id, COALESCE(product_category_name, '') FROM products`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.CategoryName); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *PostgresDatasetRepository) loadTranslations(ctx context.Context) ([]models.CategoryTranslation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT product_category_name, product_category_name_english FROM category_translations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var translations []models.CategoryTranslation
	for rows.Next() {
		var t models.CategoryTranslation
		if err := rows.Scan(&t.Name, &t.NameEnglish); err != nil {
			return nil, err
		}
		translations = append(translations, t)
	}
	return translations, rows.Err()
}

func (r *PostgresDatasetRepository) Counts() (DatasetCounts, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var c DatasetCounts
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&c.Orders); err != nil {
		return c, err
	}
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers`).Scan(&c.Customers); err != nil {
		return c, err
	}
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM order_items`).Scan(&c.OrderItems); err != nil {
		return c, err
	}
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&c.Products); err != nil {
		return c, err
	}
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM category_translations`).Scan(&c.Translations); err != nil {
		return c, err
	}
	return c, nil
}

func (r *PostgresDatasetRepository) StoreOrders(rows []models.Order, mode ImportMode) (int, error) {
	return r.storeRows("orders", mode, len(rows), func(ctx context.Context, tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO orders (order_id, customer_id, order_status, order_purchase_timestamp)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (order_id) DO UPDATE SET
			   customer_id = EXCLUDED.customer_id,
			   order_status = EXCLUDED.order_status,
			   order_purchase_timestamp = EXCLUDED.order_purchase_timestamp`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, o := range rows {
			if _, err := stmt.ExecContext(ctx, o.ID, o.CustomerID, o.Status, o.PurchasedAt); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PostgresDatasetRepository) StoreCustomers(rows []models.Customer, mode ImportMode) (int, error) {
	return r.storeRows("customers", mode, len(rows), func(ctx context.Context, tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO customers (customer_id, customer_city, customer_state)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (customer_id) DO UPDATE SET
			   customer_city = EXCLUDED.customer_city,
			   customer_state = EXCLUDED.customer_state`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, c := range rows {
			if _, err := stmt.ExecContext(ctx, c.ID, c.City, c.State); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PostgresDatasetRepository) StoreOrderItems(rows []models.OrderItem, mode ImportMode) (int, error) {
	return r.storeRows("order_items", mode, len(rows), func(ctx context.Context, tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO order_items (order_id, product_id, price) VALUES ($1, $2, $3)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, it := range rows {
			if _, err := stmt.ExecContext(ctx, it.OrderID, it.ProductID, it.Price); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PostgresDatasetRepository) StoreProducts(rows []models.Product, mode ImportMode) (int, error) {
	return r.storeRows("products", mode, len(rows), func(ctx context.Context, tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO products (product_id, product_category_name)
			 VALUES ($1, $2)
			 ON CONFLICT (product_id) DO UPDATE SET
			   product_category_name = EXCLUDED.product_category_name`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, p := range rows {
			if _, err := stmt.ExecContext(ctx, p.ID, p.CategoryName); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PostgresDatasetRepository) StoreTranslations(rows []models.CategoryTranslation, mode ImportMode) (int, error) {
	return r.storeRows("category_translations", mode, len(rows), func(ctx context.Context, tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO category_translations (product_category_name, product_category_name_english)
			 VALUES ($1, $2)
			 ON CONFLICT (product_category_name) DO UPDATE SET
			   product_category_name_english = EXCLUDED.product_category_name_english`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, t := range rows {
			if _, err := stmt.ExecContext(ctx, t.Name, t.NameEnglish); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PostgresDatasetRepository) storeRows(table string, mode ImportMode, n int, insert func(context.Context, *sql.Tx) error) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if mode != ModeAppend {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("TRUNCATE %s", table)); err != nil {
			return 0, err
		}
	}
	if err := insert(ctx, tx); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return n, nil
}
