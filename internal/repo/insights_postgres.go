package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rogerio-castellano/order-insights/internal/analytics"
)

// PostgresInsightsRepository answers the dashboard queries in SQL. The
// per-city winner uses DISTINCT ON with the same deterministic ordering as
// the in-memory aggregator: count descending, then category ascending.
type PostgresInsightsRepository struct {
	db *sql.DB
}

func NewPostgresInsightsRepository(db *sql.DB) *PostgresInsightsRepository {
	return &PostgresInsightsRepository{db: db}
}

const queryTimeout = 10 * time.Second

// orderConditions renders an OrderFilter as SQL conditions over the orders
// table alias "o", continuing the placeholder numbering at argIdx.
func orderConditions(f OrderFilter, argIdx int) (string, []any, int) {
	query := ""
	args := []any{}

	if f.Year != nil {
		query += fmt.Sprintf(" AND date_part('year', o.order_purchase_timestamp) = $%d", argIdx)
		args = append(args, *f.Year)
		argIdx++
	}
	if f.Since != nil {
		query += fmt.Sprintf(" AND o.order_purchase_timestamp::date >= $%d::date", argIdx)
		args = append(args, *f.Since)
		argIdx++
	}
	if f.Until != nil {
		query += fmt.Sprintf(" AND o.order_purchase_timestamp::date <= $%d::date", argIdx)
		args = append(args, *f.Until)
		argIdx++
	}
	return query, args, argIdx
}

func (r *PostgresInsightsRepository) TopCities(f OrderFilter, limit int) ([]analytics.CityOrderCount, error) {
	conditions, args, argIdx := orderConditions(f, 1)

	query := `
		SELECT c.customer_city, COUNT(*) AS total_orders
		FROM orders o
		JOIN customers c ON c.customer_id = o.customer_id
		WHERE c.customer_city <> ''` + conditions + fmt.Sprintf(`
		GROUP BY c.customer_city
		ORDER BY total_orders DESC, c.customer_city ASC
		LIMIT $%d`, argIdx)
	args = append(args, limit)

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []analytics.CityOrderCount
	for rows.Next() {
		var row analytics.CityOrderCount
		if err := rows.Scan(&row.City, &row.TotalOrders); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *PostgresInsightsRepository) TopCategories(f OrderFilter, limit int) ([]analytics.CityCategoryCount, error) {
	conditions, args, argIdx := orderConditions(f, 1)

	// Line items without a resolvable category or city never enter the
	// grouping; untranslated category codes fall back to the raw code.
	query := `
		WITH labeled AS (
			SELECT c.customer_city AS city,
			       COALESCE(NULLIF(t.product_category_name_english, ''), p.product_category_name) AS category,
			       COUNT(*) AS total_orders
			FROM order_items oi
			JOIN products p ON p.product_id = oi.product_id
			JOIN orders o ON o.order_id = oi.order_id
			JOIN customers c ON c.customer_id = o.customer_id
			LEFT JOIN category_translations t ON t.product_category_name = p.product_category_name
			WHERE c.customer_city <> ''
			  AND COALESCE(p.product_category_name, '') <> ''` + conditions + `
			GROUP BY 1, 2
		),
		winners AS (
			SELECT DISTINCT ON (city) city, category, total_orders
			FROM labeled
			ORDER BY city, total_orders DESC, category ASC
		)
		SELECT city, category, total_orders
		FROM winners
		ORDER BY total_orders DESC, city ASC` + fmt.Sprintf(`
		LIMIT $%d`, argIdx)
	args = append(args, limit)

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []analytics.CityCategoryCount
	for rows.Next() {
		var row analytics.CityCategoryCount
		if err := rows.Scan(&row.City, &row.Category, &row.TotalOrders); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *PostgresInsightsRepository) Summary(f OrderFilter) (analytics.Summary, error) {
	conditions, args, _ := orderConditions(f, 1)

	query := `
		SELECT COUNT(*) AS total_orders,
		       COUNT(DISTINCT NULLIF(c.customer_city, '')) AS total_cities
		FROM orders o
		LEFT JOIN customers c ON c.customer_id = o.customer_id
		WHERE 1=1` + conditions

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var s analytics.Summary
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&s.TotalOrders, &s.TotalCities); err != nil {
		return analytics.Summary{}, err
	}
	if s.TotalCities > 0 {
		s.AvgOrdersPerCity = float64(s.TotalOrders) / float64(s.TotalCities)
	}
	return s, nil
}
