package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard de inventario.
// Todas filtran filas eliminadas lógicamente.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// TopCategories cuenta productos activos por categoría activa (LEFT JOIN: las vacías cuentan 0).
func (r *AnalyticsRepo) TopCategories(ctx context.Context, limit int) ([]repository.CategoryProductCount, error) {
	const query = `
	SELECT
	    c.id,
	    c.name,
	    COUNT(p.id) AS product_count
	FROM categories c
	LEFT JOIN products p ON p.category_id = c.id AND NOT p.is_deleted
	WHERE NOT c.is_deleted
	GROUP BY c.id, c.name
	ORDER BY product_count DESC, c.id
	LIMIT $1`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.TopCategories: %w", err)
	}
	defer rows.Close()

	results := []repository.CategoryProductCount{}
	for rows.Next() {
		var row repository.CategoryProductCount
		if err := rows.Scan(&row.CategoryID, &row.CategoryName, &row.ProductCount); err != nil {
			return nil, fmt.Errorf("analytics.TopCategories scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// AveragePrice precio promedio y cantidad de productos activos de una categoría activa.
func (r *AnalyticsRepo) AveragePrice(ctx context.Context, categoryID int64) (decimal.Decimal, int64, error) {
	const query = `
	SELECT
	    COALESCE(AVG(p.price), 0) AS avg_price,
	    COUNT(p.id)               AS product_count
	FROM products p
	JOIN categories c ON c.id = p.category_id AND NOT c.is_deleted
	WHERE p.category_id = $1
	  AND NOT p.is_deleted`

	var avg decimal.Decimal
	var n int64
	if err := r.q.QueryRow(ctx, query, categoryID).Scan(&avg, &n); err != nil {
		return decimal.Zero, 0, fmt.Errorf("analytics.AveragePrice: %w", err)
	}
	return avg, n, nil
}

// StockValue Σ price × stock_quantity de los productos activos.
func (r *AnalyticsRepo) StockValue(ctx context.Context) (decimal.Decimal, error) {
	const query = `
	SELECT COALESCE(SUM(price * stock_quantity), 0)
	FROM products
	WHERE NOT is_deleted`

	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("analytics.StockValue: %w", err)
	}
	return total, nil
}

// TotalSales Σ |quantity| de los movimientos activos de salida.
func (r *AnalyticsRepo) TotalSales(ctx context.Context) (int64, error) {
	const query = `
	SELECT COALESCE(SUM(ABS(quantity)), 0)::BIGINT
	FROM stock_movements
	WHERE quantity < 0
	  AND NOT is_deleted`

	var total int64
	if err := r.q.QueryRow(ctx, query).Scan(&total); err != nil {
		return 0, fmt.Errorf("analytics.TotalSales: %w", err)
	}
	return total, nil
}

// StockByCategory stock total y valorizado por categoría; solo categorías con stock > 0.
func (r *AnalyticsRepo) StockByCategory(ctx context.Context) ([]repository.CategoryStock, error) {
	const query = `
	SELECT
	    c.id,
	    c.name,
	    SUM(p.stock_quantity)::BIGINT    AS total_stock,
	    SUM(p.price * p.stock_quantity)  AS total_value
	FROM products p
	JOIN categories c ON c.id = p.category_id AND NOT c.is_deleted
	WHERE NOT p.is_deleted
	GROUP BY c.id, c.name
	HAVING SUM(p.stock_quantity) > 0
	ORDER BY total_stock DESC, c.id`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.StockByCategory: %w", err)
	}
	defer rows.Close()

	results := []repository.CategoryStock{}
	for rows.Next() {
		var row repository.CategoryStock
		if err := rows.Scan(&row.CategoryID, &row.CategoryName, &row.TotalStock, &row.TotalValue); err != nil {
			return nil, fmt.Errorf("analytics.StockByCategory scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
