package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// CategoryProductCount resultado crudo: cantidad de productos activos por categoría.
type CategoryProductCount struct {
	CategoryID   int64
	CategoryName string
	ProductCount int64
}

// CategoryStock resultado crudo: stock total y valorizado por categoría.
type CategoryStock struct {
	CategoryID   int64
	CategoryName string
	TotalStock   int64
	TotalValue   decimal.Decimal // Σ price × stock
}

// AnalyticsRepository consultas de solo lectura para el dashboard.
// Solo consideran categorías, productos y movimientos no eliminados.
type AnalyticsRepository interface {
	// TopCategories categorías activas ordenadas por cantidad de productos activos (desc).
	TopCategories(ctx context.Context, limit int) ([]CategoryProductCount, error)
	// AveragePrice precio promedio de los productos activos de la categoría y cuántos son.
	AveragePrice(ctx context.Context, categoryID int64) (decimal.Decimal, int64, error)
	// StockValue Σ price × stock_quantity de los productos activos.
	StockValue(ctx context.Context) (decimal.Decimal, error)
	// TotalSales Σ |quantity| de los movimientos activos de salida.
	TotalSales(ctx context.Context) (int64, error)
	// StockByCategory solo categorías con stock > 0, ordenadas por stock (desc).
	StockByCategory(ctx context.Context) ([]CategoryStock, error)
}
