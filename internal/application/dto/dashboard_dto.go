package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TopCategoryDTO categoría con su cantidad de productos activos.
type TopCategoryDTO struct {
	CategoryID   int64  `json:"category_id"`
	CategoryName string `json:"category_name"`
	ProductCount int64  `json:"product_count"`
}

// AveragePriceDTO precio promedio de los productos de una categoría.
type AveragePriceDTO struct {
	CategoryID   int64           `json:"category_id"`
	AveragePrice decimal.Decimal `json:"average_price"`
	ProductCount int64           `json:"product_count"`
}

// CategoryStockDTO stock total y valorizado de una categoría.
type CategoryStockDTO struct {
	CategoryID   int64           `json:"category_id"`
	CategoryName string          `json:"category_name"`
	TotalStock   int64           `json:"total_stock"`
	TotalValue   decimal.Decimal `json:"total_value"`
}

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	StockValue      decimal.Decimal    `json:"stock_value"` // Σ price × stock
	TotalSales      int64              `json:"total_sales"` // unidades salidas
	TopCategories   []TopCategoryDTO   `json:"top_categories"`
	StockByCategory []CategoryStockDTO `json:"stock_by_category"`
	GeneratedAt     time.Time          `json:"generated_at"`
}
