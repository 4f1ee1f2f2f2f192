package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRequest entrada para crear o actualizar un producto.
// En actualización sobreescribe todos los campos, incluido StockQuantity (ajuste administrativo).
type ProductRequest struct {
	Name          string          `json:"name" validate:"required,max=200"`
	Description   string          `json:"description" validate:"max=2000"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int64           `json:"stock_quantity" validate:"min=0"`
	CategoryID    int64           `json:"category_id" validate:"required,gt=0"`
}

// StockOverrideRequest body para PUT /api/products/:id/stock.
type StockOverrideRequest struct {
	StockQuantity *int64 `json:"stock_quantity" validate:"required,min=0"`
}

// ProductResponse salida de un producto. Category e Images solo si se pidieron con include.
type ProductResponse struct {
	ID            int64             `json:"id"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	Price         decimal.Decimal   `json:"price"`
	StockQuantity int64             `json:"stock_quantity"`
	CategoryID    int64             `json:"category_id"`
	Category      *CategoryResponse `json:"category,omitempty"`
	Images        []ImageResponse   `json:"images,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// CreateProductResponse respuesta de alta: el ID se expone aparte para subir imágenes.
type CreateProductResponse struct {
	ProductID int64           `json:"product_id"`
	Product   ProductResponse `json:"product"`
}

// DeleteProductResponse resultado del borrado lógico en cascada.
type DeleteProductResponse struct {
	Message               string `json:"message"`
	DeletedStockMovements int64  `json:"deleted_stock_movements"`
	DeletedImages         int64  `json:"deleted_images"`
}
