package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario.
// StockQuantity es un caché desnormalizado: la suma firmada de sus StockMovement activos.
type Product struct {
	ID            int64
	Name          string
	Description   string
	Price         decimal.Decimal // precio de venta, nunca negativo
	StockQuantity int64
	CategoryID    int64
	IsDeleted     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Relaciones opcionales; solo se llenan cuando el caller las pide (ver ProductInclude).
	Category *Category
	Images   []*Image
}

// ProductInclude indica qué relaciones cargar en las lecturas de productos.
type ProductInclude struct {
	Category bool
	Images   bool
}

// SoftDelete marca el producto como eliminado. El stock queda congelado.
func (p *Product) SoftDelete(now time.Time) {
	p.IsDeleted = true
	p.UpdatedAt = now
}
