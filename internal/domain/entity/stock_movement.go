package entity

import "time"

// StockMovement representa un movimiento del ledger de stock.
// Quantity positivo = entrada, negativo = salida.
type StockMovement struct {
	ID        int64
	Quantity  int64
	Date      time.Time
	ProductID int64
	IsDeleted bool
	CreatedAt time.Time
	UpdatedAt time.Time

	Product *Product // solo se llena con include=product
}

// SoftDelete marca el movimiento como eliminado (estado terminal).
func (m *StockMovement) SoftDelete(now time.Time) {
	m.IsDeleted = true
	m.UpdatedAt = now
}
