package dto

import "time"

// StockMovementRequest body para POST y PUT /api/stock-movements.
// Quantity firmado: positivo = entrada, negativo = salida. Date vacío = ahora.
type StockMovementRequest struct {
	ProductID int64     `json:"product_id" validate:"required,gt=0"`
	Quantity  int64     `json:"quantity" validate:"required"`
	Date      time.Time `json:"date"`
}

// StockMovementResponse salida de un movimiento. Product solo con include=product.
type StockMovementResponse struct {
	ID        int64            `json:"id"`
	Quantity  int64            `json:"quantity"`
	Date      time.Time        `json:"date"`
	ProductID int64            `json:"product_id"`
	Product   *ProductResponse `json:"product,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// LedgerCheckResponse resultado de comparar el stock cacheado con la suma del ledger.
type LedgerCheckResponse struct {
	ProductID     int64 `json:"product_id"`
	StockQuantity int64 `json:"stock_quantity"`
	LedgerSum     int64 `json:"ledger_sum"`
	Movements     int   `json:"movements"`
	Consistent    bool  `json:"consistent"`
}
