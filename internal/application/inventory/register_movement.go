package inventory

import "github.com/jhoicas/inventario-ledger/internal/application/dto"

// MovementInputFromRequest adapta el body HTTP a MovementInput.
// Usar desde handlers HTTP o desde otros casos de uso que reciban dto.StockMovementRequest.
func MovementInputFromRequest(in dto.StockMovementRequest) MovementInput {
	return MovementInput{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Date:      in.Date.UTC(),
	}
}
