package inventory

// Servicio de dominio del ledger de stock. Funciones puras, sin acceso a datos:
// los casos de uso las aplican sobre filas ya bloqueadas dentro de la transacción.

// Apply devuelve el stock tras aplicar un movimiento firmado.
func Apply(stock, quantity int64) int64 {
	return stock + quantity
}

// Revert devuelve el stock tras deshacer un movimiento previamente aplicado.
func Revert(stock, quantity int64) int64 {
	return stock - quantity
}

// NonNegative reporta si un stock resultante respeta la regla de no-negatividad.
func NonNegative(stock int64) bool {
	return stock >= 0
}

// Move calcula el stock de los productos origen y destino cuando un movimiento cambia
// de (oldProduct, oldQty) a (newProduct, newQty). Si es el mismo producto, ambos
// valores devueltos son iguales y reflejan revert + apply sobre la misma fila.
func Move(oldStock, oldQty int64, newStock, newQty int64, sameProduct bool) (oldResult, newResult int64) {
	if sameProduct {
		r := Apply(Revert(oldStock, oldQty), newQty)
		return r, r
	}
	return Revert(oldStock, oldQty), Apply(newStock, newQty)
}

// Sum suma firmada de cantidades; es el valor que StockQuantity debe reflejar.
func Sum(quantities ...int64) int64 {
	var total int64
	for _, q := range quantities {
		total += q
	}
	return total
}
