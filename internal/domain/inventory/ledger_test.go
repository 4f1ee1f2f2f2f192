package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
)

func TestApplyRevert_SonInversos(t *testing.T) {
	stock := inventory.Apply(7, -3)
	assert.Equal(t, int64(4), stock)
	assert.Equal(t, int64(7), inventory.Revert(stock, -3))
}

func TestMove_MismoProducto(t *testing.T) {
	// Stock 10 con un movimiento +4 que pasa a ser -2: 10 - 4 - 2 = 4
	oldR, newR := inventory.Move(10, 4, 10, -2, true)
	assert.Equal(t, int64(4), oldR)
	assert.Equal(t, int64(4), newR)
}

func TestMove_DistintoProducto(t *testing.T) {
	oldR, newR := inventory.Move(10, 4, 1, 5, false)
	assert.Equal(t, int64(6), oldR)
	assert.Equal(t, int64(6), newR)

	oldR, newR = inventory.Move(3, 5, 0, 2, false)
	assert.Equal(t, int64(-2), oldR)
	assert.False(t, inventory.NonNegative(oldR))
	assert.Equal(t, int64(2), newR)
}

func TestSum(t *testing.T) {
	assert.Equal(t, int64(0), inventory.Sum())
	assert.Equal(t, int64(7), inventory.Sum(10, -3))
}
