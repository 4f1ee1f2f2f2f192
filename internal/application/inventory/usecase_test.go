package inventory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/usecase"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

type fixture struct {
	ctx        context.Context
	store      *memory.Store
	ledger     *StockMovementUseCase
	products   *usecase.ProductUseCase
	category   *usecase.CategoryUseCase
	categoryID int64
}

func newFixture(t *testing.T, policy LedgerPolicy) *fixture {
	t.Helper()
	store := memory.NewStore()
	f := &fixture{
		ctx:      context.Background(),
		store:    store,
		ledger:   NewStockMovementUseCase(store, policy, logger.Nop()),
		products: usecase.NewProductUseCase(store, logger.Nop()),
		category: usecase.NewCategoryUseCase(store),
	}
	c, err := f.category.Create(f.ctx, dto.CategoryRequest{Name: "Ferretería"})
	require.NoError(t, err)
	f.categoryID = c.ID
	return f
}

func (f *fixture) product(t *testing.T, stock int64) int64 {
	t.Helper()
	p, err := f.products.Create(f.ctx, dto.ProductRequest{
		Name:          "Tornillo",
		Price:         decimal.RequireFromString("1.25"),
		StockQuantity: stock,
		CategoryID:    f.categoryID,
	})
	require.NoError(t, err)
	return p.ID
}

func (f *fixture) stock(t *testing.T, productID int64) int64 {
	t.Helper()
	p, err := f.store.Products().GetByID(f.ctx, productID)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.StockQuantity
}

func (f *fixture) move(t *testing.T, productID, qty int64) int64 {
	t.Helper()
	m, err := f.ledger.Create(f.ctx, MovementInput{ProductID: productID, Quantity: qty})
	require.NoError(t, err)
	return m.ID
}

func (f *fixture) assertConsistent(t *testing.T, productID int64) {
	t.Helper()
	check, err := f.ledger.CheckConsistency(f.ctx, productID)
	require.NoError(t, err)
	assert.True(t, check.Consistent, "stock=%d ledger=%d", check.StockQuantity, check.LedgerSum)
}

func TestCreateUpdateDelete_KeepsStockEqualToLedger(t *testing.T) {
	f := newFixture(t, LedgerPolicy{})
	a := f.product(t, 0)
	b := f.product(t, 0)

	m1 := f.move(t, a, 10)
	f.assertConsistent(t, a)
	m2 := f.move(t, a, -4)
	f.assertConsistent(t, a)

	_, err := f.ledger.Update(f.ctx, m2, MovementInput{ProductID: a, Quantity: -1})
	require.NoError(t, err)
	assert.Equal(t, int64(9), f.stock(t, a))
	f.assertConsistent(t, a)

	// Reasignar a otro producto revierte en el origen y aplica en el destino.
	_, err = f.ledger.Update(f.ctx, m1, MovementInput{ProductID: b, Quantity: 6})
	require.NoError(t, err)
	assert.Equal(t, int64(-1), f.stock(t, a))
	assert.Equal(t, int64(6), f.stock(t, b))
	f.assertConsistent(t, a)
	f.assertConsistent(t, b)

	require.NoError(t, f.ledger.Delete(f.ctx, m2))
	assert.Equal(t, int64(0), f.stock(t, a))
	f.assertConsistent(t, a)
}

func TestMovements_AdjustAndRevertStock(t *testing.T) {
	f := newFixture(t, LedgerPolicy{})
	p := f.product(t, 0)

	f.move(t, p, 10)
	assert.Equal(t, int64(10), f.stock(t, p))
	out := f.move(t, p, -3)
	assert.Equal(t, int64(7), f.stock(t, p))

	require.NoError(t, f.ledger.Delete(f.ctx, out))
	assert.Equal(t, int64(10), f.stock(t, p))
}

func TestDelete_ToZeroThenNotFound(t *testing.T) {
	f := newFixture(t, LedgerPolicy{})
	p := f.product(t, 0)
	m := f.move(t, p, 5)

	require.NoError(t, f.ledger.Delete(f.ctx, m))
	assert.Equal(t, int64(0), f.stock(t, p))

	err := f.ledger.Delete(f.ctx, m)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.ledger.Get(f.ctx, m, false)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_AllowsNegativeByDefault(t *testing.T) {
	f := newFixture(t, LedgerPolicy{})
	p := f.product(t, 0)
	f.move(t, p, 2)
	f.move(t, p, -5)
	assert.Equal(t, int64(-3), f.stock(t, p))
	f.assertConsistent(t, p)
}

func TestStrictCreate_RejectsNegative(t *testing.T) {
	f := newFixture(t, LedgerPolicy{StrictCreate: true})
	p := f.product(t, 0)
	f.move(t, p, 2)

	_, err := f.ledger.Create(f.ctx, MovementInput{ProductID: p, Quantity: -5})
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.ErrorIs(t, err, domain.ErrNegativeStock)
	assert.Equal(t, int64(2), f.stock(t, p))

	list, err := f.ledger.List(f.ctx, false)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestStrictUpdate_RejectsNegativeOnEitherProduct(t *testing.T) {
	f := newFixture(t, LedgerPolicy{StrictUpdate: true})
	a := f.product(t, 0)
	b := f.product(t, 0)
	m := f.move(t, a, 4)
	f.move(t, a, -2)

	// Mover +4 de a hacia b deja a en -2.
	_, err := f.ledger.Update(f.ctx, m, MovementInput{ProductID: b, Quantity: 4})
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, int64(2), f.stock(t, a))
	assert.Equal(t, int64(0), f.stock(t, b))

	_, err = f.ledger.Update(f.ctx, m, MovementInput{ProductID: a, Quantity: 1})
	require.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.ledger.Update(f.ctx, m, MovementInput{ProductID: a, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(1), f.stock(t, a))
}

func TestDelete_RejectsNegativeReversal(t *testing.T) {
	f := newFixture(t, LedgerPolicy{})
	p := f.product(t, 0)
	in := f.move(t, p, 5)
	f.move(t, p, -4)

	err := f.ledger.Delete(f.ctx, in)
	require.ErrorIs(t, err, domain.ErrNegativeStock)
	assert.Equal(t, int64(1), f.stock(t, p))

	got, err := f.ledger.Get(f.ctx, in, false)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.Quantity)
}

func TestDelete_OnDeletedProductLeavesStockFrozen(t *testing.T) {
	f := newFixture(t, LedgerPolicy{})
	p := f.product(t, 0)
	m := f.move(t, p, 5)

	// El borrado del producto arrastra sus movimientos.
	res, err := f.products.Delete(f.ctx, p)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.DeletedStockMovements)

	err = f.ledger.Delete(f.ctx, m)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	deleted, _ := f.store.Products().GetByID(f.ctx, p)
	assert.True(t, deleted.IsDeleted)
	assert.Equal(t, int64(5), deleted.StockQuantity)
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture(t, LedgerPolicy{})
	p := f.product(t, 0)

	_, err := f.ledger.Create(f.ctx, MovementInput{ProductID: p, Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.ledger.Create(f.ctx, MovementInput{ProductID: 999, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.products.Delete(f.ctx, p)
	require.NoError(t, err)
	_, err = f.ledger.Create(f.ctx, MovementInput{ProductID: p, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_DefaultsDateToNow(t *testing.T) {
	f := newFixture(t, LedgerPolicy{})
	p := f.product(t, 0)
	before := time.Now().UTC().Add(-time.Second)

	m, err := f.ledger.Create(f.ctx, MovementInput{ProductID: p, Quantity: 1})
	require.NoError(t, err)
	assert.True(t, m.Date.After(before))

	date := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	m, err = f.ledger.Create(f.ctx, MovementInput{ProductID: p, Quantity: 1, Date: date})
	require.NoError(t, err)
	assert.True(t, m.Date.Equal(date))
}

func TestUpdate_MissingMovementOrProduct(t *testing.T) {
	f := newFixture(t, LedgerPolicy{})
	p := f.product(t, 0)
	m := f.move(t, p, 3)

	_, err := f.ledger.Update(f.ctx, 12345, MovementInput{ProductID: p, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.ledger.Update(f.ctx, m, MovementInput{ProductID: 999, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, int64(3), f.stock(t, p))
}

func TestList_WithProduct(t *testing.T) {
	f := newFixture(t, LedgerPolicy{})
	p := f.product(t, 0)
	f.move(t, p, 1)

	list, err := f.ledger.List(f.ctx, true)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Product)
	assert.Equal(t, p, list[0].Product.ID)

	list, err = f.ledger.List(f.ctx, false)
	require.NoError(t, err)
	assert.Nil(t, list[0].Product)
}

func TestConcurrentMovements_NoLostUpdates(t *testing.T) {
	f := newFixture(t, LedgerPolicy{})
	p := f.product(t, 0)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			qty := int64(1)
			if i%2 == 0 {
				qty = 2
			}
			_, err := f.ledger.Create(f.ctx, MovementInput{ProductID: p, Quantity: qty})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(75), f.stock(t, p))
	f.assertConsistent(t, p)
}

func TestMovementInputFromRequest(t *testing.T) {
	bogota := time.FixedZone("COT", -5*3600)
	in := MovementInputFromRequest(dto.StockMovementRequest{
		ProductID: 3,
		Quantity:  -2,
		Date:      time.Date(2024, 1, 1, 7, 0, 0, 0, bogota),
	})
	assert.Equal(t, int64(3), in.ProductID)
	assert.Equal(t, int64(-2), in.Quantity)
	assert.Equal(t, time.UTC, in.Date.Location())
	assert.Equal(t, 12, in.Date.Hour())
}
