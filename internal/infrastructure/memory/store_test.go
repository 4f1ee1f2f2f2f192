package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

func seed(t *testing.T, s *Store) (*entity.Category, *entity.Product) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()
	c := &entity.Category{Name: "Herramientas", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, s.Categories().Create(ctx, c))
	p := &entity.Product{Name: "Martillo", Price: decimal.NewFromInt(10), StockQuantity: 5, CategoryID: c.ID, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, s.Products().Create(ctx, p))
	return c, p
}

func TestRun_CommitPublishesChanges(t *testing.T) {
	s := NewStore()
	_, p := seed(t, s)
	ctx := context.Background()

	err := s.Run(ctx, func(r repository.TxRepos) error {
		got, err := r.Products().GetForUpdate(ctx, p.ID)
		require.NoError(t, err)
		got.StockQuantity = 42
		return r.Products().Update(ctx, got)
	})
	require.NoError(t, err)

	got, err := s.Products().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.StockQuantity)
}

func TestRun_RollbackDiscardsEveryWrite(t *testing.T) {
	s := NewStore()
	_, p := seed(t, s)
	ctx := context.Background()
	boom := errors.New("boom")

	var movementID int64
	err := s.Run(ctx, func(r repository.TxRepos) error {
		m := &entity.StockMovement{Quantity: 3, ProductID: p.ID, Date: time.Now().UTC()}
		require.NoError(t, r.Movements().Create(ctx, m))
		movementID = m.ID
		got, _ := r.Products().GetForUpdate(ctx, p.ID)
		got.StockQuantity += 3
		require.NoError(t, r.Products().Update(ctx, got))
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, _ := s.Products().GetByID(ctx, p.ID)
	assert.Equal(t, int64(5), got.StockQuantity)
	m, _ := s.Movements().GetByID(ctx, movementID)
	assert.Nil(t, m)

	// Los IDs no se reutilizan tras un rollback.
	next := &entity.StockMovement{Quantity: 1, ProductID: p.ID}
	require.NoError(t, s.Movements().Create(ctx, next))
	assert.Greater(t, next.ID, movementID)
}

func TestRun_CanceledContextDoesNotCommit(t *testing.T) {
	s := NewStore()
	_, p := seed(t, s)
	ctx, cancel := context.WithCancel(context.Background())

	err := s.Run(ctx, func(r repository.TxRepos) error {
		got, _ := r.Products().GetForUpdate(ctx, p.ID)
		got.StockQuantity = 0
		require.NoError(t, r.Products().Update(ctx, got))
		cancel()
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)

	got, _ := s.Products().GetByID(context.Background(), p.ID)
	assert.Equal(t, int64(5), got.StockQuantity)
}

func TestReturnedEntitiesAreCopies(t *testing.T) {
	s := NewStore()
	_, p := seed(t, s)
	ctx := context.Background()

	got, _ := s.Products().GetByID(ctx, p.ID)
	got.StockQuantity = 999
	again, _ := s.Products().GetByID(ctx, p.ID)
	assert.Equal(t, int64(5), again.StockQuantity)
}

func TestGetByID_MissingReturnsNil(t *testing.T) {
	s := NewStore()
	got, err := s.Categories().GetByID(context.Background(), 77)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCreate_ForeignKeyEnforced(t *testing.T) {
	s := NewStore()
	err := s.Products().Create(context.Background(), &entity.Product{Name: "x", CategoryID: 9})
	assert.Error(t, err)
}

func TestSoftDeleteByProduct_CountsOnlyActive(t *testing.T) {
	s := NewStore()
	_, p := seed(t, s)
	ctx := context.Background()
	now := time.Now().UTC()

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Movements().Create(ctx, &entity.StockMovement{Quantity: 1, ProductID: p.ID}))
	}
	n, err := s.Movements().SoftDeleteByProduct(ctx, p.ID, now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	n, err = s.Movements().SoftDeleteByProduct(ctx, p.ID, now)
	require.NoError(t, err)
	assert.Zero(t, n)

	active, _ := s.Movements().ListActiveByProduct(ctx, p.ID)
	assert.Empty(t, active)
}

func TestListActive_OrderedByIDAndFiltersDeleted(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, s.Categories().Create(ctx, &entity.Category{Name: name}))
	}
	b, _ := s.Categories().GetByID(ctx, 2)
	b.SoftDelete(time.Now().UTC())
	require.NoError(t, s.Categories().Update(ctx, b))

	list, err := s.Categories().ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].Name)
	assert.Equal(t, "c", list[1].Name)
}

func TestAnalytics(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	tools := &entity.Category{Name: "Herramientas"}
	paint := &entity.Category{Name: "Pintura"}
	empty := &entity.Category{Name: "Vacía"}
	for _, c := range []*entity.Category{tools, paint, empty} {
		require.NoError(t, s.Categories().Create(ctx, c))
	}
	products := []*entity.Product{
		{Name: "Martillo", Price: decimal.RequireFromString("10.50"), StockQuantity: 4, CategoryID: tools.ID},
		{Name: "Llave", Price: decimal.RequireFromString("20.00"), StockQuantity: 1, CategoryID: tools.ID},
		{Name: "Rodillo", Price: decimal.RequireFromString("5.00"), StockQuantity: 10, CategoryID: paint.ID},
		{Name: "Borrado", Price: decimal.RequireFromString("100"), StockQuantity: 100, CategoryID: paint.ID, IsDeleted: true},
	}
	for _, p := range products {
		require.NoError(t, s.Products().Create(ctx, p))
	}
	for _, q := range []int64{-2, -3, 7} {
		require.NoError(t, s.Movements().Create(ctx, &entity.StockMovement{Quantity: q, ProductID: products[0].ID}))
	}
	require.NoError(t, s.Movements().Create(ctx, &entity.StockMovement{Quantity: -50, ProductID: products[0].ID, IsDeleted: true}))

	a := s.Analytics()

	top, err := a.TopCategories(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, tools.ID, top[0].CategoryID)
	assert.Equal(t, int64(2), top[0].ProductCount)
	assert.Equal(t, int64(1), top[1].ProductCount)

	avg, n, err := a.AveragePrice(ctx, tools.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.True(t, avg.Equal(decimal.RequireFromString("15.25")), avg.String())

	_, n, err = a.AveragePrice(ctx, empty.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	value, err := a.StockValue(ctx)
	require.NoError(t, err)
	// 10.50*4 + 20*1 + 5*10
	assert.True(t, value.Equal(decimal.RequireFromString("112")), value.String())

	sales, err := a.TotalSales(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), sales)

	byCat, err := a.StockByCategory(ctx)
	require.NoError(t, err)
	require.Len(t, byCat, 2)
	assert.Equal(t, paint.ID, byCat[0].CategoryID)
	assert.Equal(t, int64(10), byCat[0].TotalStock)
	assert.Equal(t, int64(5), byCat[1].TotalStock)
	assert.True(t, byCat[1].TotalValue.Equal(decimal.RequireFromString("62")))
}
