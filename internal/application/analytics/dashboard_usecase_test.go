package analytics

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/memory"
)

type captureReport struct {
	got *dto.DashboardSummaryDTO
	err error
}

func (c *captureReport) GenerateStockReport(_ context.Context, s *dto.DashboardSummaryDTO) ([]byte, error) {
	c.got = s
	if c.err != nil {
		return nil, c.err
	}
	return []byte("%PDF-1.4"), nil
}

func seedDashboard(t *testing.T) (*memory.Store, map[string]int64) {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	ids := map[string]int64{}
	for _, name := range []string{"Pinturas", "Herramientas", "Vacía"} {
		c := &entity.Category{Name: name}
		require.NoError(t, s.Categories().Create(ctx, c))
		ids[name] = c.ID
	}
	products := []*entity.Product{
		{Name: "Brocha", Price: decimal.RequireFromString("3.333"), StockQuantity: 3, CategoryID: ids["Pinturas"]},
		{Name: "Martillo", Price: decimal.RequireFromString("10"), StockQuantity: 2, CategoryID: ids["Herramientas"]},
		{Name: "Sierra", Price: decimal.RequireFromString("25"), StockQuantity: 0, CategoryID: ids["Herramientas"]},
	}
	for _, p := range products {
		require.NoError(t, s.Products().Create(ctx, p))
	}
	for _, q := range []int64{5, -1, -1} {
		require.NoError(t, s.Movements().Create(ctx, &entity.StockMovement{Quantity: q, ProductID: products[0].ID}))
	}
	return s, ids
}

func TestAveragePrice(t *testing.T) {
	s, ids := seedDashboard(t)
	uc := NewDashboardUseCase(s, nil)
	ctx := context.Background()

	avg, err := uc.AveragePrice(ctx, ids["Herramientas"])
	require.NoError(t, err)
	assert.Equal(t, int64(2), avg.ProductCount)
	assert.True(t, avg.AveragePrice.Equal(decimal.RequireFromString("17.5")))

	_, err = uc.AveragePrice(ctx, ids["Vacía"])
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.AveragePrice(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSummary(t *testing.T) {
	s, ids := seedDashboard(t)
	uc := NewDashboardUseCase(s, nil)

	sum, err := uc.Summary(context.Background())
	require.NoError(t, err)
	// 3.333*3 = 9.999 + 10*2 = 29.999 → 30.00
	assert.True(t, sum.StockValue.Equal(decimal.RequireFromString("30")), sum.StockValue.String())
	assert.Equal(t, int64(2), sum.TotalSales)
	require.Len(t, sum.TopCategories, 3)
	assert.Equal(t, ids["Herramientas"], sum.TopCategories[0].CategoryID)
	require.Len(t, sum.StockByCategory, 2)
	assert.Equal(t, ids["Pinturas"], sum.StockByCategory[0].CategoryID)
	assert.True(t, sum.StockByCategory[0].TotalValue.Equal(decimal.RequireFromString("10")))
	assert.False(t, sum.GeneratedAt.IsZero())
}

func TestTopCategories_DefaultLimit(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	for i := 0; i < 7; i++ {
		require.NoError(t, s.Categories().Create(ctx, &entity.Category{Name: "c"}))
	}
	top, err := NewDashboardUseCase(s, nil).TopCategories(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, top, 5)
}

func TestStockReportPDF(t *testing.T) {
	s, _ := seedDashboard(t)
	report := &captureReport{}
	uc := NewDashboardUseCase(s, report)

	pdf, err := uc.StockReportPDF(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), pdf)
	require.NotNil(t, report.got)
	assert.Equal(t, int64(2), report.got.TotalSales)

	report.err = errors.New("fuente no disponible")
	_, err = uc.StockReportPDF(context.Background())
	assert.ErrorIs(t, err, domain.ErrStorage)

	_, err = NewDashboardUseCase(s, nil).StockReportPDF(context.Background())
	assert.Error(t, err)
}
