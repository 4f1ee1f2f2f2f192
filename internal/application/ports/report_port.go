package ports

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
)

// StockReportGenerator genera la representación imprimible (PDF) del inventario valorizado.
type StockReportGenerator interface {
	GenerateStockReport(ctx context.Context, summary *dto.DashboardSummaryDTO) ([]byte, error)
}
