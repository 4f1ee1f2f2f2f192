// Package analytics contiene los casos de uso del Dashboard de inventario:
// agregados de stock, valorización y salidas sobre los datos activos.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/ports"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

const dashboardTopCategories = 5 // número de categorías en el widget del dashboard

// DashboardUseCase genera los agregados del dashboard.
//
// Fuente de datos: AnalyticsRepository (consultas read-only) y CategoryRepository para validar IDs.
// No cachea: los valores reflejan el stock confirmado al momento de la consulta.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	categoryRepo  repository.CategoryRepository
	report        ports.StockReportGenerator
}

// NewDashboardUseCase construye el caso de uso. report puede ser nil si no se expone el PDF.
func NewDashboardUseCase(store repository.Store, report ports.StockReportGenerator) *DashboardUseCase {
	return &DashboardUseCase{
		analyticsRepo: store.Analytics(),
		categoryRepo:  store.Categories(),
		report:        report,
	}
}

// TopCategories categorías activas con más productos activos. limit <= 0 usa 5.
func (uc *DashboardUseCase) TopCategories(ctx context.Context, limit int) ([]dto.TopCategoryDTO, error) {
	if limit <= 0 {
		limit = dashboardTopCategories
	}
	rows, err := uc.analyticsRepo.TopCategories(ctx, limit)
	if err != nil {
		return nil, domain.Storage("dashboard: top categorías", err)
	}
	out := make([]dto.TopCategoryDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TopCategoryDTO{
			CategoryID:   r.CategoryID,
			CategoryName: r.CategoryName,
			ProductCount: r.ProductCount,
		})
	}
	return out, nil
}

// AveragePrice precio promedio de los productos activos de la categoría.
// NotFound si la categoría no existe (o fue eliminada) o no tiene productos.
func (uc *DashboardUseCase) AveragePrice(ctx context.Context, categoryID int64) (*dto.AveragePriceDTO, error) {
	c, err := uc.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, domain.Storage("dashboard: obtener categoría", err)
	}
	if c == nil || c.IsDeleted {
		return nil, domain.NotFound("categoría no encontrada")
	}
	avg, n, err := uc.analyticsRepo.AveragePrice(ctx, categoryID)
	if err != nil {
		return nil, domain.Storage("dashboard: precio promedio", err)
	}
	if n == 0 {
		return nil, domain.NotFound("la categoría no tiene productos")
	}
	return &dto.AveragePriceDTO{
		CategoryID:   categoryID,
		AveragePrice: avg.Round(2),
		ProductCount: n,
	}, nil
}

// StockValue Σ price × stock de los productos activos.
func (uc *DashboardUseCase) StockValue(ctx context.Context) (decimal.Decimal, error) {
	v, err := uc.analyticsRepo.StockValue(ctx)
	if err != nil {
		return decimal.Zero, domain.Storage("dashboard: valor del stock", err)
	}
	return v.Round(2), nil
}

// TotalSales unidades salidas: Σ |quantity| de los movimientos activos negativos.
func (uc *DashboardUseCase) TotalSales(ctx context.Context) (int64, error) {
	n, err := uc.analyticsRepo.TotalSales(ctx)
	if err != nil {
		return 0, domain.Storage("dashboard: ventas totales", err)
	}
	return n, nil
}

// StockByCategory stock y valorización por categoría (solo categorías con stock > 0).
func (uc *DashboardUseCase) StockByCategory(ctx context.Context) ([]dto.CategoryStockDTO, error) {
	rows, err := uc.analyticsRepo.StockByCategory(ctx)
	if err != nil {
		return nil, domain.Storage("dashboard: stock por categoría", err)
	}
	out := make([]dto.CategoryStockDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.CategoryStockDTO{
			CategoryID:   r.CategoryID,
			CategoryName: r.CategoryName,
			TotalStock:   r.TotalStock,
			TotalValue:   r.TotalValue.Round(2),
		})
	}
	return out, nil
}

// Summary construye el DashboardSummaryDTO.
//
// Cuatro consultas en paralelo:
//  1. StockValue       → StockValue
//  2. TotalSales       → TotalSales
//  3. TopCategories(5) → TopCategories
//  4. StockByCategory  → StockByCategory
func (uc *DashboardUseCase) Summary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	type valueResult struct {
		value decimal.Decimal
		err   error
	}
	type salesResult struct {
		total int64
		err   error
	}
	type topResult struct {
		items []dto.TopCategoryDTO
		err   error
	}
	type stockResult struct {
		items []dto.CategoryStockDTO
		err   error
	}

	valueCh := make(chan valueResult, 1)
	salesCh := make(chan salesResult, 1)
	topCh := make(chan topResult, 1)
	stockCh := make(chan stockResult, 1)

	go func() {
		v, err := uc.StockValue(ctx)
		valueCh <- valueResult{v, err}
	}()
	go func() {
		n, err := uc.TotalSales(ctx)
		salesCh <- salesResult{n, err}
	}()
	go func() {
		items, err := uc.TopCategories(ctx, dashboardTopCategories)
		topCh <- topResult{items, err}
	}()
	go func() {
		items, err := uc.StockByCategory(ctx)
		stockCh <- stockResult{items, err}
	}()

	value := <-valueCh
	sales := <-salesCh
	top := <-topCh
	stock := <-stockCh

	for _, err := range []error{value.err, sales.err, top.err, stock.err} {
		if err != nil {
			return nil, err
		}
	}

	return &dto.DashboardSummaryDTO{
		StockValue:      value.value,
		TotalSales:      sales.total,
		TopCategories:   top.items,
		StockByCategory: stock.items,
		GeneratedAt:     time.Now().UTC(),
	}, nil
}

// StockReportPDF genera el reporte imprimible a partir del Summary actual.
func (uc *DashboardUseCase) StockReportPDF(ctx context.Context) ([]byte, error) {
	if uc.report == nil {
		return nil, fmt.Errorf("dashboard: generador de reportes no configurado")
	}
	summary, err := uc.Summary(ctx)
	if err != nil {
		return nil, err
	}
	pdf, err := uc.report.GenerateStockReport(ctx, summary)
	if err != nil {
		return nil, domain.Storage("dashboard: generar PDF", err)
	}
	return pdf, nil
}
