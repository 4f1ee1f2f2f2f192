package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/inventario-ledger/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve los cuatro agregados del dashboard en una respuesta.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (stock_value, total_sales, top_categories[5],
// stock_by_category, generated_at).
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.Summary(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}

// GetTopCategories GET /api/dashboard/top-categories?limit=5
func (h *DashboardHandler) GetTopCategories(c *fiber.Ctx) error {
	out, err := h.uc.TopCategories(c.UserContext(), c.QueryInt("limit", 5))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetAveragePrice GET /api/dashboard/category/:id/average-price
// 404 si la categoría no existe o no tiene productos activos.
func (h *DashboardHandler) GetAveragePrice(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.AveragePrice(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetStockValue GET /api/dashboard/stock-value
func (h *DashboardHandler) GetStockValue(c *fiber.Ctx) error {
	v, err := h.uc.StockValue(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"stock_value": v})
}

// GetTotalSales GET /api/dashboard/sales/total
func (h *DashboardHandler) GetTotalSales(c *fiber.Ctx) error {
	n, err := h.uc.TotalSales(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"total_sales": n})
}

// GetStockByCategory GET /api/dashboard/stock-by-category
func (h *DashboardHandler) GetStockByCategory(c *fiber.Ctx) error {
	out, err := h.uc.StockByCategory(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetStockReportPDF GET /api/dashboard/stock-report.pdf
func (h *DashboardHandler) GetStockReportPDF(c *fiber.Ctx) error {
	pdf, err := h.uc.StockReportPDF(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="stock-report.pdf"`)
	return c.Send(pdf)
}
