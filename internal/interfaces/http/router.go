package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/inventario-ledger/internal/application/analytics"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC    *usecase.CategoryUseCase
	ProductUC     *usecase.ProductUseCase
	ImageUC       *usecase.ImageUseCase
	StockMovement *inventory.StockMovementUseCase
	DashboardUC   *appanalytics.DashboardUseCase

	MaxUploadBytes int64
	// ImagesDir y ImagesPath montan los archivos subidos como estáticos (ImagesPath vacío = no se sirven).
	ImagesDir  string
	ImagesPath string
	// Ping verifica el almacenamiento para /health. nil = siempre ok.
	Ping    func(ctx context.Context) error
	AppName string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		if deps.Ping != nil {
			if err := deps.Ping(c.UserContext()); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable", "service": deps.AppName})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	if deps.ImagesPath != "" {
		app.Static(deps.ImagesPath, deps.ImagesDir, fiber.Static{ByteRange: true})
	}

	api := app.Group("/api")

	// Categories
	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.StockMovement)
	imageHandler := NewImageHandler(deps.ImageUC, deps.MaxUploadBytes)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Put("/:id/stock", productHandler.OverrideStock)
	products.Get("/:id/ledger-check", productHandler.LedgerCheck)
	products.Get("/:id/images", imageHandler.ListByProduct)
	products.Post("/:id/images", imageHandler.Upload)

	// Images
	api.Delete("/images/:id", imageHandler.Delete)

	// Stock movements (ledger)
	movements := api.Group("/stock-movements")
	movementHandler := NewStockMovementHandler(deps.StockMovement)
	movements.Get("/", movementHandler.List)
	movements.Post("/", movementHandler.Create)
	movements.Get("/:id", movementHandler.GetByID)
	movements.Put("/:id", movementHandler.Update)
	movements.Delete("/:id", movementHandler.Delete)

	// Dashboard
	dashboard := api.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.GetSummary)
	dashboard.Get("/top-categories", dashboardHandler.GetTopCategories)
	dashboard.Get("/category/:id/average-price", dashboardHandler.GetAveragePrice)
	dashboard.Get("/stock-value", dashboardHandler.GetStockValue)
	dashboard.Get("/sales/total", dashboardHandler.GetTotalSales)
	dashboard.Get("/stock-by-category", dashboardHandler.GetStockByCategory)
	dashboard.Get("/stock-report.pdf", dashboardHandler.GetStockReportPDF)
}
