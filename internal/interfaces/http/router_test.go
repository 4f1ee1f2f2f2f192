package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/inventario-ledger/internal/application/analytics"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/application/usecase"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/inventario-ledger/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/inventario-ledger/internal/interfaces/http"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp arma la API completa sobre el store en memoria y un directorio temporal de imágenes.
func buildTestApp(t *testing.T, policy inventory.LedgerPolicy) *fiber.App {
	t.Helper()
	log := logger.Nop()
	store := memory.NewStore()
	files, err := storage.NewLocalStorage(t.TempDir(), "/images")
	require.NoError(t, err)

	app := fiber.New()
	app.Use(apphttp.RequestLogger(log))
	apphttp.Router(app, apphttp.RouterDeps{
		CategoryUC:     usecase.NewCategoryUseCase(store),
		ProductUC:      usecase.NewProductUseCase(store, log),
		ImageUC:        usecase.NewImageUseCase(store, files, log, 1024),
		StockMovement:  inventory.NewStockMovementUseCase(store, policy, log),
		DashboardUC:    appanalytics.NewDashboardUseCase(store, infrapdf.NewStockReportGenerator("test")),
		MaxUploadBytes: 1024,
		ImagesDir:      files.Dir(),
		ImagesPath:     "/images",
		AppName:        "test",
	})
	return app
}

// doJSON ejecuta la petición y decodifica la respuesta en out (si no es nil).
func doJSON(t *testing.T, app *fiber.App, method, path string, body any, out any) int {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type idBody struct {
	ID int64 `json:"id"`
}

type productBody struct {
	ID            int64   `json:"id"`
	StockQuantity int64   `json:"stock_quantity"`
	Category      *idBody `json:"category"`
	Images        []struct {
		URL string `json:"url"`
	} `json:"images"`
}

func seedCategoryAndProduct(t *testing.T, app *fiber.App, stock int64) (int64, int64) {
	t.Helper()
	var cat idBody
	require.Equal(t, http.StatusCreated, doJSON(t, app, http.MethodPost, "/api/categories", map[string]any{"name": "Ferretería"}, &cat))

	var created struct {
		ProductID int64 `json:"product_id"`
	}
	status := doJSON(t, app, http.MethodPost, "/api/products", map[string]any{
		"name": "Tornillo", "price": "0.50", "stock_quantity": stock, "category_id": cat.ID,
	}, &created)
	require.Equal(t, http.StatusCreated, status)
	require.NotZero(t, created.ProductID)
	return cat.ID, created.ProductID
}

func stockOf(t *testing.T, app *fiber.App, productID int64) int64 {
	t.Helper()
	var p productBody
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/products/%d", productID), nil, &p))
	return p.StockQuantity
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	app := buildTestApp(t, inventory.LedgerPolicy{})
	var body map[string]string
	assert.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/health", nil, &body))
	assert.Equal(t, "ok", body["status"])
}

func TestHealth_PingFailure(t *testing.T) {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{Ping: func(context.Context) error { return fmt.Errorf("db caída") }})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestCategories_ValidationAndNotFound(t *testing.T) {
	app := buildTestApp(t, inventory.LedgerPolicy{})

	var e errorBody
	assert.Equal(t, http.StatusBadRequest, doJSON(t, app, http.MethodPost, "/api/categories", map[string]any{}, &e))
	assert.Equal(t, "VALIDATION", e.Code)

	assert.Equal(t, http.StatusNotFound, doJSON(t, app, http.MethodGet, "/api/categories/99", nil, &e))
	assert.Equal(t, "NOT_FOUND", e.Code)

	assert.Equal(t, http.StatusBadRequest, doJSON(t, app, http.MethodGet, "/api/categories/abc", nil, &e))
	assert.Equal(t, "VALIDATION", e.Code)

	var list []idBody
	assert.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/api/categories", nil, &list))
	assert.Empty(t, list)
}

func TestCategoryDelete_ConflictWhileProductsActive(t *testing.T) {
	app := buildTestApp(t, inventory.LedgerPolicy{})
	catID, productID := seedCategoryAndProduct(t, app, 0)

	var e errorBody
	assert.Equal(t, http.StatusBadRequest, doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/categories/%d", catID), nil, &e))
	assert.Equal(t, "CONFLICT", e.Code)

	var del struct {
		DeletedStockMovements int64 `json:"deleted_stock_movements"`
	}
	assert.Equal(t, http.StatusOK, doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/products/%d", productID), nil, &del))
	assert.Equal(t, http.StatusOK, doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/categories/%d", catID), nil, nil))
	assert.Equal(t, http.StatusNotFound, doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/categories/%d", catID), nil, nil))
}

func TestStockMovements_LedgerFlow(t *testing.T) {
	app := buildTestApp(t, inventory.LedgerPolicy{})
	_, productID := seedCategoryAndProduct(t, app, 0)

	var in, out idBody
	require.Equal(t, http.StatusCreated, doJSON(t, app, http.MethodPost, "/api/stock-movements",
		map[string]any{"product_id": productID, "quantity": 10}, &in))
	require.Equal(t, http.StatusCreated, doJSON(t, app, http.MethodPost, "/api/stock-movements",
		map[string]any{"product_id": productID, "quantity": -3, "date": "2024-05-01T10:00:00Z"}, &out))
	assert.Equal(t, int64(7), stockOf(t, app, productID))

	// Editar la salida a -8 deja 2.
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/stock-movements/%d", out.ID),
		map[string]any{"product_id": productID, "quantity": -8}, nil))
	assert.Equal(t, int64(2), stockOf(t, app, productID))

	// Borrar la entrada dejaría -8: conflicto y sin cambios.
	var e errorBody
	assert.Equal(t, http.StatusBadRequest, doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/stock-movements/%d", in.ID), nil, &e))
	assert.Equal(t, "CONFLICT", e.Code)
	assert.Equal(t, int64(2), stockOf(t, app, productID))

	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/stock-movements/%d", out.ID), nil, nil))
	assert.Equal(t, int64(10), stockOf(t, app, productID))

	var withProduct []struct {
		ProductID int64   `json:"product_id"`
		Product   *idBody `json:"product"`
	}
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/api/stock-movements?include=product", nil, &withProduct))
	require.Len(t, withProduct, 1)
	require.NotNil(t, withProduct[0].Product)
	assert.Equal(t, productID, withProduct[0].Product.ID)

	var check struct {
		Consistent bool `json:"consistent"`
	}
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/products/%d/ledger-check", productID), nil, &check))
	assert.True(t, check.Consistent)
}

func TestStockMovements_Validation(t *testing.T) {
	app := buildTestApp(t, inventory.LedgerPolicy{})
	_, productID := seedCategoryAndProduct(t, app, 0)

	var e errorBody
	assert.Equal(t, http.StatusBadRequest, doJSON(t, app, http.MethodPost, "/api/stock-movements",
		map[string]any{"product_id": productID, "quantity": 0}, &e))
	assert.Equal(t, "VALIDATION", e.Code)

	assert.Equal(t, http.StatusBadRequest, doJSON(t, app, http.MethodPost, "/api/stock-movements",
		map[string]any{"product_id": 999, "quantity": 1}, &e))
	assert.Equal(t, "VALIDATION", e.Code)

	assert.Equal(t, http.StatusNotFound, doJSON(t, app, http.MethodPut, "/api/stock-movements/999",
		map[string]any{"product_id": productID, "quantity": 1}, &e))
}

func TestStockMovements_StrictCreate(t *testing.T) {
	app := buildTestApp(t, inventory.LedgerPolicy{StrictCreate: true})
	_, productID := seedCategoryAndProduct(t, app, 0)

	var e errorBody
	assert.Equal(t, http.StatusBadRequest, doJSON(t, app, http.MethodPost, "/api/stock-movements",
		map[string]any{"product_id": productID, "quantity": -1}, &e))
	assert.Equal(t, "CONFLICT", e.Code)
}

func TestProducts_OverrideStockAndIncludes(t *testing.T) {
	app := buildTestApp(t, inventory.LedgerPolicy{})
	catID, productID := seedCategoryAndProduct(t, app, 3)

	var p productBody
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/products/%d/stock", productID),
		map[string]any{"stock_quantity": 40}, &p))
	assert.Equal(t, int64(40), p.StockQuantity)

	var e errorBody
	assert.Equal(t, http.StatusBadRequest, doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/products/%d/stock", productID),
		map[string]any{}, &e))

	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/products/%d?include=category,images", productID), nil, &p))
	require.NotNil(t, p.Category)
	assert.Equal(t, catID, p.Category.ID)
	assert.Empty(t, p.Images)
}

func TestImages_UploadServeDelete(t *testing.T) {
	app := buildTestApp(t, inventory.LedgerPolicy{})
	_, productID := seedCategoryAndProduct(t, app, 0)

	upload := func(name string, content []byte) *http.Response {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		fw, err := w.CreateFormFile("file", name)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
		require.NoError(t, w.Close())
		req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/products/%d/images", productID), &buf)
		req.Header.Set("Content-Type", w.FormDataContentType())
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp
	}

	resp := upload("foto.png", []byte("\x89PNG fake"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var img struct {
		ID  int64  `json:"id"`
		URL string `json:"url"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&img))
	assert.Regexp(t, `^/images/[0-9a-f-]{36}\.png$`, img.URL)

	// El archivo se sirve como estático.
	static, err := app.Test(httptest.NewRequest(http.MethodGet, img.URL, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, static.StatusCode)
	served, _ := io.ReadAll(static.Body)
	assert.Equal(t, []byte("\x89PNG fake"), served)

	assert.Equal(t, http.StatusBadRequest, upload("virus.exe", []byte("x")).StatusCode)
	assert.Equal(t, http.StatusBadRequest, upload("grande.png", make([]byte, 2048)).StatusCode)

	var imgs []idBody
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/products/%d/images", productID), nil, &imgs))
	require.Len(t, imgs, 1)

	assert.Equal(t, http.StatusOK, doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/images/%d", img.ID), nil, nil))
	assert.Equal(t, http.StatusNotFound, doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/images/%d", img.ID), nil, nil))
}

func TestDashboard(t *testing.T) {
	app := buildTestApp(t, inventory.LedgerPolicy{})
	catID, productID := seedCategoryAndProduct(t, app, 0)
	require.Equal(t, http.StatusCreated, doJSON(t, app, http.MethodPost, "/api/stock-movements",
		map[string]any{"product_id": productID, "quantity": 10}, nil))
	require.Equal(t, http.StatusCreated, doJSON(t, app, http.MethodPost, "/api/stock-movements",
		map[string]any{"product_id": productID, "quantity": -4}, nil))

	var sales map[string]int64
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/api/dashboard/sales/total", nil, &sales))
	assert.Equal(t, int64(4), sales["total_sales"])

	var avg struct {
		AveragePrice string `json:"average_price"`
		ProductCount int64  `json:"product_count"`
	}
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/dashboard/category/%d/average-price", catID), nil, &avg))
	assert.Equal(t, "0.5", avg.AveragePrice)
	assert.Equal(t, int64(1), avg.ProductCount)

	assert.Equal(t, http.StatusNotFound, doJSON(t, app, http.MethodGet, "/api/dashboard/category/999/average-price", nil, nil))

	var summary struct {
		StockValue      string `json:"stock_value"`
		TotalSales      int64  `json:"total_sales"`
		StockByCategory []struct {
			TotalStock int64 `json:"total_stock"`
		} `json:"stock_by_category"`
	}
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/api/dashboard/summary", nil, &summary))
	assert.Equal(t, "3", summary.StockValue)
	require.Len(t, summary.StockByCategory, 1)
	assert.Equal(t, int64(6), summary.StockByCategory[0].TotalStock)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/dashboard/stock-report.pdf", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
}
