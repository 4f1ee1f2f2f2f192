package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
)

// StockMovementHandler expone el ledger de movimientos de stock.
type StockMovementHandler struct {
	uc *inventory.StockMovementUseCase
}

// NewStockMovementHandler construye el handler.
func NewStockMovementHandler(uc *inventory.StockMovementUseCase) *StockMovementHandler {
	return &StockMovementHandler{uc: uc}
}

func withProduct(c *fiber.Ctx) bool {
	return c.Query("include") == "product"
}

// List godoc
// @Summary      Listar movimientos activos
// @Tags         stock-movements
// @Produce      json
// @Param        include  query  string  false  "product para incluir el producto"
// @Success      200      {array}  dto.StockMovementResponse
// @Router       /api/stock-movements [get]
func (h *StockMovementHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), withProduct(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener movimiento por ID
// @Tags         stock-movements
// @Produce      json
// @Param        id       path   int     true   "ID del movimiento"
// @Param        include  query  string  false  "product para incluir el producto"
// @Success      200      {object}  dto.StockMovementResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/stock-movements/{id} [get]
func (h *StockMovementHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Get(c.UserContext(), id, withProduct(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar movimiento
// @Description  quantity > 0 es entrada, < 0 salida. Ajusta el stock del producto en la misma transacción.
// @Tags         stock-movements
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockMovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.StockMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock-movements [post]
func (h *StockMovementHandler) Create(c *fiber.Ctx) error {
	var in dto.StockMovementRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), inventory.MovementInputFromRequest(in))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Editar movimiento
// @Description  Revierte el efecto anterior y aplica el nuevo (puede cambiar de producto).
// @Tags         stock-movements
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del movimiento"
// @Param        body  body  dto.StockMovementRequest  true  "Movimiento"
// @Success      200   {object}  dto.StockMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock-movements/{id} [put]
func (h *StockMovementHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.StockMovementRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), id, inventory.MovementInputFromRequest(in))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar movimiento (lógico)
// @Description  Revierte su efecto en el stock. CONFLICT si el stock resultante sería negativo.
// @Tags         stock-movements
// @Produce      json
// @Param        id   path  int  true  "ID del movimiento"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-movements/{id} [delete]
func (h *StockMovementHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true, Message: "movimiento eliminado"})
}
