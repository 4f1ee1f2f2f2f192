package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain"
)

// Códigos de error expuestos en dto.ErrorResponse.
const (
	codeNotFound   = "NOT_FOUND"
	codeValidation = "VALIDATION"
	codeConflict   = "CONFLICT"
	codeInternal   = "INTERNAL"
)

// writeError traduce un error de dominio a status + ErrorResponse.
// Conflict responde 400 (el cliente debe corregir la operación), no 409.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: codeNotFound, Message: domain.Message(err)})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: codeValidation, Message: domain.Message(err)})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: codeConflict, Message: domain.Message(err)})
	}
	// Storage u otro: el detalle de infraestructura va al log, no al cliente.
	requestLogger(c).Error().Err(err).Str("path", c.Path()).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: codeInternal, Message: "error interno del servidor"})
}

// paramID lee el parámetro de ruta como int64 positivo.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Invalid(name + " debe ser un entero positivo")
	}
	return id, nil
}
