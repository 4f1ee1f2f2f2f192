package http

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/usecase"
	"github.com/jhoicas/inventario-ledger/internal/domain"
)

// ImageHandler subida, listado y borrado lógico de imágenes de producto.
type ImageHandler struct {
	uc       *usecase.ImageUseCase
	maxBytes int64
}

// NewImageHandler construye el handler. maxBytes acota la lectura del archivo multipart.
func NewImageHandler(uc *usecase.ImageUseCase, maxBytes int64) *ImageHandler {
	if maxBytes <= 0 {
		maxBytes = usecase.MaxImageBytes
	}
	return &ImageHandler{uc: uc, maxBytes: maxBytes}
}

// Upload godoc
// @Summary      Subir imagen de producto
// @Tags         images
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      int   true  "ID del producto"
// @Param        file  formData  file  true  "Imagen (.jpg, .jpeg, .png, .gif, .webp)"
// @Success      201   {object}  dto.ImageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/images [post]
func (h *ImageHandler) Upload(c *fiber.Ctx) error {
	productID, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return writeError(c, domain.Invalid("no se recibió ningún archivo"))
	}
	if fh.Size > h.maxBytes {
		return writeError(c, domain.Invalid(fmt.Sprintf("el archivo (%d bytes) supera el límite de %d bytes", fh.Size, h.maxBytes)))
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, fmt.Errorf("abrir archivo subido: %w", err))
	}
	defer f.Close()

	// +1 para que el caso de uso detecte un archivo que excede el límite aunque el header mienta.
	data, err := io.ReadAll(io.LimitReader(f, h.maxBytes+1))
	if err != nil {
		return writeError(c, fmt.Errorf("leer archivo subido: %w", err))
	}

	out, err := h.uc.Upload(c.UserContext(), productID, data, fh.Filename)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListByProduct godoc
// @Summary      Listar imágenes de un producto
// @Tags         images
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {array}   dto.ImageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/images [get]
func (h *ImageHandler) ListByProduct(c *fiber.Ctx) error {
	productID, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListByProduct(c.UserContext(), productID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar imagen (lógico)
// @Tags         images
// @Produce      json
// @Param        id   path  int  true  "ID de la imagen"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/images/{id} [delete]
func (h *ImageHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true, Message: "imagen eliminada"})
}
