package dto

import "github.com/jhoicas/inventario-ledger/internal/domain/entity"

// FromCategory convierte la entidad a su DTO de salida.
func FromCategory(c *entity.Category) *CategoryResponse {
	if c == nil {
		return nil
	}
	return &CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// FromImage convierte la entidad a su DTO de salida.
func FromImage(i *entity.Image) ImageResponse {
	return ImageResponse{ID: i.ID, URL: i.URL, ProductID: i.ProductID}
}

// FromProduct convierte la entidad (y las relaciones cargadas) a su DTO de salida.
func FromProduct(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	out := &ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		CategoryID:    p.CategoryID,
		Category:      FromCategory(p.Category),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.Images != nil {
		out.Images = make([]ImageResponse, 0, len(p.Images))
		for _, img := range p.Images {
			out.Images = append(out.Images, FromImage(img))
		}
	}
	return out
}

// FromStockMovement convierte la entidad a su DTO de salida.
func FromStockMovement(m *entity.StockMovement) *StockMovementResponse {
	if m == nil {
		return nil
	}
	return &StockMovementResponse{
		ID:        m.ID,
		Quantity:  m.Quantity,
		Date:      m.Date,
		ProductID: m.ProductID,
		Product:   FromProduct(m.Product),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
