package usecase

import (
	"context"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// ProductUseCase casos de uso CRUD para productos.
// StockQuantity lo mantiene el ledger de movimientos; Update y OverrideStock son la vía administrativa.
type ProductUseCase struct {
	store repository.Store
	log   *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(store repository.Store, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{store: store, log: log.Named("products")}
}

// ListActive lista los productos no eliminados, cargando las relaciones pedidas.
func (uc *ProductUseCase) ListActive(ctx context.Context, include entity.ProductInclude) ([]dto.ProductResponse, error) {
	list, err := uc.store.Products().ListActive(ctx)
	if err != nil {
		return nil, domain.Storage("listar productos", err)
	}
	if err := LoadProductRelations(ctx, uc.store, list, include); err != nil {
		return nil, domain.Storage("cargar relaciones", err)
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *dto.FromProduct(p))
	}
	return items, nil
}

// Get obtiene un producto activo por ID.
func (uc *ProductUseCase) Get(ctx context.Context, id int64, include entity.ProductInclude) (*dto.ProductResponse, error) {
	p, err := uc.store.Products().GetByID(ctx, id)
	if err != nil {
		return nil, domain.Storage("obtener producto", err)
	}
	if p == nil || p.IsDeleted {
		return nil, domain.NotFound("producto no encontrado")
	}
	if err := LoadProductRelations(ctx, uc.store, []*entity.Product{p}, include); err != nil {
		return nil, domain.Storage("cargar relaciones", err)
	}
	return dto.FromProduct(p), nil
}

// Create crea un producto. StockQuantity es el valor inicial; desde aquí lo ajustan los movimientos.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductRequest) (*dto.ProductResponse, error) {
	in, err := validateProduct(in)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	p := &entity.Product{
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price,
		StockQuantity: in.StockQuantity,
		CategoryID:    in.CategoryID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	err = uc.store.Run(ctx, func(r repository.TxRepos) error {
		if err := requireActiveCategory(ctx, r, in.CategoryID); err != nil {
			return err
		}
		return r.Products().Create(ctx, p)
	})
	if err != nil {
		return nil, domain.Storage("crear producto", err)
	}
	return dto.FromProduct(p), nil
}

// Update sobreescribe todos los campos mutables del producto, incluido StockQuantity.
// Es un ajuste administrativo: no pasa por el ledger y puede romper la suma de movimientos.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.ProductRequest) (*dto.ProductResponse, error) {
	in, err := validateProduct(in)
	if err != nil {
		return nil, err
	}
	var out *entity.Product
	err = uc.store.Run(ctx, func(r repository.TxRepos) error {
		p, err := r.Products().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p == nil || p.IsDeleted {
			return domain.NotFound("producto no encontrado")
		}
		if err := requireActiveCategory(ctx, r, in.CategoryID); err != nil {
			return err
		}
		if p.StockQuantity != in.StockQuantity {
			uc.logOverride(p.ID, p.StockQuantity, in.StockQuantity)
		}
		p.Name = in.Name
		p.Description = in.Description
		p.Price = in.Price
		p.StockQuantity = in.StockQuantity
		p.CategoryID = in.CategoryID
		p.UpdatedAt = time.Now().UTC()
		if err := r.Products().Update(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, domain.Storage("actualizar producto", err)
	}
	return dto.FromProduct(out), nil
}

// OverrideStock fija StockQuantity directamente (corrección administrativa, fuera del ledger).
func (uc *ProductUseCase) OverrideStock(ctx context.Context, id int64, quantity int64) (*dto.ProductResponse, error) {
	if quantity < 0 {
		return nil, domain.Invalid("el stock no puede ser negativo")
	}
	var out *entity.Product
	err := uc.store.Run(ctx, func(r repository.TxRepos) error {
		p, err := r.Products().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p == nil || p.IsDeleted {
			return domain.NotFound("producto no encontrado")
		}
		uc.logOverride(p.ID, p.StockQuantity, quantity)
		p.StockQuantity = quantity
		p.UpdatedAt = time.Now().UTC()
		if err := r.Products().Update(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, domain.Storage("ajustar stock", err)
	}
	return dto.FromProduct(out), nil
}

// Delete elimina lógicamente el producto junto con sus movimientos e imágenes activos (misma transacción).
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) (*dto.DeleteProductResponse, error) {
	out := &dto.DeleteProductResponse{}
	err := uc.store.Run(ctx, func(r repository.TxRepos) error {
		p, err := r.Products().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p == nil || p.IsDeleted {
			return domain.NotFound("producto no encontrado")
		}
		now := time.Now().UTC()
		if out.DeletedStockMovements, err = r.Movements().SoftDeleteByProduct(ctx, id, now); err != nil {
			return err
		}
		if out.DeletedImages, err = r.Images().SoftDeleteByProduct(ctx, id, now); err != nil {
			return err
		}
		p.SoftDelete(now)
		return r.Products().Update(ctx, p)
	})
	if err != nil {
		return nil, domain.Storage("eliminar producto", err)
	}
	out.Message = "producto y movimientos asociados eliminados"
	return out, nil
}

func (uc *ProductUseCase) logOverride(productID, from, to int64) {
	uc.log.Warn().
		Int64("product_id", productID).
		Int64("from", from).
		Int64("to", to).
		Msg("ajuste administrativo de stock fuera del ledger")
}

// LoadProductRelations llena Category e Images de cada producto según include, con una consulta por relación.
func LoadProductRelations(ctx context.Context, r repository.TxRepos, products []*entity.Product, include entity.ProductInclude) error {
	if len(products) == 0 || (!include.Category && !include.Images) {
		return nil
	}
	productIDs := make([]int64, 0, len(products))
	categoryIDs := make([]int64, 0, len(products))
	for _, p := range products {
		productIDs = append(productIDs, p.ID)
		categoryIDs = append(categoryIDs, p.CategoryID)
	}

	if include.Category {
		cats, err := r.Categories().ListByIDs(ctx, categoryIDs)
		if err != nil {
			return err
		}
		byID := make(map[int64]*entity.Category, len(cats))
		for _, c := range cats {
			byID[c.ID] = c
		}
		for _, p := range products {
			p.Category = byID[p.CategoryID]
		}
	}

	if include.Images {
		imgs, err := r.Images().ListActiveByProducts(ctx, productIDs)
		if err != nil {
			return err
		}
		byProduct := make(map[int64][]*entity.Image, len(products))
		for _, img := range imgs {
			byProduct[img.ProductID] = append(byProduct[img.ProductID], img)
		}
		for _, p := range products {
			p.Images = byProduct[p.ID]
			if p.Images == nil {
				p.Images = []*entity.Image{}
			}
		}
	}
	return nil
}

// ParseProductInclude interpreta "category,images" (también acepta "all").
func ParseProductInclude(raw string) entity.ProductInclude {
	var inc entity.ProductInclude
	for _, part := range strings.Split(raw, ",") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "category":
			inc.Category = true
		case "images":
			inc.Images = true
		case "all":
			inc.Category, inc.Images = true, true
		}
	}
	return inc
}

func validateProduct(in dto.ProductRequest) (dto.ProductRequest, error) {
	in.Name = norm.NFC.String(strings.TrimSpace(in.Name))
	if in.Name == "" {
		return in, domain.Invalid("el nombre del producto es requerido")
	}
	if in.Price.IsNegative() {
		return in, domain.Invalid("el precio no puede ser negativo")
	}
	if in.StockQuantity < 0 {
		return in, domain.Invalid("el stock no puede ser negativo")
	}
	if in.CategoryID <= 0 {
		return in, domain.Invalid("category_id es requerido")
	}
	return in, nil
}

// requireActiveCategory bloquea la categoría referenciada y verifica que siga activa.
func requireActiveCategory(ctx context.Context, r repository.TxRepos, categoryID int64) error {
	c, err := r.Categories().GetForUpdate(ctx, categoryID)
	if err != nil {
		return err
	}
	if c == nil || c.IsDeleted {
		return domain.Invalid("la categoría no existe o fue eliminada")
	}
	return nil
}
