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
)

// CategoryUseCase casos de uso CRUD para categorías (borrado lógico).
type CategoryUseCase struct {
	store repository.Store
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(store repository.Store) *CategoryUseCase {
	return &CategoryUseCase{store: store}
}

// ListActive lista las categorías no eliminadas.
func (uc *CategoryUseCase) ListActive(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.store.Categories().ListActive(ctx)
	if err != nil {
		return nil, domain.Storage("listar categorías", err)
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *dto.FromCategory(c))
	}
	return items, nil
}

// Get obtiene una categoría activa por ID.
func (uc *CategoryUseCase) Get(ctx context.Context, id int64) (*dto.CategoryResponse, error) {
	c, err := uc.store.Categories().GetByID(ctx, id)
	if err != nil {
		return nil, domain.Storage("obtener categoría", err)
	}
	if c == nil || c.IsDeleted {
		return nil, domain.NotFound("categoría no encontrada")
	}
	return dto.FromCategory(c), nil
}

// Create crea una categoría. El nombre se recorta y normaliza (NFC).
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	name, err := categoryName(in.Name)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	c := &entity.Category{
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.store.Categories().Create(ctx, c); err != nil {
		return nil, domain.Storage("crear categoría", err)
	}
	return dto.FromCategory(c), nil
}

// Update renombra una categoría activa.
func (uc *CategoryUseCase) Update(ctx context.Context, id int64, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	name, err := categoryName(in.Name)
	if err != nil {
		return nil, err
	}
	var out *entity.Category
	err = uc.store.Run(ctx, func(r repository.TxRepos) error {
		c, err := r.Categories().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if c == nil || c.IsDeleted {
			return domain.NotFound("categoría no encontrada")
		}
		c.Name = name
		c.UpdatedAt = time.Now().UTC()
		if err := r.Categories().Update(ctx, c); err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, domain.Storage("actualizar categoría", err)
	}
	return dto.FromCategory(out), nil
}

// Delete elimina lógicamente una categoría. Falla con conflicto si tiene productos activos.
func (uc *CategoryUseCase) Delete(ctx context.Context, id int64) error {
	err := uc.store.Run(ctx, func(r repository.TxRepos) error {
		// El bloqueo de la categoría serializa el borrado con altas de productos que la referencian.
		c, err := r.Categories().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if c == nil || c.IsDeleted {
			return domain.NotFound("categoría no encontrada")
		}
		n, err := r.Products().CountActiveByCategory(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrCategoryInUse
		}
		c.SoftDelete(time.Now().UTC())
		return r.Categories().Update(ctx, c)
	})
	return domain.Storage("eliminar categoría", err)
}

func categoryName(raw string) (string, error) {
	name := norm.NFC.String(strings.TrimSpace(raw))
	if name == "" {
		return "", domain.Invalid("el nombre de la categoría es requerido")
	}
	return name, nil
}
