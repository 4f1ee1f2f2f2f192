package repository

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
// GetByID y GetForUpdate devuelven (nil, nil) si el ID no existe; las filas eliminadas sí se devuelven.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	GetForUpdate(ctx context.Context, id int64) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	ListActive(ctx context.Context) ([]*entity.Category, error)
	ListByIDs(ctx context.Context, ids []int64) ([]*entity.Category, error)
}
