package repository

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID y GetForUpdate devuelven (nil, nil) si el ID no existe; las filas eliminadas sí se devuelven.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT ... FOR UPDATE).
	GetForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	// Update persiste todos los campos mutables, incluidos StockQuantity e IsDeleted.
	Update(ctx context.Context, product *entity.Product) error
	ListActive(ctx context.Context) ([]*entity.Product, error)
	ListByIDs(ctx context.Context, ids []int64) ([]*entity.Product, error)
	CountActiveByCategory(ctx context.Context, categoryID int64) (int64, error)
}
