package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// ImageRepository define el puerto de persistencia para Image (DIP).
type ImageRepository interface {
	Create(ctx context.Context, image *entity.Image) error
	GetByID(ctx context.Context, id int64) (*entity.Image, error)
	Update(ctx context.Context, image *entity.Image) error
	ListActiveByProducts(ctx context.Context, productIDs []int64) ([]*entity.Image, error)
	// SoftDeleteByProduct marca como eliminadas las imágenes activas del producto y devuelve cuántas.
	SoftDeleteByProduct(ctx context.Context, productID int64, now time.Time) (int64, error)
}
