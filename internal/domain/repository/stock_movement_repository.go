package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para movimientos del ledger (DIP).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id int64) (*entity.StockMovement, error)
	GetForUpdate(ctx context.Context, id int64) (*entity.StockMovement, error)
	Update(ctx context.Context, movement *entity.StockMovement) error
	ListActive(ctx context.Context) ([]*entity.StockMovement, error)
	ListActiveByProduct(ctx context.Context, productID int64) ([]*entity.StockMovement, error)
	// SoftDeleteByProduct marca como eliminados los movimientos activos del producto y devuelve cuántos.
	SoftDeleteByProduct(ctx context.Context, productID int64, now time.Time) (int64, error)
}
