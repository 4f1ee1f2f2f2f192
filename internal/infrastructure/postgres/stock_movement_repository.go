package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, quantity, date, product_id, is_deleted, created_at, updated_at`

// StockMovementRepo implementación del puerto StockMovementRepository sobre PostgreSQL.
// Los movimientos nunca se borran físicamente: el historial del ledger es auditable.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	if err := row.Scan(&m.ID, &m.Quantity, &m.Date, &m.ProductID, &m.IsDeleted, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

// Create registra el movimiento y asigna el ID generado.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO stock_movements (quantity, date, product_id, is_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		m.Quantity, m.Date, m.ProductID, m.IsDeleted, m.CreatedAt, m.UpdatedAt,
	).Scan(&m.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Invalid("el producto no existe")
		}
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

func (r *StockMovementRepo) GetByID(ctx context.Context, id int64) (*entity.StockMovement, error) {
	return r.get(ctx, `SELECT `+movementColumns+` FROM stock_movements WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila del movimiento: dos ediciones del mismo movimiento no se intercalan.
func (r *StockMovementRepo) GetForUpdate(ctx context.Context, id int64) (*entity.StockMovement, error) {
	return r.get(ctx, `SELECT `+movementColumns+` FROM stock_movements WHERE id = $1 FOR UPDATE`, id)
}

func (r *StockMovementRepo) get(ctx context.Context, query string, id int64) (*entity.StockMovement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return m, nil
}

func (r *StockMovementRepo) Update(ctx context.Context, m *entity.StockMovement) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE stock_movements
		SET quantity = $2, date = $3, product_id = $4, is_deleted = $5, updated_at = $6
		WHERE id = $1`,
		m.ID, m.Quantity, m.Date, m.ProductID, m.IsDeleted, m.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Invalid("el producto no existe")
		}
		return fmt.Errorf("update stock movement: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("movimiento no encontrado")
	}
	return nil
}

func (r *StockMovementRepo) ListActive(ctx context.Context) ([]*entity.StockMovement, error) {
	return r.list(ctx, `SELECT `+movementColumns+` FROM stock_movements WHERE NOT is_deleted ORDER BY id`)
}

func (r *StockMovementRepo) ListActiveByProduct(ctx context.Context, productID int64) ([]*entity.StockMovement, error) {
	return r.list(ctx,
		`SELECT `+movementColumns+` FROM stock_movements WHERE product_id = $1 AND NOT is_deleted ORDER BY id`, productID)
}

func (r *StockMovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	list := []*entity.StockMovement{}
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// SoftDeleteByProduct cascada del borrado de producto; devuelve cuántos movimientos quedaron eliminados.
func (r *StockMovementRepo) SoftDeleteByProduct(ctx context.Context, productID int64, now time.Time) (int64, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE stock_movements SET is_deleted = TRUE, updated_at = $2 WHERE product_id = $1 AND NOT is_deleted`,
		productID, now,
	)
	if err != nil {
		return 0, fmt.Errorf("soft delete stock movements: %w", err)
	}
	return cmd.RowsAffected(), nil
}
