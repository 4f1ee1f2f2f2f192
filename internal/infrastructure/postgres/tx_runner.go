package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL (READ COMMITTED).
// La serialización del ledger la dan los SELECT ... FOR UPDATE sobre productos y movimientos.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.TxRepos) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(newRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// repos agrupa los adaptadores sobre un mismo Querier (pool o tx).
type repos struct {
	categories *CategoryRepo
	products   *ProductRepo
	images     *ImageRepo
	movements  *StockMovementRepo
}

func newRepos(q Querier) *repos {
	return &repos{
		categories: NewCategoryRepository(q),
		products:   NewProductRepository(q),
		images:     NewImageRepository(q),
		movements:  NewStockMovementRepository(q),
	}
}

func (r *repos) Categories() repository.CategoryRepository     { return r.categories }
func (r *repos) Products() repository.ProductRepository        { return r.products }
func (r *repos) Images() repository.ImageRepository            { return r.images }
func (r *repos) Movements() repository.StockMovementRepository { return r.movements }
