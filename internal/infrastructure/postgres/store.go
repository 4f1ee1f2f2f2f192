package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.Store = (*Store)(nil)

// Store implementación de repository.Store sobre un pool: lecturas sin transacción y Run para escrituras atómicas.
type Store struct {
	*repos
	*TxRunner
	analytics *AnalyticsRepo
}

// NewStore construye el store sobre el pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		repos:     newRepos(pool),
		TxRunner:  NewTxRunner(pool),
		analytics: NewAnalyticsRepository(pool),
	}
}

func (s *Store) Analytics() repository.AnalyticsRepository { return s.analytics }
