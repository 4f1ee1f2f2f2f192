package repository

import "context"

// TxRepos repositorios atados a una misma transacción.
type TxRepos interface {
	Categories() CategoryRepository
	Products() ProductRepository
	Images() ImageRepository
	Movements() StockMovementRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn devuelve nil, Rollback en cualquier otro caso.
// Es la unidad de trabajo de cada operación mutante del ledger.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}

// Store agrupa los repositorios de lectura (fuera de transacción) y el TxRunner.
type Store interface {
	TxRepos
	TxRunner
	Analytics() AnalyticsRepository
}
