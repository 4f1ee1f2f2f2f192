// Package memory implementa repository.Store en proceso, con transacciones por snapshot.
// Sirve para desarrollo local (STORE_DRIVER=memory) y para los tests de casos de uso y handlers.
package memory

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// tables estado de las cuatro tablas. Las entidades guardadas son copias propias del store.
type tables struct {
	categories map[int64]*entity.Category
	products   map[int64]*entity.Product
	images     map[int64]*entity.Image
	movements  map[int64]*entity.StockMovement
}

func newTables() *tables {
	return &tables{
		categories: map[int64]*entity.Category{},
		products:   map[int64]*entity.Product{},
		images:     map[int64]*entity.Image{},
		movements:  map[int64]*entity.StockMovement{},
	}
}

func (t *tables) clone() *tables {
	out := &tables{
		categories: make(map[int64]*entity.Category, len(t.categories)),
		products:   make(map[int64]*entity.Product, len(t.products)),
		images:     make(map[int64]*entity.Image, len(t.images)),
		movements:  make(map[int64]*entity.StockMovement, len(t.movements)),
	}
	for id, c := range t.categories {
		out.categories[id] = copyCategory(c)
	}
	for id, p := range t.products {
		out.products[id] = copyProduct(p)
	}
	for id, i := range t.images {
		out.images[id] = copyImage(i)
	}
	for id, m := range t.movements {
		out.movements[id] = copyMovement(m)
	}
	return out
}

// sequences contadores de ID. Viven fuera del snapshot: un rollback no reutiliza IDs (como una secuencia SQL).
type sequences struct {
	category atomic.Int64
	product  atomic.Int64
	image    atomic.Int64
	movement atomic.Int64
}

// access abstrae dónde leen y escriben los repositorios: el estado confirmado o el snapshot de una tx.
type access interface {
	view(fn func(t *tables))
	update(fn func(t *tables) error) error
}

// Store implementación en memoria de repository.Store.
//
// Las transacciones se serializan con writeMu: cada una trabaja sobre una copia del estado
// confirmado y la publica al confirmar. Equivale a aislamiento serializable, más fuerte que
// los bloqueos por fila de Postgres, y mantiene la misma semántica de "todo o nada".
type Store struct {
	writeMu   sync.Mutex
	mu        sync.RWMutex
	committed *tables
	seq       *sequences
}

var _ repository.Store = (*Store)(nil)

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{committed: newTables(), seq: &sequences{}}
}

func (s *Store) view(fn func(t *tables)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.committed)
}

// update fuera de transacción: una escritura atómica sobre el estado confirmado.
func (s *Store) update(fn func(t *tables) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.committed)
}

// Run ejecuta fn sobre un snapshot privado. Si fn devuelve nil (y ctx sigue vivo) el snapshot pasa a ser el estado confirmado.
func (s *Store) Run(ctx context.Context, fn func(r repository.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	snapshot := s.committed.clone()
	s.mu.RUnlock()

	if err := fn(newRepos(&txAccess{t: snapshot}, s.seq)); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.committed = snapshot
	s.mu.Unlock()
	return nil
}

func (s *Store) Categories() repository.CategoryRepository { return &categoryRepo{a: s, seq: s.seq} }
func (s *Store) Products() repository.ProductRepository    { return &productRepo{a: s, seq: s.seq} }
func (s *Store) Images() repository.ImageRepository        { return &imageRepo{a: s, seq: s.seq} }
func (s *Store) Movements() repository.StockMovementRepository {
	return &movementRepo{a: s, seq: s.seq}
}
func (s *Store) Analytics() repository.AnalyticsRepository { return &analyticsRepo{a: s} }

// txAccess acceso al snapshot de una transacción. Solo lo usa la goroutine que ejecuta Run.
type txAccess struct{ t *tables }

func (x *txAccess) view(fn func(t *tables))               { fn(x.t) }
func (x *txAccess) update(fn func(t *tables) error) error { return fn(x.t) }

type repos struct {
	a   access
	seq *sequences
}

func newRepos(a access, seq *sequences) *repos { return &repos{a: a, seq: seq} }

func (r *repos) Categories() repository.CategoryRepository { return &categoryRepo{a: r.a, seq: r.seq} }
func (r *repos) Products() repository.ProductRepository    { return &productRepo{a: r.a, seq: r.seq} }
func (r *repos) Images() repository.ImageRepository        { return &imageRepo{a: r.a, seq: r.seq} }
func (r *repos) Movements() repository.StockMovementRepository {
	return &movementRepo{a: r.a, seq: r.seq}
}

func copyCategory(c *entity.Category) *entity.Category {
	out := *c
	return &out
}

// copyProduct no copia las relaciones cargadas: el store solo guarda columnas.
func copyProduct(p *entity.Product) *entity.Product {
	out := *p
	out.Category = nil
	out.Images = nil
	return &out
}

func copyImage(i *entity.Image) *entity.Image {
	out := *i
	return &out
}

func copyMovement(m *entity.StockMovement) *entity.StockMovement {
	out := *m
	out.Product = nil
	return &out
}
