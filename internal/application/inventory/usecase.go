package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// StockMovementUseCase mantiene el ledger de stock: cada alta, edición o borrado de un movimiento
// ajusta Product.StockQuantity dentro de la misma transacción, con la fila del producto bloqueada
// (SELECT FOR UPDATE) para que movimientos concurrentes no pierdan actualizaciones.
type StockMovementUseCase struct {
	store  repository.Store
	policy LedgerPolicy
	log    *logger.Logger
}

// NewStockMovementUseCase construye el caso de uso.
func NewStockMovementUseCase(store repository.Store, policy LedgerPolicy, log *logger.Logger) *StockMovementUseCase {
	return &StockMovementUseCase{store: store, policy: policy, log: log.Named("ledger")}
}

// MovementInput entrada para registrar o editar un movimiento.
type MovementInput struct {
	ProductID int64
	Quantity  int64 // firmado: positivo = entrada, negativo = salida
	Date      time.Time
}

func (in MovementInput) validate() error {
	if in.ProductID <= 0 {
		return domain.Invalid("product_id es requerido")
	}
	if in.Quantity == 0 {
		return domain.Invalid("la cantidad no puede ser cero")
	}
	return nil
}

// List lista los movimientos activos; withProduct carga el producto de cada uno.
func (uc *StockMovementUseCase) List(ctx context.Context, withProduct bool) ([]dto.StockMovementResponse, error) {
	list, err := uc.store.Movements().ListActive(ctx)
	if err != nil {
		return nil, domain.Storage("listar movimientos", err)
	}
	if withProduct {
		if err := uc.attachProducts(ctx, list); err != nil {
			return nil, domain.Storage("cargar productos", err)
		}
	}
	items := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *dto.FromStockMovement(m))
	}
	return items, nil
}

// Get obtiene un movimiento activo por ID.
func (uc *StockMovementUseCase) Get(ctx context.Context, id int64, withProduct bool) (*dto.StockMovementResponse, error) {
	m, err := uc.store.Movements().GetByID(ctx, id)
	if err != nil {
		return nil, domain.Storage("obtener movimiento", err)
	}
	if m == nil || m.IsDeleted {
		return nil, domain.NotFound("movimiento no encontrado")
	}
	if withProduct {
		if err := uc.attachProducts(ctx, []*entity.StockMovement{m}); err != nil {
			return nil, domain.Storage("cargar producto", err)
		}
	}
	return dto.FromStockMovement(m), nil
}

// Create registra un movimiento y suma su cantidad al stock del producto (atómico).
func (uc *StockMovementUseCase) Create(ctx context.Context, in MovementInput) (*dto.StockMovementResponse, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	if in.Date.IsZero() {
		in.Date = now
	}

	var created *entity.StockMovement
	err := uc.store.Run(ctx, func(r repository.TxRepos) error {
		p, err := r.Products().GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if p == nil || p.IsDeleted {
			return domain.Invalid("producto no encontrado")
		}

		newStock := inventory.Apply(p.StockQuantity, in.Quantity)
		if uc.policy.StrictCreate && !inventory.NonNegative(newStock) {
			uc.logRejected("create", p.ID, p.StockQuantity, newStock)
			return domain.ErrNegativeStock
		}

		m := &entity.StockMovement{
			Quantity:  in.Quantity,
			Date:      in.Date,
			ProductID: p.ID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := r.Movements().Create(ctx, m); err != nil {
			return err
		}
		p.StockQuantity = newStock
		p.UpdatedAt = now
		if err := r.Products().Update(ctx, p); err != nil {
			return err
		}
		created = m
		return nil
	})
	if err != nil {
		return nil, domain.Storage("registrar movimiento", err)
	}
	return dto.FromStockMovement(created), nil
}

// Update revierte el efecto del movimiento sobre su producto actual y aplica el nuevo
// (posiblemente sobre otro producto). Las cuatro escrituras van en una sola transacción.
func (uc *StockMovementUseCase) Update(ctx context.Context, id int64, in MovementInput) (*dto.StockMovementResponse, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	if in.Date.IsZero() {
		in.Date = now
	}

	var updated *entity.StockMovement
	err := uc.store.Run(ctx, func(r repository.TxRepos) error {
		m, err := r.Movements().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if m == nil || m.IsDeleted {
			return domain.NotFound("movimiento no encontrado")
		}

		locked, err := lockProducts(ctx, r, m.ProductID, in.ProductID)
		if err != nil {
			return err
		}
		oldP, newP := locked[m.ProductID], locked[in.ProductID]
		if oldP == nil || oldP.IsDeleted || newP == nil || newP.IsDeleted {
			return domain.Invalid("producto no encontrado")
		}

		same := oldP.ID == newP.ID
		oldStock, newStock := inventory.Move(oldP.StockQuantity, m.Quantity, newP.StockQuantity, in.Quantity, same)
		if uc.policy.StrictUpdate && (!inventory.NonNegative(oldStock) || !inventory.NonNegative(newStock)) {
			uc.logRejected("update", m.ProductID, oldP.StockQuantity, oldStock)
			return domain.ErrNegativeStock
		}

		oldP.StockQuantity = oldStock
		oldP.UpdatedAt = now
		if err := r.Products().Update(ctx, oldP); err != nil {
			return err
		}
		if !same {
			newP.StockQuantity = newStock
			newP.UpdatedAt = now
			if err := r.Products().Update(ctx, newP); err != nil {
				return err
			}
		}

		m.Quantity = in.Quantity
		m.Date = in.Date
		m.ProductID = in.ProductID
		m.UpdatedAt = now
		if err := r.Movements().Update(ctx, m); err != nil {
			return err
		}
		updated = m
		return nil
	})
	if err != nil {
		return nil, domain.Storage("actualizar movimiento", err)
	}
	return dto.FromStockMovement(updated), nil
}

// Delete elimina lógicamente el movimiento revirtiendo su efecto en el stock.
// Si el producto ya está eliminado el historial queda congelado: no se ajusta el stock.
// Si el producto está activo y la reversión deja stock negativo, se rechaza con conflicto.
func (uc *StockMovementUseCase) Delete(ctx context.Context, id int64) error {
	err := uc.store.Run(ctx, func(r repository.TxRepos) error {
		m, err := r.Movements().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if m == nil || m.IsDeleted {
			return domain.NotFound("movimiento no encontrado")
		}
		p, err := r.Products().GetForUpdate(ctx, m.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.Invalid("el producto del movimiento no existe")
		}

		now := time.Now().UTC()
		if !p.IsDeleted {
			newStock := inventory.Revert(p.StockQuantity, m.Quantity)
			if !inventory.NonNegative(newStock) {
				uc.logRejected("delete", p.ID, p.StockQuantity, newStock)
				return domain.ErrNegativeStock
			}
			p.StockQuantity = newStock
			p.UpdatedAt = now
			if err := r.Products().Update(ctx, p); err != nil {
				return err
			}
		}

		m.SoftDelete(now)
		return r.Movements().Update(ctx, m)
	})
	return domain.Storage("eliminar movimiento", err)
}

// CheckConsistency compara el stock cacheado del producto con la suma firmada de sus movimientos activos.
func (uc *StockMovementUseCase) CheckConsistency(ctx context.Context, productID int64) (*dto.LedgerCheckResponse, error) {
	p, err := uc.store.Products().GetByID(ctx, productID)
	if err != nil {
		return nil, domain.Storage("obtener producto", err)
	}
	if p == nil || p.IsDeleted {
		return nil, domain.NotFound("producto no encontrado")
	}
	movs, err := uc.store.Movements().ListActiveByProduct(ctx, productID)
	if err != nil {
		return nil, domain.Storage("listar movimientos", err)
	}
	qty := make([]int64, 0, len(movs))
	for _, m := range movs {
		qty = append(qty, m.Quantity)
	}
	sum := inventory.Sum(qty...)
	return &dto.LedgerCheckResponse{
		ProductID:     p.ID,
		StockQuantity: p.StockQuantity,
		LedgerSum:     sum,
		Movements:     len(movs),
		Consistent:    sum == p.StockQuantity,
	}, nil
}

func (uc *StockMovementUseCase) attachProducts(ctx context.Context, list []*entity.StockMovement) error {
	if len(list) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(list))
	for _, m := range list {
		ids = append(ids, m.ProductID)
	}
	products, err := uc.store.Products().ListByIDs(ctx, ids)
	if err != nil {
		return err
	}
	byID := make(map[int64]*entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	for _, m := range list {
		m.Product = byID[m.ProductID]
	}
	return nil
}

func (uc *StockMovementUseCase) logRejected(op string, productID, from, to int64) {
	uc.log.Warn().
		Str("op", op).
		Int64("product_id", productID).
		Int64("stock", from).
		Int64("resulting_stock", to).
		Msg("movimiento rechazado: stock negativo")
}

// lockProducts bloquea las filas de los productos en orden ascendente de ID para evitar deadlocks
// entre ediciones concurrentes que mueven stock entre los mismos dos productos.
func lockProducts(ctx context.Context, r repository.TxRepos, ids ...int64) (map[int64]*entity.Product, error) {
	sorted := append([]int64(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	out := make(map[int64]*entity.Product, len(sorted))
	for _, id := range sorted {
		if _, done := out[id]; done {
			continue
		}
		p, err := r.Products().GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		out[id] = p
	}
	return out, nil
}
