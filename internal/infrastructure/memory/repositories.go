package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

func byID[T any](id func(T) int64) func(a, b T) int {
	return func(a, b T) int { return cmp.Compare(id(a), id(b)) }
}

func idSet(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func missing(table string, id int64) error {
	return domain.NotFound(fmt.Sprintf("%s %d no existe", table, id))
}

// ── categories ───────────────────────────────────────────────────────────────

type categoryRepo struct {
	a   access
	seq *sequences
}

func (r *categoryRepo) Create(_ context.Context, c *entity.Category) error {
	return r.a.update(func(t *tables) error {
		c.ID = r.seq.category.Add(1)
		t.categories[c.ID] = copyCategory(c)
		return nil
	})
}

func (r *categoryRepo) GetByID(_ context.Context, id int64) (*entity.Category, error) {
	var out *entity.Category
	r.a.view(func(t *tables) {
		if c, ok := t.categories[id]; ok {
			out = copyCategory(c)
		}
	})
	return out, nil
}

func (r *categoryRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Category, error) {
	return r.GetByID(ctx, id)
}

func (r *categoryRepo) Update(_ context.Context, c *entity.Category) error {
	return r.a.update(func(t *tables) error {
		if _, ok := t.categories[c.ID]; !ok {
			return missing("categoría", c.ID)
		}
		t.categories[c.ID] = copyCategory(c)
		return nil
	})
}

func (r *categoryRepo) ListActive(_ context.Context) ([]*entity.Category, error) {
	out := []*entity.Category{}
	r.a.view(func(t *tables) {
		for _, c := range t.categories {
			if !c.IsDeleted {
				out = append(out, copyCategory(c))
			}
		}
	})
	slices.SortFunc(out, byID(func(c *entity.Category) int64 { return c.ID }))
	return out, nil
}

func (r *categoryRepo) ListByIDs(_ context.Context, ids []int64) ([]*entity.Category, error) {
	want := idSet(ids)
	out := []*entity.Category{}
	r.a.view(func(t *tables) {
		for id := range want {
			if c, ok := t.categories[id]; ok {
				out = append(out, copyCategory(c))
			}
		}
	})
	slices.SortFunc(out, byID(func(c *entity.Category) int64 { return c.ID }))
	return out, nil
}

// ── products ─────────────────────────────────────────────────────────────────

type productRepo struct {
	a   access
	seq *sequences
}

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	return r.a.update(func(t *tables) error {
		if _, ok := t.categories[p.CategoryID]; !ok {
			return fmt.Errorf("producto: categoría %d inexistente (FK)", p.CategoryID)
		}
		p.ID = r.seq.product.Add(1)
		t.products[p.ID] = copyProduct(p)
		return nil
	})
}

func (r *productRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	var out *entity.Product
	r.a.view(func(t *tables) {
		if p, ok := t.products[id]; ok {
			out = copyProduct(p)
		}
	})
	return out, nil
}

func (r *productRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *productRepo) Update(_ context.Context, p *entity.Product) error {
	return r.a.update(func(t *tables) error {
		if _, ok := t.products[p.ID]; !ok {
			return missing("producto", p.ID)
		}
		t.products[p.ID] = copyProduct(p)
		return nil
	})
}

func (r *productRepo) ListActive(_ context.Context) ([]*entity.Product, error) {
	out := []*entity.Product{}
	r.a.view(func(t *tables) {
		for _, p := range t.products {
			if !p.IsDeleted {
				out = append(out, copyProduct(p))
			}
		}
	})
	slices.SortFunc(out, byID(func(p *entity.Product) int64 { return p.ID }))
	return out, nil
}

func (r *productRepo) ListByIDs(_ context.Context, ids []int64) ([]*entity.Product, error) {
	want := idSet(ids)
	out := []*entity.Product{}
	r.a.view(func(t *tables) {
		for id := range want {
			if p, ok := t.products[id]; ok {
				out = append(out, copyProduct(p))
			}
		}
	})
	slices.SortFunc(out, byID(func(p *entity.Product) int64 { return p.ID }))
	return out, nil
}

func (r *productRepo) CountActiveByCategory(_ context.Context, categoryID int64) (int64, error) {
	var n int64
	r.a.view(func(t *tables) {
		for _, p := range t.products {
			if !p.IsDeleted && p.CategoryID == categoryID {
				n++
			}
		}
	})
	return n, nil
}

// ── images ───────────────────────────────────────────────────────────────────

type imageRepo struct {
	a   access
	seq *sequences
}

func (r *imageRepo) Create(_ context.Context, img *entity.Image) error {
	return r.a.update(func(t *tables) error {
		if _, ok := t.products[img.ProductID]; !ok {
			return fmt.Errorf("imagen: producto %d inexistente (FK)", img.ProductID)
		}
		img.ID = r.seq.image.Add(1)
		t.images[img.ID] = copyImage(img)
		return nil
	})
}

func (r *imageRepo) GetByID(_ context.Context, id int64) (*entity.Image, error) {
	var out *entity.Image
	r.a.view(func(t *tables) {
		if img, ok := t.images[id]; ok {
			out = copyImage(img)
		}
	})
	return out, nil
}

func (r *imageRepo) Update(_ context.Context, img *entity.Image) error {
	return r.a.update(func(t *tables) error {
		if _, ok := t.images[img.ID]; !ok {
			return missing("imagen", img.ID)
		}
		t.images[img.ID] = copyImage(img)
		return nil
	})
}

func (r *imageRepo) ListActiveByProducts(_ context.Context, productIDs []int64) ([]*entity.Image, error) {
	want := idSet(productIDs)
	out := []*entity.Image{}
	r.a.view(func(t *tables) {
		for _, img := range t.images {
			if _, ok := want[img.ProductID]; ok && !img.IsDeleted {
				out = append(out, copyImage(img))
			}
		}
	})
	slices.SortFunc(out, byID(func(i *entity.Image) int64 { return i.ID }))
	return out, nil
}

func (r *imageRepo) SoftDeleteByProduct(_ context.Context, productID int64, now time.Time) (int64, error) {
	var n int64
	err := r.a.update(func(t *tables) error {
		for _, img := range t.images {
			if img.ProductID == productID && !img.IsDeleted {
				img.SoftDelete(now)
				n++
			}
		}
		return nil
	})
	return n, err
}

// ── stock movements ──────────────────────────────────────────────────────────

type movementRepo struct {
	a   access
	seq *sequences
}

func (r *movementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	return r.a.update(func(t *tables) error {
		if _, ok := t.products[m.ProductID]; !ok {
			return fmt.Errorf("movimiento: producto %d inexistente (FK)", m.ProductID)
		}
		m.ID = r.seq.movement.Add(1)
		t.movements[m.ID] = copyMovement(m)
		return nil
	})
}

func (r *movementRepo) GetByID(_ context.Context, id int64) (*entity.StockMovement, error) {
	var out *entity.StockMovement
	r.a.view(func(t *tables) {
		if m, ok := t.movements[id]; ok {
			out = copyMovement(m)
		}
	})
	return out, nil
}

func (r *movementRepo) GetForUpdate(ctx context.Context, id int64) (*entity.StockMovement, error) {
	return r.GetByID(ctx, id)
}

func (r *movementRepo) Update(_ context.Context, m *entity.StockMovement) error {
	return r.a.update(func(t *tables) error {
		if _, ok := t.movements[m.ID]; !ok {
			return missing("movimiento", m.ID)
		}
		if _, ok := t.products[m.ProductID]; !ok {
			return fmt.Errorf("movimiento: producto %d inexistente (FK)", m.ProductID)
		}
		t.movements[m.ID] = copyMovement(m)
		return nil
	})
}

func (r *movementRepo) ListActive(_ context.Context) ([]*entity.StockMovement, error) {
	return r.list(func(m *entity.StockMovement) bool { return !m.IsDeleted }), nil
}

func (r *movementRepo) ListActiveByProduct(_ context.Context, productID int64) ([]*entity.StockMovement, error) {
	return r.list(func(m *entity.StockMovement) bool { return !m.IsDeleted && m.ProductID == productID }), nil
}

func (r *movementRepo) list(keep func(m *entity.StockMovement) bool) []*entity.StockMovement {
	out := []*entity.StockMovement{}
	r.a.view(func(t *tables) {
		for _, m := range t.movements {
			if keep(m) {
				out = append(out, copyMovement(m))
			}
		}
	})
	slices.SortFunc(out, byID(func(m *entity.StockMovement) int64 { return m.ID }))
	return out
}

func (r *movementRepo) SoftDeleteByProduct(_ context.Context, productID int64, now time.Time) (int64, error) {
	var n int64
	err := r.a.update(func(t *tables) error {
		for _, m := range t.movements {
			if m.ProductID == productID && !m.IsDeleted {
				m.SoftDelete(now)
				n++
			}
		}
		return nil
	})
	return n, err
}
