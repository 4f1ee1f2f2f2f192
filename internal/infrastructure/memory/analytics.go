package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// analyticsRepo agrega sobre el estado confirmado. Misma semántica que las consultas SQL del repositorio Postgres.
type analyticsRepo struct {
	a access
}

func (r *analyticsRepo) TopCategories(_ context.Context, limit int) ([]repository.CategoryProductCount, error) {
	out := []repository.CategoryProductCount{}
	r.a.view(func(t *tables) {
		counts := map[int64]int64{}
		for _, p := range t.products {
			if !p.IsDeleted {
				counts[p.CategoryID]++
			}
		}
		for _, c := range t.categories {
			if c.IsDeleted {
				continue
			}
			out = append(out, repository.CategoryProductCount{
				CategoryID:   c.ID,
				CategoryName: c.Name,
				ProductCount: counts[c.ID],
			})
		}
	})
	slices.SortFunc(out, func(a, b repository.CategoryProductCount) int {
		if c := cmp.Compare(b.ProductCount, a.ProductCount); c != 0 {
			return c
		}
		return cmp.Compare(a.CategoryID, b.CategoryID)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *analyticsRepo) AveragePrice(_ context.Context, categoryID int64) (decimal.Decimal, int64, error) {
	sum := decimal.Zero
	var n int64
	r.a.view(func(t *tables) {
		if c, ok := t.categories[categoryID]; !ok || c.IsDeleted {
			return
		}
		for _, p := range t.products {
			if !p.IsDeleted && p.CategoryID == categoryID {
				sum = sum.Add(p.Price)
				n++
			}
		}
	})
	if n == 0 {
		return decimal.Zero, 0, nil
	}
	return sum.Div(decimal.NewFromInt(n)), n, nil
}

func (r *analyticsRepo) StockValue(_ context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	r.a.view(func(t *tables) {
		for _, p := range t.products {
			if !p.IsDeleted {
				total = total.Add(p.Price.Mul(decimal.NewFromInt(p.StockQuantity)))
			}
		}
	})
	return total, nil
}

func (r *analyticsRepo) TotalSales(_ context.Context) (int64, error) {
	var total int64
	r.a.view(func(t *tables) {
		for _, m := range t.movements {
			if !m.IsDeleted && m.Quantity < 0 {
				total -= m.Quantity
			}
		}
	})
	return total, nil
}

func (r *analyticsRepo) StockByCategory(_ context.Context) ([]repository.CategoryStock, error) {
	out := []repository.CategoryStock{}
	r.a.view(func(t *tables) {
		agg := map[int64]*repository.CategoryStock{}
		for _, p := range t.products {
			if p.IsDeleted {
				continue
			}
			c, ok := t.categories[p.CategoryID]
			if !ok || c.IsDeleted {
				continue
			}
			row, ok := agg[c.ID]
			if !ok {
				row = &repository.CategoryStock{CategoryID: c.ID, CategoryName: c.Name, TotalValue: decimal.Zero}
				agg[c.ID] = row
			}
			row.TotalStock += p.StockQuantity
			row.TotalValue = row.TotalValue.Add(p.Price.Mul(decimal.NewFromInt(p.StockQuantity)))
		}
		for _, row := range agg {
			if row.TotalStock > 0 {
				out = append(out, *row)
			}
		}
	})
	slices.SortFunc(out, func(a, b repository.CategoryStock) int {
		if c := cmp.Compare(b.TotalStock, a.TotalStock); c != 0 {
			return c
		}
		return cmp.Compare(a.CategoryID, b.CategoryID)
	})
	return out, nil
}
