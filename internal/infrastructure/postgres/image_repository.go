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

var _ repository.ImageRepository = (*ImageRepo)(nil)

const imageColumns = `id, url, product_id, is_deleted, created_at, updated_at`

// ImageRepo implementación del puerto ImageRepository sobre PostgreSQL.
type ImageRepo struct {
	q Querier
}

// NewImageRepository construye el adaptador. Pasar pool o tx (Querier).
func NewImageRepository(q Querier) *ImageRepo {
	return &ImageRepo{q: q}
}

func scanImage(row pgx.Row) (*entity.Image, error) {
	var i entity.Image
	if err := row.Scan(&i.ID, &i.URL, &i.ProductID, &i.IsDeleted, &i.CreatedAt, &i.UpdatedAt); err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *ImageRepo) Create(ctx context.Context, img *entity.Image) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO images (url, product_id, is_deleted, created_at, updated_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		img.URL, img.ProductID, img.IsDeleted, img.CreatedAt, img.UpdatedAt,
	).Scan(&img.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Invalid("el producto no existe")
		}
		return fmt.Errorf("insert image: %w", err)
	}
	return nil
}

func (r *ImageRepo) GetByID(ctx context.Context, id int64) (*entity.Image, error) {
	img, err := scanImage(r.q.QueryRow(ctx, `SELECT `+imageColumns+` FROM images WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get image: %w", err)
	}
	return img, nil
}

func (r *ImageRepo) Update(ctx context.Context, img *entity.Image) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE images SET url = $2, product_id = $3, is_deleted = $4, updated_at = $5 WHERE id = $1`,
		img.ID, img.URL, img.ProductID, img.IsDeleted, img.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update image: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("imagen no encontrada")
	}
	return nil
}

// ListActiveByProducts imágenes activas de varios productos en una sola consulta.
func (r *ImageRepo) ListActiveByProducts(ctx context.Context, productIDs []int64) ([]*entity.Image, error) {
	if len(productIDs) == 0 {
		return []*entity.Image{}, nil
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+imageColumns+` FROM images WHERE product_id = ANY($1) AND NOT is_deleted ORDER BY id`, productIDs)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	defer rows.Close()
	list := []*entity.Image{}
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan image: %w", err)
		}
		list = append(list, img)
	}
	return list, rows.Err()
}

func (r *ImageRepo) SoftDeleteByProduct(ctx context.Context, productID int64, now time.Time) (int64, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE images SET is_deleted = TRUE, updated_at = $2 WHERE product_id = $1 AND NOT is_deleted`,
		productID, now,
	)
	if err != nil {
		return 0, fmt.Errorf("soft delete images: %w", err)
	}
	return cmd.RowsAffected(), nil
}
