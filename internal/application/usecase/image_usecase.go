package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/ports"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// MaxImageBytes tamaño máximo por defecto de una imagen subida (5 MiB).
const MaxImageBytes int64 = 5 * 1024 * 1024

// AllowedImageExtensions extensiones aceptadas (comparación sin distinguir mayúsculas).
var AllowedImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// ImageUseCase subida y borrado lógico de imágenes de producto.
type ImageUseCase struct {
	store    repository.Store
	storage  ports.FileStorage
	log      *logger.Logger
	maxBytes int64
}

// NewImageUseCase construye el caso de uso. maxBytes <= 0 usa MaxImageBytes.
func NewImageUseCase(store repository.Store, storage ports.FileStorage, log *logger.Logger, maxBytes int64) *ImageUseCase {
	if maxBytes <= 0 {
		maxBytes = MaxImageBytes
	}
	return &ImageUseCase{store: store, storage: storage, log: log.Named("images"), maxBytes: maxBytes}
}

// Upload valida y guarda el archivo bajo un nombre único (uuid + extensión) y crea el registro Image.
func (uc *ImageUseCase) Upload(ctx context.Context, productID int64, data []byte, fileName string) (*dto.ImageResponse, error) {
	p, err := uc.store.Products().GetByID(ctx, productID)
	if err != nil {
		return nil, domain.Storage("obtener producto", err)
	}
	if p == nil || p.IsDeleted {
		return nil, domain.NotFound("producto no encontrado")
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	if !allowedExtension(ext) {
		return nil, domain.Invalid(fmt.Sprintf("tipo de archivo inválido: %q. Permitidos: %s",
			ext, strings.Join(AllowedImageExtensions, ", ")))
	}
	if len(data) == 0 {
		return nil, domain.Invalid("no se recibió ningún archivo")
	}
	if int64(len(data)) > uc.maxBytes {
		return nil, domain.Invalid(fmt.Sprintf("el archivo (%d bytes) supera el límite de %d bytes", len(data), uc.maxBytes))
	}

	storedName := uuid.New().String() + ext
	url, err := uc.storage.Save(ctx, storedName, data)
	if err != nil {
		uc.log.Error().Err(err).Int64("product_id", productID).Str("file", storedName).Msg("guardar archivo")
		return nil, domain.Storage("guardar archivo", err)
	}

	now := time.Now().UTC()
	img := &entity.Image{
		URL:       url,
		ProductID: productID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = uc.store.Run(ctx, func(r repository.TxRepos) error {
		// El producto pudo eliminarse mientras se guardaba el archivo.
		p, err := r.Products().GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if p == nil || p.IsDeleted {
			return domain.NotFound("producto no encontrado")
		}
		return r.Images().Create(ctx, img)
	})
	if err != nil {
		return nil, domain.Storage("crear imagen", err)
	}

	uc.log.Info().Int64("product_id", productID).Int64("image_id", img.ID).Int("bytes", len(data)).Msg("imagen subida")
	out := dto.FromImage(img)
	return &out, nil
}

// ListByProduct lista las imágenes activas de un producto activo.
func (uc *ImageUseCase) ListByProduct(ctx context.Context, productID int64) ([]dto.ImageResponse, error) {
	p, err := uc.store.Products().GetByID(ctx, productID)
	if err != nil {
		return nil, domain.Storage("obtener producto", err)
	}
	if p == nil || p.IsDeleted {
		return nil, domain.NotFound("producto no encontrado")
	}
	imgs, err := uc.store.Images().ListActiveByProducts(ctx, []int64{productID})
	if err != nil {
		return nil, domain.Storage("listar imágenes", err)
	}
	items := make([]dto.ImageResponse, 0, len(imgs))
	for _, img := range imgs {
		items = append(items, dto.FromImage(img))
	}
	return items, nil
}

// Delete elimina lógicamente la imagen. El archivo almacenado se conserva.
func (uc *ImageUseCase) Delete(ctx context.Context, id int64) error {
	err := uc.store.Run(ctx, func(r repository.TxRepos) error {
		img, err := r.Images().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if img == nil || img.IsDeleted {
			return domain.NotFound("imagen no encontrada")
		}
		img.SoftDelete(time.Now().UTC())
		return r.Images().Update(ctx, img)
	})
	return domain.Storage("eliminar imagen", err)
}

func allowedExtension(ext string) bool {
	for _, a := range AllowedImageExtensions {
		if ext == a {
			return true
		}
	}
	return false
}
