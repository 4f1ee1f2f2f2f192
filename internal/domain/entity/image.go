package entity

import "time"

// Image referencia un archivo almacenado asociado a un producto.
type Image struct {
	ID        int64
	URL       string // ruta pública devuelta por el almacenamiento (ej. /images/<uuid>.png)
	ProductID int64
	IsDeleted bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SoftDelete marca la imagen como eliminada. Los bytes almacenados no se tocan.
func (i *Image) SoftDelete(now time.Time) {
	i.IsDeleted = true
	i.UpdatedAt = now
}
