package entity

import "time"

// Category representa una categoría de productos. Los productos la referencian por CategoryID.
type Category struct {
	ID        int64
	Name      string
	IsDeleted bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SoftDelete marca la categoría como eliminada.
func (c *Category) SoftDelete(now time.Time) {
	c.IsDeleted = true
	c.UpdatedAt = now
}
