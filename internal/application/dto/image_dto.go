package dto

// ImageResponse salida de una imagen de producto.
type ImageResponse struct {
	ID        int64  `json:"id"`
	URL       string `json:"url"`
	ProductID int64  `json:"product_id"`
}
