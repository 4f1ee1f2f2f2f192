package ports

import "context"

// FileStorage define el puerto de salida para guardar archivos subidos (imágenes de producto).
// Save persiste data bajo name y devuelve la URL pública con la que se recupera el archivo.
// Los archivos nunca se borran: las URLs publicadas deben seguir siendo válidas.
type FileStorage interface {
	Save(ctx context.Context, name string, data []byte) (url string, err error)
}
