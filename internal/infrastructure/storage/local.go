// Package storage guarda los archivos subidos en disco local y expone su URL pública.
package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/jhoicas/inventario-ledger/internal/application/ports"
)

var _ ports.FileStorage = (*LocalStorage)(nil)

// LocalStorage escribe en Dir y publica bajo PublicPath (servido como estático por Fiber).
type LocalStorage struct {
	dir        string
	publicPath string
}

// NewLocalStorage crea el directorio si no existe.
func NewLocalStorage(dir, publicPath string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de imágenes: %w", err)
	}
	return &LocalStorage{dir: dir, publicPath: "/" + strings.Trim(publicPath, "/")}, nil
}

// Dir directorio en disco (para montar el handler de estáticos).
func (s *LocalStorage) Dir() string { return s.dir }

// Save escribe data como name y devuelve la URL pública. Escribe a un temporal y renombra:
// un lector nunca ve un archivo a medias.
func (s *LocalStorage) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("nombre de archivo inválido: %q", name)
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("crear temporal: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("escribir archivo: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("cerrar archivo: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return "", fmt.Errorf("permisos: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return "", fmt.Errorf("mover archivo: %w", err)
	}
	return path.Join(s.publicPath, name), nil
}
