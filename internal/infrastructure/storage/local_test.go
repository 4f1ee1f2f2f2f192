package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "images")
	s, err := NewLocalStorage(dir, "/images/")
	require.NoError(t, err)

	url, err := s.Save(context.Background(), "abc.png", []byte("data"))
	require.NoError(t, err)
	assert.Equal(t, "/images/abc.png", url)

	got, err := os.ReadFile(filepath.Join(dir, "abc.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), got)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no deben quedar temporales")
}

func TestLocalStorage_RejectsPathTraversal(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "images")
	require.NoError(t, err)

	for _, name := range []string{"", "../x.png", "a/b.png", ".hidden"} {
		_, err := s.Save(context.Background(), name, []byte("x"))
		assert.Error(t, err, name)
	}
}

func TestLocalStorage_CanceledContext(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "/images")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Save(ctx, "a.png", []byte("x"))
	assert.ErrorIs(t, err, context.Canceled)
}
