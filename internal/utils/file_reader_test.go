package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	axonerrors "github.com/toyz/axonmeta/internal/errors"
)

func TestFileReaderCaching(t *testing.T) {
	path := filepath.Join(t.TempDir(), "go.mod")
	require.NoError(t, os.WriteFile(path, []byte("module example.com/a\n"), 0644))

	reader := NewFileReader()

	first, err := reader.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "module example.com/a\n", first)
	assert.Equal(t, 1, reader.CachedFiles())

	t.Run("modified files are reread", func(t *testing.T) {
		later := time.Now().Add(2 * time.Second)
		require.NoError(t, os.WriteFile(path, []byte("module example.com/bb\n"), 0644))
		require.NoError(t, os.Chtimes(path, later, later))

		second, err := reader.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "module example.com/bb\n", second)
	})

	t.Run("invalidate and clear", func(t *testing.T) {
		reader.InvalidateFile(path)
		assert.Equal(t, 0, reader.CachedFiles())

		_, err := reader.ReadFile(path)
		require.NoError(t, err)
		reader.ClearCache()
		assert.Equal(t, 0, reader.CachedFiles())
	})
}

func TestFileReaderErrors(t *testing.T) {
	reader := NewFileReader()

	_, err := reader.ReadFile("")
	require.Error(t, err)

	_, err = reader.ReadFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)

	var axonErr axonerrors.AxonError
	require.True(t, axonerrors.As(err, &axonErr))
	assert.Equal(t, axonerrors.FileSystemErrorCode, axonErr.ErrorCode())
}

func TestFileCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	cache := NewFileCache[int]()
	require.NoError(t, cache.Set(path, 42))

	value, ok := cache.Get(path)
	assert.True(t, ok)
	assert.Equal(t, 42, value)

	require.NoError(t, os.Remove(path))
	_, ok = cache.Get(path)
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Size(), "stale entries are evicted")

	assert.Error(t, cache.Set(path, 1))
}
