package localstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexivanou/weather-history/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorage(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "local_storage")
	s, err := NewFileStorage(dir)
	require.NoError(t, err)

	t.Run("Missing key", func(t *testing.T) {
		v, ok, err := s.GetItem("absent")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, v)
	})

	t.Run("Set and get", func(t *testing.T) {
		require.NoError(t, s.SetItem(StorageKey, `[{"id":"1"}]`))

		v, ok, err := s.GetItem(StorageKey)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `[{"id":"1"}]`, v)

		_, err = os.Stat(filepath.Join(dir, StorageKey+".json"))
		assert.NoError(t, err)
	})

	t.Run("Overwrite leaves no temp files", func(t *testing.T) {
		require.NoError(t, s.SetItem(StorageKey, "[]"))

		v, _, err := s.GetItem(StorageKey)
		require.NoError(t, err)
		assert.Equal(t, "[]", v)

		matches, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("Invalid key", func(t *testing.T) {
		assert.Error(t, s.SetItem("../escape", "x"))
		_, _, err := s.GetItem("a/b")
		assert.Error(t, err)
	})
}

func TestMemoryStorage(t *testing.T) {
	s := NewMemoryStorage()

	_, ok, err := s.GetItem(StorageKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SetItem(StorageKey, "[]"))
	v, ok, err := s.GetItem(StorageKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)
}

func TestOpenStorage(t *testing.T) {
	s, err := OpenStorage(config.StorageConfig{LocalBackend: config.LocalBackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStorage{}, s)

	dir := t.TempDir()
	s, err = OpenStorage(config.StorageConfig{LocalBackend: config.LocalBackendFile, LocalPath: dir})
	require.NoError(t, err)
	assert.IsType(t, &FileStorage{}, s)
}
