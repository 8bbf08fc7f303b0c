package localstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/alexivanou/weather-history/internal/config"
	"github.com/patrickmn/go-cache"
)

// Storage is a string key-value store in the manner of browser localStorage.
type Storage interface {
	// GetItem returns the stored value and whether the key exists.
	GetItem(key string) (string, bool, error)
	SetItem(key, value string) error
}

var validKey = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// FileStorage keeps one file per key inside a directory.
type FileStorage struct {
	dir string
	mu  sync.Mutex
}

// NewFileStorage creates the directory if needed and returns a storage rooted at it.
func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create local storage directory: %w", err)
	}
	return &FileStorage{dir: dir}, nil
}

func (s *FileStorage) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

func (s *FileStorage) GetItem(key string) (string, bool, error) {
	p, err := s.path(key)
	if err != nil {
		return "", false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return string(data), true, nil
}

// SetItem replaces the value by writing a temporary file and renaming it over
// the previous one.
func (s *FileStorage) SetItem(key, value string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// MemoryStorage keeps values in process memory. Nothing expires.
type MemoryStorage struct {
	items *cache.Cache
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: cache.New(cache.NoExpiration, 0)}
}

func (s *MemoryStorage) GetItem(key string) (string, bool, error) {
	v, ok := s.items.Get(key)
	if !ok {
		return "", false, nil
	}
	str, ok := v.(string)
	if !ok {
		return "", false, fmt.Errorf("unexpected value type %T for %s", v, key)
	}
	return str, true, nil
}

func (s *MemoryStorage) SetItem(key, value string) error {
	s.items.Set(key, value, cache.NoExpiration)
	return nil
}

// OpenStorage returns the storage selected by the configuration
func OpenStorage(cfg config.StorageConfig) (Storage, error) {
	if cfg.LocalBackend == config.LocalBackendMemory {
		return NewMemoryStorage(), nil
	}
	return NewFileStorage(cfg.LocalPath)
}
