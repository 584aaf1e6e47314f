package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/themer/internal/fsutil"
	"github.com/aretw0/themer/pkg/domain"
)

// Store implements ports.StateStore using the local filesystem.
// Each key is one JSON document in the scratch directory, e.g. modifyVarsArray.json.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".themer/temp".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".themer", "temp")
	}
	return &Store{BasePath: basePath}
}

func (s *Store) path(key string) string {
	return filepath.Join(s.BasePath, key+".json")
}

// Save overwrites the key's file atomically.
func (s *Store) Save(ctx context.Context, key string, data []byte) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}
	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure state directory: %w", err)
	}
	if err := fsutil.WriteFileAtomic(s.path(key), data, 0644); err != nil {
		return fmt.Errorf("failed to write state %s: %w", key, err)
	}
	return nil
}

// Load reads the key's file.
func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, fmt.Errorf("key cannot be empty")
	}
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrStateNotFound
		}
		return nil, fmt.Errorf("failed to read state %s: %w", key, err)
	}
	return data, nil
}

// Delete removes the key's file.
func (s *Store) Delete(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete state %s: %w", key, err)
	}
	return nil
}

// Reset removes every JSON state file, leaving other scratch files alone.
func (s *Store) Reset(ctx context.Context) error {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to list state: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		if err := os.Remove(filepath.Join(s.BasePath, entry.Name())); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to reset state: %w", err)
		}
	}
	return nil
}
