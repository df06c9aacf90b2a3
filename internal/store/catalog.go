// Package store persists catalog and history state as flat JSON files.
// Each store owns its file path and serializes access with an
// in-process mutex; writes go through a temp file and os.Rename so a
// crashed write never leaves a partial snapshot behind.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/gamepeek/gamepeek/internal/domain"
)

// CatalogStore persists the full catalog listing. The file is either
// absent or a complete snapshot; it is replaced wholesale on save.
type CatalogStore struct {
	path string
	mu   sync.Mutex
}

func NewCatalogStore(path string) *CatalogStore {
	return &CatalogStore{path: path}
}

// Load reads the cached listing. A missing or unreadable file is not
// an error: it returns (nil, nil) so the caller falls back to a remote
// fetch. Corruption is logged and otherwise ignored.
func (s *CatalogStore) Load() ([]domain.App, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog cache: %w", err)
	}

	var apps []domain.App
	if err := json.Unmarshal(data, &apps); err != nil {
		log.Printf("catalog cache corrupt, treating as absent: %v", err)
		return nil, nil
	}

	return apps, nil
}

// Save replaces the cached listing wholesale.
func (s *CatalogStore) Save(apps []domain.App) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(apps)
	if err != nil {
		return fmt.Errorf("failed to encode catalog cache: %w", err)
	}

	return writeFileAtomic(s.path, data)
}

// writeFileAtomic writes data next to path and renames it into place.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", filepath.Base(path), err)
	}

	return nil
}
