package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/gamepeek/gamepeek/internal/domain"
)

// MaxHistoryEntries bounds the persisted history log. The oldest
// entries are dropped once the cap is reached.
const MaxHistoryEntries = 100

// HistoryStore persists the newest-first, size-bounded history log.
// Append is read-modify-write under the store mutex, so concurrent
// requests cannot lose each other's entries.
type HistoryStore struct {
	path string
	mu   sync.Mutex
}

func NewHistoryStore(path string) *HistoryStore {
	return &HistoryStore{path: path}
}

// Append prepends an entry, truncates to MaxHistoryEntries, and
// persists the result.
func (s *HistoryStore) Append(entry domain.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.load()

	entries = append([]domain.HistoryEntry{entry}, entries...)
	if len(entries) > MaxHistoryEntries {
		entries = entries[:MaxHistoryEntries]
	}

	return s.save(entries)
}

// Load returns up to limit entries, newest first. A limit <= 0 or
// above the cap returns everything.
func (s *HistoryStore) Load(limit int) ([]domain.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.load()
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	return entries, nil
}

// LoadAll returns every persisted entry, newest first.
func (s *HistoryStore) LoadAll() ([]domain.HistoryEntry, error) {
	return s.Load(0)
}

// load reads the log, failing open: a missing or corrupt file yields
// an empty slice. Callers must hold the mutex.
func (s *HistoryStore) load() []domain.HistoryEntry {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []domain.HistoryEntry{}
	}
	if err != nil {
		log.Printf("history file unreadable, treating as empty: %v", err)
		return []domain.HistoryEntry{}
	}

	var entries []domain.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Printf("history file corrupt, treating as empty: %v", err)
		return []domain.HistoryEntry{}
	}

	return entries
}

// save writes the log pretty-printed with non-ASCII preserved.
func (s *HistoryStore) save(entries []domain.HistoryEntry) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}

	return writeFileAtomic(s.path, buf.Bytes())
}
