package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/gamepeek/gamepeek/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func historyStoreForTest(t *testing.T) *HistoryStore {
	t.Helper()
	return NewHistoryStore(filepath.Join(t.TempDir(), "search_history.json"))
}

func TestHistoryStore_LoadEmpty(t *testing.T) {
	s := historyStoreForTest(t)

	entries, err := s.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHistoryStore_AppendNewestFirst(t *testing.T) {
	s := historyStoreForTest(t)

	require.NoError(t, s.Append(domain.NewSearchEvent("first", 1)))
	require.NoError(t, s.Append(domain.NewSearchEvent("second", 2)))
	require.NoError(t, s.Append(domain.NewSelectEvent(70, "Half-Life")))

	entries, err := s.LoadAll()
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, domain.HistoryTypeSelect, entries[0].Type)
	assert.Equal(t, 70, entries[0].AppID)
	assert.Equal(t, "second", entries[1].Query)
	assert.Equal(t, "first", entries[2].Query)
}

func TestHistoryStore_TruncatesAtCap(t *testing.T) {
	s := historyStoreForTest(t)

	for i := 0; i < MaxHistoryEntries+1; i++ {
		require.NoError(t, s.Append(domain.NewSearchEvent(fmt.Sprintf("query-%d", i), i)))
	}

	entries, err := s.LoadAll()
	require.NoError(t, err)
	require.Len(t, entries, MaxHistoryEntries)

	// Newest append is first; the very first append fell off the end.
	assert.Equal(t, fmt.Sprintf("query-%d", MaxHistoryEntries), entries[0].Query)
	assert.Equal(t, "query-1", entries[MaxHistoryEntries-1].Query)
}

func TestHistoryStore_LoadLimit(t *testing.T) {
	s := historyStoreForTest(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Append(domain.NewSearchEvent(fmt.Sprintf("q%d", i), 0)))
	}

	entries, err := s.Load(2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "q4", entries[0].Query)
	assert.Equal(t, "q3", entries[1].Query)

	all, err := s.Load(0)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestHistoryStore_ConcurrentAppendsLoseNothing(t *testing.T) {
	s := historyStoreForTest(t)

	const writers = 50
	errs := make([]error, writers)

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.Append(domain.NewSearchEvent(fmt.Sprintf("q%d", i), i))
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "append %d", i)
	}

	entries, err := s.LoadAll()
	require.NoError(t, err)
	require.Len(t, entries, writers)

	seen := make(map[string]bool, writers)
	for _, e := range entries {
		seen[e.Query] = true
	}
	for i := 0; i < writers; i++ {
		assert.True(t, seen[fmt.Sprintf("q%d", i)], "q%d missing", i)
	}
}

func TestHistoryStore_CorruptFileFailsOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "search_history.json")
	require.NoError(t, os.WriteFile(path, []byte("[{broken"), 0o644))

	s := NewHistoryStore(path)
	entries, err := s.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, entries)

	// A corrupt file is recoverable: the next append starts fresh.
	require.NoError(t, s.Append(domain.NewSearchEvent("portal", 3)))
	entries, err = s.LoadAll()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "portal", entries[0].Query)
}

func TestHistoryStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "search_history.json")

	require.NoError(t, NewHistoryStore(path).Append(domain.NewSearchEvent("half", 2)))

	entries, err := NewHistoryStore(path).LoadAll()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "half", entries[0].Query)
	assert.Equal(t, 2, entries[0].ResultCount)
}

func TestHistoryStore_PreservesNonASCII(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "search_history.json")

	require.NoError(t, NewHistoryStore(path).Append(domain.NewSearchEvent("ドラゴンクエスト", 0)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "ドラゴンクエスト"),
		"non-ASCII query should be stored unescaped")
	// Pretty-printed output, one field per line.
	assert.Contains(t, string(data), "\n  ")
}
