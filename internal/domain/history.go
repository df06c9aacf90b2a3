package domain

import (
	"encoding/json"
	"time"
)

// HistoryEntryType discriminates the two kinds of history entries.
type HistoryEntryType string

const (
	HistoryTypeSearch HistoryEntryType = "search"
	HistoryTypeSelect HistoryEntryType = "select"
)

// HistoryEntry is a persisted record of a user action, either a search
// or a selection. Exactly one of the two payload sets is populated,
// keyed by Type. Entries are immutable after creation.
type HistoryEntry struct {
	Timestamp time.Time        `json:"timestamp"`
	Type      HistoryEntryType `json:"type"`

	// Search fields (Type == HistoryTypeSearch).
	Query       string `json:"query,omitempty"`
	ResultCount int    `json:"result_count,omitempty"`

	// Select fields (Type == HistoryTypeSelect).
	AppID int    `json:"appid,omitempty"`
	Name  string `json:"name,omitempty"`
}

// NewSearchEvent creates a history entry for an executed search.
func NewSearchEvent(query string, resultCount int) HistoryEntry {
	return HistoryEntry{
		Timestamp:   time.Now().UTC(),
		Type:        HistoryTypeSearch,
		Query:       query,
		ResultCount: resultCount,
	}
}

// NewSelectEvent creates a history entry for a selected app.
func NewSelectEvent(appID int, name string) HistoryEntry {
	return HistoryEntry{
		Timestamp: time.Now().UTC(),
		Type:      HistoryTypeSelect,
		AppID:     appID,
		Name:      name,
	}
}

// IsValid reports whether the entry carries a known type.
func (e HistoryEntry) IsValid() bool {
	return e.Type == HistoryTypeSearch || e.Type == HistoryTypeSelect
}

// searchEventJSON and selectEventJSON are the on-disk shapes. A search
// entry always carries result_count (including zero) and never appid;
// a select entry carries appid and name only.
type searchEventJSON struct {
	Timestamp time.Time        `json:"timestamp"`
	Type      HistoryEntryType `json:"type"`
	Query     string           `json:"query"`
	Count     int              `json:"result_count"`
}

type selectEventJSON struct {
	Timestamp time.Time        `json:"timestamp"`
	Type      HistoryEntryType `json:"type"`
	AppID     int              `json:"appid"`
	Name      string           `json:"name"`
}

// MarshalJSON writes the variant-specific shape so that a zero
// result_count survives the round trip and select entries do not leak
// search fields.
func (e HistoryEntry) MarshalJSON() ([]byte, error) {
	switch e.Type {
	case HistoryTypeSelect:
		return json.Marshal(selectEventJSON{
			Timestamp: e.Timestamp,
			Type:      e.Type,
			AppID:     e.AppID,
			Name:      e.Name,
		})
	default:
		return json.Marshal(searchEventJSON{
			Timestamp: e.Timestamp,
			Type:      e.Type,
			Query:     e.Query,
			Count:     e.ResultCount,
		})
	}
}
