package handlers

import (
	"net/http"
	"strconv"

	"github.com/gamepeek/gamepeek/internal/api"
	"github.com/gamepeek/gamepeek/internal/domain"
	"github.com/gamepeek/gamepeek/internal/store"
)

// HistoryReader loads persisted history entries, newest first.
type HistoryReader interface {
	Load(limit int) ([]domain.HistoryEntry, error)
}

type HistoryHandler struct {
	reader HistoryReader
}

func NewHistoryHandler(reader HistoryReader) *HistoryHandler {
	return &HistoryHandler{reader: reader}
}

type HistoryResponse struct {
	Entries []domain.HistoryEntry `json:"entries"`
	Count   int                   `json:"count"`
}

// List handles GET /history?limit=N. The limit defaults to the store
// cap and never exceeds it.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := store.MaxHistoryEntries
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			api.Error(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		if parsed < limit {
			limit = parsed
		}
	}

	entries, err := h.reader.Load(limit)
	if err != nil {
		api.HandleError(w, err)
		return
	}
	if entries == nil {
		entries = []domain.HistoryEntry{}
	}

	api.Success(w, http.StatusOK, HistoryResponse{
		Entries: entries,
		Count:   len(entries),
	})
}
