package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gamepeek/gamepeek/internal/api"
	"github.com/gamepeek/gamepeek/internal/domain"
)

// MaxSearchResults is the per-request result cap exposed to callers.
const MaxSearchResults = 15

// SearchService performs catalog searches.
type SearchService interface {
	Search(ctx context.Context, query string, limit int) ([]domain.App, error)
}

// HistoryRecorder persists user actions. A recording failure must not
// fail the request that produced it.
type HistoryRecorder interface {
	Append(entry domain.HistoryEntry) error
}

type SearchHandler struct {
	svc     SearchService
	history HistoryRecorder
}

func NewSearchHandler(svc SearchService, history HistoryRecorder) *SearchHandler {
	return &SearchHandler{svc: svc, history: history}
}

type SearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

type SearchResponse struct {
	Query       string       `json:"query"`
	Results     []domain.App `json:"results"`
	ResultCount int          `json:"result_count"`
}

func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Query) == "" {
		api.HandleError(w, domain.ErrEmptyQuery)
		return
	}

	limit := req.Limit
	if limit <= 0 || limit > MaxSearchResults {
		limit = MaxSearchResults
	}

	results, err := h.svc.Search(r.Context(), req.Query, limit)
	if err != nil {
		api.HandleError(w, err)
		return
	}
	if results == nil {
		results = []domain.App{}
	}

	if h.history != nil {
		if err := h.history.Append(domain.NewSearchEvent(req.Query, len(results))); err != nil {
			log.Printf("failed to record search history: %v", err)
		}
	}

	api.Success(w, http.StatusOK, SearchResponse{
		Query:       req.Query,
		Results:     results,
		ResultCount: len(results),
	})
}
