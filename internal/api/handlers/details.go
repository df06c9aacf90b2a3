package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/gamepeek/gamepeek/internal/api"
	"github.com/gamepeek/gamepeek/internal/domain"
	"github.com/go-chi/chi/v5"
)

// DetailsService resolves normalized per-app details.
type DetailsService interface {
	Get(ctx context.Context, appID int) (*domain.AppDetails, error)
}

type DetailsHandler struct {
	svc     DetailsService
	history HistoryRecorder
}

func NewDetailsHandler(svc DetailsService, history HistoryRecorder) *DetailsHandler {
	return &DetailsHandler{svc: svc, history: history}
}

// Get handles GET /apps/{appid}. A successful lookup is recorded as a
// selection in the history log.
func (h *DetailsHandler) Get(w http.ResponseWriter, r *http.Request) {
	appID, err := strconv.Atoi(chi.URLParam(r, "appid"))
	if err != nil || appID <= 0 {
		api.HandleError(w, domain.ErrInvalidAppID)
		return
	}

	details, err := h.svc.Get(r.Context(), appID)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	if h.history != nil {
		if err := h.history.Append(domain.NewSelectEvent(details.AppID, details.Name)); err != nil {
			log.Printf("failed to record selection history: %v", err)
		}
	}

	api.Success(w, http.StatusOK, details)
}
