package handlers

import (
	"context"
	"net/http"

	"github.com/gamepeek/gamepeek/internal/api"
)

// CatalogRefresher forces a remote catalog fetch.
type CatalogRefresher interface {
	Refresh(ctx context.Context) (int, error)
}

type CatalogHandler struct {
	svc CatalogRefresher
}

func NewCatalogHandler(svc CatalogRefresher) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

type RefreshResponse struct {
	Count int `json:"count"`
}

// Refresh handles POST /catalog/refresh. The listing endpoint can take
// tens of seconds on a cold fetch; the caller waits for the result.
func (h *CatalogHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.Refresh(r.Context())
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, RefreshResponse{Count: count})
}
