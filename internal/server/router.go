package server

import (
	"net/http"

	"github.com/gamepeek/gamepeek/internal/api"
	"github.com/gamepeek/gamepeek/internal/api/handlers"
	"github.com/gamepeek/gamepeek/internal/api/middleware"
	"github.com/go-chi/chi/v5"
)

type RouterConfig struct {
	SearchHandler  *handlers.SearchHandler
	DetailsHandler *handlers.DetailsHandler
	HistoryHandler *handlers.HistoryHandler
	CatalogHandler *handlers.CatalogHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	const maxBodyBytes int64 = 64 * 1024

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/search", cfg.SearchHandler.Search)
	r.Get("/apps/{appid}", cfg.DetailsHandler.Get)
	r.Get("/history", cfg.HistoryHandler.List)
	r.Post("/catalog/refresh", cfg.CatalogHandler.Refresh)

	return r
}
