package service

import (
	"context"
	"strings"

	"github.com/gamepeek/gamepeek/internal/domain"
	"github.com/gamepeek/gamepeek/internal/telemetry"
	"golang.org/x/sync/singleflight"
)

// DefaultSearchLimit caps search results when the caller does not ask
// for a specific limit.
const DefaultSearchLimit = 10

// CatalogClient fetches the full listing from the remote catalog API.
type CatalogClient interface {
	GetAppList(ctx context.Context) ([]domain.App, error)
}

// CatalogRepository persists the local catalog snapshot.
type CatalogRepository interface {
	Load() ([]domain.App, error)
	Save(apps []domain.App) error
}

// CatalogService serves catalog reads from the local snapshot,
// fetching and caching the remote listing on first use.
type CatalogService struct {
	repo   CatalogRepository
	client CatalogClient
	group  singleflight.Group
}

// NewCatalogService creates a new CatalogService instance
func NewCatalogService(repo CatalogRepository, client CatalogClient) *CatalogService {
	return &CatalogService{repo: repo, client: client}
}

// GetAll returns the cached listing, fetching and persisting it when no
// local snapshot exists. Concurrent first-use fetches collapse into a
// single remote call.
func (s *CatalogService) GetAll(ctx context.Context) ([]domain.App, error) {
	apps, err := s.repo.Load()
	if err != nil {
		return nil, err
	}
	if apps != nil {
		return apps, nil
	}

	// Collapsed callers share this fetch; it must not die with the
	// winning request's cancellation.
	fetchCtx := context.WithoutCancel(ctx)
	fetched, err, _ := s.group.Do("applist", func() (interface{}, error) {
		return s.fetchAndCache(fetchCtx)
	})
	if err != nil {
		return nil, err
	}

	return fetched.([]domain.App), nil
}

// Search returns up to limit entries whose name contains the query,
// case-insensitively, in catalog order. A limit <= 0 falls back to
// DefaultSearchLimit.
func (s *CatalogService) Search(ctx context.Context, query string, limit int) ([]domain.App, error) {
	ctx, span := telemetry.StartSpan(ctx, "CatalogService.Search", telemetry.SpanAttributes{
		Query:     query,
		Operation: "search",
	})
	defer span.End()

	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrEmptyQuery
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	apps, err := s.GetAll(ctx)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	q := strings.ToLower(query)
	matches := make([]domain.App, 0, limit)
	for _, app := range apps {
		if strings.Contains(strings.ToLower(app.Name), q) {
			matches = append(matches, app)
			if len(matches) >= limit {
				break
			}
		}
	}

	return matches, nil
}

// Refresh forces a remote fetch and replaces the local snapshot.
// It returns the number of entries fetched.
func (s *CatalogService) Refresh(ctx context.Context) (int, error) {
	ctx, span := telemetry.StartSpan(ctx, "CatalogService.Refresh", telemetry.SpanAttributes{
		Operation: "refresh",
	})
	defer span.End()

	fetchCtx := context.WithoutCancel(ctx)
	apps, err, _ := s.group.Do("applist", func() (interface{}, error) {
		return s.fetchAndCache(fetchCtx)
	})
	if err != nil {
		span.SetError(err)
		return 0, err
	}

	return len(apps.([]domain.App)), nil
}

func (s *CatalogService) fetchAndCache(ctx context.Context) ([]domain.App, error) {
	apps, err := s.client.GetAppList(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(apps); err != nil {
		return nil, err
	}
	return apps, nil
}
