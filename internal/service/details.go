package service

import (
	"context"

	"github.com/gamepeek/gamepeek/internal/domain"
	"github.com/gamepeek/gamepeek/internal/telemetry"
)

// DetailsClient fetches normalized per-app details from the storefront.
type DetailsClient interface {
	GetAppDetails(ctx context.Context, appID int) (*domain.AppDetails, error)
}

// DetailsService resolves per-app details on demand. Results are
// derived per-request and never persisted.
type DetailsService struct {
	client DetailsClient
}

// NewDetailsService creates a new DetailsService instance
func NewDetailsService(client DetailsClient) *DetailsService {
	return &DetailsService{client: client}
}

// Get fetches details for a single app. It returns
// domain.ErrDetailsNotFound when the storefront has no successful
// answer for the app.
func (s *DetailsService) Get(ctx context.Context, appID int) (*domain.AppDetails, error) {
	ctx, span := telemetry.StartSpan(ctx, "DetailsService.Get", telemetry.SpanAttributes{
		AppID:     appID,
		Operation: "details",
	})
	defer span.End()

	if appID <= 0 {
		return nil, domain.ErrInvalidAppID
	}

	details, err := s.client.GetAppDetails(ctx, appID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	return details, nil
}
