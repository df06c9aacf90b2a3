// Package steam provides a client for the Steam Web API catalog
// listing and the storefront appdetails endpoint.
package steam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gamepeek/gamepeek/internal/domain"
	"golang.org/x/time/rate"
)

const (
	// DefaultAPIBaseURL serves the full app listing.
	DefaultAPIBaseURL = "https://api.steampowered.com"
	// DefaultStoreBaseURL serves per-app details.
	DefaultStoreBaseURL = "https://store.steampowered.com"

	appListPath = "/ISteamApps/GetAppList/v2/"
	detailsPath = "/api/appdetails"

	appListTimeout = 30 * time.Second
	detailsTimeout = 15 * time.Second
)

// The storefront throttles aggressively (~200 requests per 5 minutes),
// so details calls go through a limiter. The listing endpoint is hit at
// most once per cache refresh and is left unthrottled.
var defaultDetailsLimit = rate.Every(1500 * time.Millisecond)

var (
	// ErrEmptyAppList is returned when the listing response carries no apps.
	ErrEmptyAppList = errors.New("app list response contained no apps")
)

// appListResponse mirrors {applist:{apps:[{appid,name}]}}.
type appListResponse struct {
	AppList struct {
		Apps []domain.App `json:"apps"`
	} `json:"applist"`
}

// detailsEnvelope mirrors the per-app object inside the keyed response.
type detailsEnvelope struct {
	Success bool     `json:"success"`
	Data    *appData `json:"data"`
}

type appData struct {
	Name             string         `json:"name"`
	ShortDescription string         `json:"short_description"`
	IsFree           bool           `json:"is_free"`
	PriceOverview    *priceOverview `json:"price_overview"`
	Metacritic       *metacritic    `json:"metacritic"`
	HeaderImage      string         `json:"header_image"`
	Screenshots      []screenshot   `json:"screenshots"`
}

type priceOverview struct {
	FinalFormatted string `json:"final_formatted"`
}

type metacritic struct {
	Score int `json:"score"`
}

type screenshot struct {
	PathFull string `json:"path_full"`
}

// Config holds client configuration. Zero values fall back to the
// public Steam endpoints and default throttling.
type Config struct {
	APIBaseURL    string
	StoreBaseURL  string
	DetailsLimit  rate.Limit
	DetailsBurst  int
	ListTimeout   time.Duration
	DetailTimeout time.Duration
}

// Client calls the Steam Web API and storefront. It performs no
// retries; a failed call is reported to the caller as-is.
type Client struct {
	apiBaseURL    string
	storeBaseURL  string
	listClient    *http.Client
	detailsClient *http.Client
	limiter       *rate.Limiter
}

// NewClient creates a client against the public Steam endpoints.
func NewClient() *Client {
	return NewClientWithConfig(Config{})
}

// NewClientWithConfig creates a client with explicit configuration.
func NewClientWithConfig(cfg Config) *Client {
	apiBase := cfg.APIBaseURL
	if apiBase == "" {
		apiBase = DefaultAPIBaseURL
	}
	storeBase := cfg.StoreBaseURL
	if storeBase == "" {
		storeBase = DefaultStoreBaseURL
	}
	limit := cfg.DetailsLimit
	if limit == 0 {
		limit = defaultDetailsLimit
	}
	burst := cfg.DetailsBurst
	if burst <= 0 {
		burst = 1
	}
	listTimeout := cfg.ListTimeout
	if listTimeout <= 0 {
		listTimeout = appListTimeout
	}
	detailTimeout := cfg.DetailTimeout
	if detailTimeout <= 0 {
		detailTimeout = detailsTimeout
	}

	return &Client{
		apiBaseURL:    apiBase,
		storeBaseURL:  storeBase,
		listClient:    &http.Client{Timeout: listTimeout},
		detailsClient: &http.Client{Timeout: detailTimeout},
		limiter:       rate.NewLimiter(limit, burst),
	}
}

// GetAppList fetches the full catalog listing. The listing can run to
// hundreds of thousands of entries and may take a few seconds.
func (c *Client) GetAppList(ctx context.Context) ([]domain.App, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBaseURL+appListPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build app list request: %w", err)
	}

	resp, err := c.listClient.Do(req)
	if err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeUpstream, "catalog listing unavailable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeUpstream, "catalog listing unavailable",
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var decoded appListResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeUpstream, "catalog listing unavailable", err)
	}

	if len(decoded.AppList.Apps) == 0 {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeUpstream, "catalog listing unavailable", ErrEmptyAppList)
	}

	return decoded.AppList.Apps, nil
}

// GetAppDetails fetches and normalizes details for a single app. It
// returns domain.ErrDetailsNotFound when the storefront answers with a
// non-200 status or a success=false envelope.
func (c *Client) GetAppDetails(ctx context.Context, appID int) (*domain.AppDetails, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("appids", strconv.Itoa(appID))
	params.Set("cc", "us")
	params.Set("l", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.storeBaseURL+detailsPath+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build details request: %w", err)
	}

	resp, err := c.detailsClient.Do(req)
	if err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeUpstream, "storefront unavailable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.ErrDetailsNotFound
	}

	var decoded map[string]detailsEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeUpstream, "storefront unavailable", err)
	}

	envelope, ok := decoded[strconv.Itoa(appID)]
	if !ok || !envelope.Success {
		return nil, domain.ErrDetailsNotFound
	}

	return normalizeDetails(appID, envelope.Data), nil
}

// normalizeDetails maps a storefront payload into the fixed result
// shape. Fallback order for each derived field matches the storefront
// front-end: a structured price block wins over the free flag, the
// metacritic score is optional, and the first screenshot stands in for
// a missing header image.
func normalizeDetails(appID int, data *appData) *domain.AppDetails {
	if data == nil {
		data = &appData{}
	}

	details := &domain.AppDetails{
		AppID:       appID,
		Name:        data.Name,
		Description: data.ShortDescription,
		IsFree:      data.IsFree,
		StoreURL:    domain.StorePageURL(appID),
	}

	if details.Name == "" {
		details.Name = "Unknown"
	}
	if details.Description == "" {
		details.Description = "No description available."
	}

	switch {
	case data.PriceOverview != nil:
		details.Price = data.PriceOverview.FinalFormatted
	case data.IsFree:
		details.Price = "Free"
	default:
		details.Price = "N/A"
	}

	if data.Metacritic != nil {
		details.Rating = strconv.Itoa(data.Metacritic.Score)
	} else {
		details.Rating = "N/A"
	}

	switch {
	case data.HeaderImage != "":
		details.HeaderImage = data.HeaderImage
	case len(data.Screenshots) > 0:
		details.HeaderImage = data.Screenshots[0].PathFull
	default:
		details.HeaderImage = ""
	}

	return details
}
