package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gamepeek/gamepeek/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDetailsService struct {
	mock.Mock
}

func (m *MockDetailsService) Get(ctx context.Context, appID int) (*domain.AppDetails, error) {
	args := m.Called(ctx, appID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AppDetails), args.Error(1)
}

func detailsRequest(appid string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/apps/"+appid, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("appid", appid)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func newTestDetails() *domain.AppDetails {
	return &domain.AppDetails{
		AppID:       440,
		Name:        "Team Fortress 2",
		Description: "Nine distinct classes.",
		IsFree:      true,
		Price:       "Free",
		Rating:      "92",
		HeaderImage: "https://cdn.example/header.jpg",
		StoreURL:    "https://store.steampowered.com/app/440",
	}
}

func TestDetailsHandler(t *testing.T) {
	svc := new(MockDetailsService)
	history := new(MockHistoryRecorder)
	svc.On("Get", mock.Anything, 440).Return(newTestDetails(), nil)
	history.On("Append", mock.MatchedBy(func(e domain.HistoryEntry) bool {
		return e.Type == domain.HistoryTypeSelect && e.AppID == 440 && e.Name == "Team Fortress 2"
	})).Return(nil)

	handler := NewDetailsHandler(svc, history)
	rec := httptest.NewRecorder()
	handler.Get(rec, detailsRequest("440"))

	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data domain.AppDetails `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, *newTestDetails(), envelope.Data)

	history.AssertExpectations(t)
}

func TestDetailsHandler_NotFound(t *testing.T) {
	svc := new(MockDetailsService)
	history := new(MockHistoryRecorder)
	svc.On("Get", mock.Anything, 570).Return(nil, domain.ErrDetailsNotFound)

	handler := NewDetailsHandler(svc, history)
	rec := httptest.NewRecorder()
	handler.Get(rec, detailsRequest("570"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "could not fetch details")
	history.AssertNotCalled(t, "Append", mock.Anything)
}

func TestDetailsHandler_InvalidAppID(t *testing.T) {
	svc := new(MockDetailsService)

	handler := NewDetailsHandler(svc, nil)

	for _, appid := range []string{"abc", "-1", "0"} {
		rec := httptest.NewRecorder()
		handler.Get(rec, detailsRequest(appid))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "appid=%s", appid)
	}

	svc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestDetailsHandler_UpstreamError(t *testing.T) {
	svc := new(MockDetailsService)
	svc.On("Get", mock.Anything, 440).Return(nil, domain.ErrStoreUnavailable)

	handler := NewDetailsHandler(svc, nil)
	rec := httptest.NewRecorder()
	handler.Get(rec, detailsRequest("440"))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
