package service

import (
	"context"
	"testing"

	"github.com/gamepeek/gamepeek/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDetailsClient struct {
	mock.Mock
}

func (m *MockDetailsClient) GetAppDetails(ctx context.Context, appID int) (*domain.AppDetails, error) {
	args := m.Called(ctx, appID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AppDetails), args.Error(1)
}

func TestDetailsGet(t *testing.T) {
	want := &domain.AppDetails{
		AppID:    440,
		Name:     "Team Fortress 2",
		IsFree:   true,
		Price:    "Free",
		Rating:   "92",
		StoreURL: "https://store.steampowered.com/app/440",
	}
	client := new(MockDetailsClient)
	client.On("GetAppDetails", mock.Anything, 440).Return(want, nil)

	svc := NewDetailsService(client)
	got, err := svc.Get(context.Background(), 440)

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDetailsGet_NotFound(t *testing.T) {
	client := new(MockDetailsClient)
	client.On("GetAppDetails", mock.Anything, 570).Return(nil, domain.ErrDetailsNotFound)

	svc := NewDetailsService(client)
	_, err := svc.Get(context.Background(), 570)

	assert.ErrorIs(t, err, domain.ErrDetailsNotFound)
}

func TestDetailsGet_InvalidAppID(t *testing.T) {
	client := new(MockDetailsClient)

	svc := NewDetailsService(client)
	_, err := svc.Get(context.Background(), 0)

	assert.ErrorIs(t, err, domain.ErrInvalidAppID)
	client.AssertNotCalled(t, "GetAppDetails", mock.Anything, mock.Anything)
}
