package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/Domenick1991/gnawa-tickets/internal/domain"
	"github.com/Domenick1991/gnawa-tickets/internal/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRemoteCatalog struct {
	mock.Mock
}

func (m *MockRemoteCatalog) GetEventInfo(ctx context.Context) (*domain.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *MockRemoteCatalog) ListArtists(ctx context.Context) ([]domain.Artist, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Artist), args.Error(1)
}

func (m *MockRemoteCatalog) GetArtist(ctx context.Context, id string) (*domain.Artist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Artist), args.Error(1)
}

func TestCatalogService_EventInfo_Cached(t *testing.T) {
	remote := &MockRemoteCatalog{}
	service := NewCatalogService(remote, query.NewCache(), 0)
	ctx := context.Background()

	event := &domain.Event{ID: "e1", Title: "Festival Gnaoua", TicketPrice: 150}
	remote.On("GetEventInfo", ctx).Return(event, nil).Once()

	got, err := service.EventInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, event, got)

	got, err = service.EventInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, event, got)

	remote.AssertNumberOfCalls(t, "GetEventInfo", 1)
}

func TestCatalogService_Artists(t *testing.T) {
	remote := &MockRemoteCatalog{}
	service := NewCatalogService(remote, query.NewCache(), DefaultStaleTime)
	ctx := context.Background()

	artists := []domain.Artist{{ID: "a1", Name: "Maalem Hamid El Kasri"}}
	remote.On("ListArtists", ctx).Return(artists, nil).Once()

	got, err := service.Artists(ctx)
	require.NoError(t, err)
	assert.Equal(t, artists, got)

	_, err = service.Artists(ctx)
	require.NoError(t, err)
	remote.AssertNumberOfCalls(t, "ListArtists", 1)
}

func TestCatalogService_Artist(t *testing.T) {
	remote := &MockRemoteCatalog{}
	service := NewCatalogService(remote, query.NewCache(), DefaultStaleTime)
	ctx := context.Background()

	_, err := service.Artist(ctx, "")
	assert.ErrorIs(t, err, query.ErrDisabledQuery)

	expectedErr := errors.New("not found")
	remote.On("GetArtist", ctx, "missing").Return(nil, expectedErr).Twice()

	_, err = service.Artist(ctx, "missing")
	assert.Equal(t, expectedErr, err)
	_, err = service.Artist(ctx, "missing")
	assert.Equal(t, expectedErr, err)

	remote.AssertExpectations(t)
}
