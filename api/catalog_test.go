package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/Domenick1991/gnawa-tickets/internal/client"
	"github.com/Domenick1991/gnawa-tickets/internal/domain"
	"github.com/Domenick1991/gnawa-tickets/internal/service/catalog"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCatalogUseCase struct {
	mock.Mock
}

func (m *MockCatalogUseCase) EventInfo(ctx context.Context) (*domain.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *MockCatalogUseCase) Artists(ctx context.Context) ([]domain.Artist, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Artist), args.Error(1)
}

func (m *MockCatalogUseCase) Artist(ctx context.Context, id string) (*domain.Artist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Artist), args.Error(1)
}

func newCatalogRouter(service catalog.CatalogUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewCatalogHandler(service).Register(r.Group("/api"))
	return r
}

func TestCatalogHandler_event(t *testing.T) {
	mockService := &MockCatalogUseCase{}
	r := newCatalogRouter(mockService)

	mockService.On("EventInfo", mock.Anything).
		Return(&domain.Event{ID: "e1", Title: "Festival Gnaoua", TicketPrice: 150}, nil).Once()

	w := perform(r, http.MethodGet, "/api/event", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var response struct {
		Data domain.Event `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Festival Gnaoua", response.Data.Title)
	assert.Equal(t, 150.0, response.Data.TicketPrice)
	mockService.AssertExpectations(t)
}

func TestCatalogHandler_artists(t *testing.T) {
	mockService := &MockCatalogUseCase{}
	r := newCatalogRouter(mockService)

	mockService.On("Artists", mock.Anything).
		Return([]domain.Artist{{ID: "a1", Name: "Hindi Zahra"}}, nil).Once()
	mockService.On("Artist", mock.Anything, "a1").
		Return(&domain.Artist{ID: "a1", Name: "Hindi Zahra"}, nil).Once()
	mockService.On("Artist", mock.Anything, "missing").
		Return(nil, &client.APIError{StatusCode: http.StatusNotFound}).Once()

	w := perform(r, http.MethodGet, "/api/artists", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Hindi Zahra")

	w = perform(r, http.MethodGet, "/api/artists/a1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(r, http.MethodGet, "/api/artists/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"`+client.GenericErrorMessage+`"}`, w.Body.String())

	mockService.AssertExpectations(t)
}

func TestCatalogHandler_backendDown(t *testing.T) {
	mockService := &MockCatalogUseCase{}
	r := newCatalogRouter(mockService)

	mockService.On("EventInfo", mock.Anything).Return(nil, errors.New("connection reset")).Once()

	w := perform(r, http.MethodGet, "/api/event", nil)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t, `{"message":"`+client.GenericErrorMessage+`"}`, w.Body.String())
}
