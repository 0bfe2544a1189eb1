package catalog

import (
	"context"
	"time"

	"github.com/Domenick1991/gnawa-tickets/internal/domain"
	"github.com/Domenick1991/gnawa-tickets/internal/query"
)

const DefaultStaleTime = 5 * time.Minute

type CatalogUseCase interface {
	EventInfo(ctx context.Context) (*domain.Event, error)
	Artists(ctx context.Context) ([]domain.Artist, error)
	Artist(ctx context.Context, id string) (*domain.Artist, error)
}

type RemoteCatalog interface {
	GetEventInfo(ctx context.Context) (*domain.Event, error)
	ListArtists(ctx context.Context) ([]domain.Artist, error)
	GetArtist(ctx context.Context, id string) (*domain.Artist, error)
}

type CatalogService struct {
	remote    RemoteCatalog
	queries   *query.Cache
	staleTime time.Duration
}

func NewCatalogService(remote RemoteCatalog, queries *query.Cache, staleTime time.Duration) *CatalogService {
	if staleTime <= 0 {
		staleTime = DefaultStaleTime
	}
	if queries == nil {
		queries = query.NewCache()
	}
	return &CatalogService{remote: remote, queries: queries, staleTime: staleTime}
}

func (s *CatalogService) EventInfo(ctx context.Context) (*domain.Event, error) {
	return query.Fetch(ctx, s.queries, query.Key{"event"}, s.staleTime, s.remote.GetEventInfo)
}

func (s *CatalogService) Artists(ctx context.Context) ([]domain.Artist, error) {
	return query.Fetch(ctx, s.queries, query.Key{"artists"}, s.staleTime, s.remote.ListArtists)
}

func (s *CatalogService) Artist(ctx context.Context, id string) (*domain.Artist, error) {
	if id == "" {
		return nil, query.ErrDisabledQuery
	}
	return query.Fetch(ctx, s.queries, query.Key{"artist", id}, s.staleTime, func(ctx context.Context) (*domain.Artist, error) {
		return s.remote.GetArtist(ctx, id)
	})
}

var _ CatalogUseCase = (*CatalogService)(nil)
