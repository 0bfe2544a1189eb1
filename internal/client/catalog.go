package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Domenick1991/gnawa-tickets/internal/domain"
)

func (c *Client) GetEventInfo(ctx context.Context) (*domain.Event, error) {
	var resp envelope[domain.Event]
	if err := c.do(ctx, "get_event", http.MethodGet, "/event", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) ListArtists(ctx context.Context) ([]domain.Artist, error) {
	var resp envelope[[]domain.Artist]
	if err := c.do(ctx, "list_artists", http.MethodGet, "/artists", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return []domain.Artist{}, nil
	}
	return resp.Data, nil
}

func (c *Client) GetArtist(ctx context.Context, id string) (*domain.Artist, error) {
	var resp envelope[domain.Artist]
	if err := c.do(ctx, "get_artist", http.MethodGet, "/artists/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}
