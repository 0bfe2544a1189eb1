package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Domenick1991/gnawa-tickets/internal/domain"
)

func (c *Client) CreateBooking(ctx context.Context, input domain.CreateBookingInput) (*domain.Booking, error) {
	var resp envelope[domain.Booking]
	if err := c.do(ctx, "create_booking", http.MethodPost, "/bookings", input, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) GetBookingByCode(ctx context.Context, code string) (*domain.Booking, error) {
	var resp envelope[domain.Booking]
	if err := c.do(ctx, "get_booking_by_code", http.MethodGet, "/bookings/"+url.PathEscape(code), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) GetBookingsByEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	var resp envelope[[]domain.Booking]
	if err := c.do(ctx, "get_bookings_by_email", http.MethodGet, "/bookings/email/"+url.PathEscape(email), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return []domain.Booking{}, nil
	}
	return resp.Data, nil
}
