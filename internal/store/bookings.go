// Package store keeps the device-local list of booking receipts in sync with
// durable storage.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/Domenick1991/gnawa-tickets/internal/domain"
	"github.com/Domenick1991/gnawa-tickets/internal/metrics"
	"github.com/Domenick1991/gnawa-tickets/internal/storage"
	"github.com/sirupsen/logrus"
)

const DefaultKey = "@gnawa_bookings"

var (
	ErrStorageWrite  = errors.New("booking cache: durable write failed")
	ErrStorageDelete = errors.New("booking cache: durable delete failed")
)

// BookingCache is the ordered list of bookings made on this device.
// All reads and writes of the durable key go through it.
type BookingCache struct {
	mu       sync.Mutex
	storage  storage.Storage
	key      string
	bookings []domain.Booking
	current  *domain.Booking
	lastErr  error
	metrics  *metrics.Metrics
	log      *logrus.Entry
}

type Option func(*BookingCache)

func WithKey(key string) Option {
	return func(c *BookingCache) {
		if key != "" {
			c.key = key
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *BookingCache) {
		c.metrics = m
	}
}

func NewBookingCache(s storage.Storage, opts ...Option) *BookingCache {
	c := &BookingCache{
		storage:  s,
		key:      DefaultKey,
		bookings: []domain.Booking{},
		log:      logrus.WithField("component", "BookingCache"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load replaces the in-memory list with the durable copy. A missing key leaves
// memory as it is; read and decode errors are logged and swallowed.
func (c *BookingCache) Load(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, found, err := c.storage.Get(ctx, c.key)
	if err != nil {
		c.loadFailed(err, "Error loading bookings")
		return
	}
	if !found {
		return
	}

	var loaded []domain.Booking
	if err := json.Unmarshal([]byte(raw), &loaded); err != nil {
		c.loadFailed(err, "Error decoding stored bookings")
		return
	}
	if loaded == nil {
		loaded = []domain.Booking{}
	}

	c.bookings = loaded
	c.observeSize()
	c.log.WithField("count", len(loaded)).Debug("Loaded bookings from storage")
}

// Add appends b and rewrites the whole durable list. On a failed write the
// append is rolled back and an error wrapping ErrStorageWrite is returned.
func (c *BookingCache) Add(ctx context.Context, b domain.Booking) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := make([]domain.Booking, len(c.bookings), len(c.bookings)+1)
	copy(next, c.bookings)
	next = append(next, b)

	payload, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrStorageWrite, err)
	}

	if err := c.storage.Set(ctx, c.key, string(payload)); err != nil {
		if c.metrics != nil {
			c.metrics.StorageWriteFailures.Inc()
		}
		c.log.WithError(err).WithField("confirmation_code", b.ConfirmationCode).Error("Failed to persist booking")
		c.lastErr = fmt.Errorf("%w: %w", ErrStorageWrite, err)
		return c.lastErr
	}

	c.bookings = next
	added := b
	c.current = &added

	if c.metrics != nil {
		c.metrics.BookingsStored.Inc()
	}
	c.observeSize()
	return nil
}

// Clear erases the durable entry, then empties memory.
func (c *BookingCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.storage.Delete(ctx, c.key); err != nil {
		c.log.WithError(err).Error("Failed to clear stored bookings")
		c.lastErr = fmt.Errorf("%w: %w", ErrStorageDelete, err)
		return c.lastErr
	}

	c.bookings = []domain.Booking{}
	c.current = nil
	c.observeSize()
	return nil
}

// Bookings returns a copy of the cached list in booking order.
func (c *BookingCache) Bookings() []domain.Booking {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]domain.Booking, len(c.bookings))
	copy(out, c.bookings)
	return out
}

func (c *BookingCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.bookings)
}

// Current is the booking most recently added in this process.
func (c *BookingCache) Current() (domain.Booking, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return domain.Booking{}, false
	}
	return *c.current, true
}

// Find looks a booking up by its local key (id, or confirmation code).
func (c *BookingCache) Find(key string) (domain.Booking, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, b := range c.bookings {
		if b.Key() == key || b.ConfirmationCode == key {
			return b, true
		}
	}
	return domain.Booking{}, false
}

// LastError is the most recent load, add or clear failure. It stays set
// until ClearError.
func (c *BookingCache) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func (c *BookingCache) ClearError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastErr = nil
}

// SetCurrent selects a cached booking by id or confirmation code.
func (c *BookingCache) SetCurrent(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, b := range c.bookings {
		if b.Key() == key || b.ConfirmationCode == key {
			selected := b
			c.current = &selected
			return true
		}
	}
	return false
}

func (c *BookingCache) loadFailed(err error, msg string) {
	c.lastErr = err
	if c.metrics != nil {
		c.metrics.StorageLoadFailures.Inc()
	}
	c.log.WithError(err).WithField("key", c.key).Warn(msg)
}

func (c *BookingCache) observeSize() {
	if c.metrics != nil {
		c.metrics.CachedBookings.Set(float64(len(c.bookings)))
	}
}
