package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Domenick1991/gnawa-tickets/internal/domain"
	"github.com/Domenick1991/gnawa-tickets/internal/kafka"
	"github.com/Domenick1991/gnawa-tickets/internal/query"
	"github.com/sirupsen/logrus"
)

const EventBookingCreated = "booking_created"

var (
	BookingsQueryKey = query.Key{"bookings"}
	bookingQueryKey  = "booking"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input domain.CreateBookingInput) (*domain.Booking, error)
	LastMutation() MutationSnapshot
	BookingByCode(ctx context.Context, code string) (*domain.Booking, error)
	BookingsByEmail(ctx context.Context, email string) ([]domain.Booking, error)
	LocalBookings() []domain.Booking
	CurrentBooking() (domain.Booking, bool)
	ReloadLocal(ctx context.Context) []domain.Booking
	ClearLocal(ctx context.Context) error
	SelectLocal(key string) bool
	LocalError() error
	ClearLocalError()
}

// RemoteBookings is the part of the backend API this service consumes.
type RemoteBookings interface {
	CreateBooking(ctx context.Context, input domain.CreateBookingInput) (*domain.Booking, error)
	GetBookingByCode(ctx context.Context, code string) (*domain.Booking, error)
	GetBookingsByEmail(ctx context.Context, email string) ([]domain.Booking, error)
}

type Cache interface {
	Add(ctx context.Context, b domain.Booking) error
	Load(ctx context.Context)
	Clear(ctx context.Context) error
	Bookings() []domain.Booking
	Current() (domain.Booking, bool)
	SetCurrent(key string) bool
	LastError() error
	ClearError()
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// PersistError reports a booking the backend accepted but the device failed to store.
type PersistError struct {
	Booking domain.Booking
	Err     error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("booking %s created but not saved locally: %v", e.Booking.ConfirmationCode, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

type BookingService struct {
	remote             RemoteBookings
	cache              Cache
	queries            *query.Cache
	producer           Producer
	notificationsTopic string
	lookupStaleTime    time.Duration

	mu   sync.RWMutex
	last *Mutation

	log *logrus.Entry
}

type BookingServiceOption func(*BookingService)

func WithProducer(producer Producer, topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.notificationsTopic = topic
	}
}

func WithLookupStaleTime(d time.Duration) BookingServiceOption {
	return func(s *BookingService) {
		s.lookupStaleTime = d
	}
}

func NewBookingService(remote RemoteBookings, cache Cache, queries *query.Cache, opts ...BookingServiceOption) *BookingService {
	service := &BookingService{
		remote:  remote,
		cache:   cache,
		queries: queries,
		last:    NewMutation(),
		log:     logrus.WithField("component", "BookingService"),
	}
	if service.queries == nil {
		service.queries = query.NewCache()
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CreateBooking submits input to the backend, stores the returned booking in
// the local cache and marks cached "bookings" queries stale. The input is
// expected to be validated by the caller. Once submitted the call is not
// cancelled by ctx.
func (s *BookingService) CreateBooking(ctx context.Context, input domain.CreateBookingInput) (*domain.Booking, error) {
	ctx = context.WithoutCancel(ctx)

	m := NewMutation()
	s.mu.Lock()
	s.last = m
	s.mu.Unlock()

	m.submit()
	logger := s.log.WithField("email", input.Email)

	created, err := s.remote.CreateBooking(ctx, input)
	if err != nil {
		logger.WithError(err).Warn("Backend rejected booking")
		m.fail(nil, err)
		return nil, err
	}

	if err := s.cache.Add(ctx, *created); err != nil {
		persistErr := &PersistError{Booking: *created, Err: err}
		logger.WithError(err).WithField("confirmation_code", created.ConfirmationCode).Error("Booking created remotely but not stored locally")
		m.fail(created, persistErr)
		return nil, persistErr
	}

	s.queries.Invalidate(BookingsQueryKey)

	if err := s.publish(ctx, EventBookingCreated, created); err != nil {
		logger.WithError(err).Warnf("Failed to publish %s event for booking %s", EventBookingCreated, created.ConfirmationCode)
	}

	logger.WithField("confirmation_code", created.ConfirmationCode).Info("Booking created")
	m.succeed(created)
	return created, nil
}

func (s *BookingService) LastMutation() MutationSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last.Snapshot()
}

// BookingByCode looks a booking up on the backend. Codes that are not
// confirmation-code shaped never reach the network.
func (s *BookingService) BookingByCode(ctx context.Context, code string) (*domain.Booking, error) {
	if !domain.IsConfirmationCode(code) {
		return nil, query.ErrDisabledQuery
	}
	return query.Fetch(ctx, s.queries, query.Key{bookingQueryKey, code}, s.lookupStaleTime, func(ctx context.Context) (*domain.Booking, error) {
		return s.remote.GetBookingByCode(ctx, code)
	})
}

func (s *BookingService) BookingsByEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	if !domain.IsEmailQuery(email) {
		return nil, query.ErrDisabledQuery
	}
	key := append(query.Key{}, BookingsQueryKey...)
	key = append(key, "email", email)
	return query.Fetch(ctx, s.queries, key, s.lookupStaleTime, func(ctx context.Context) ([]domain.Booking, error) {
		return s.remote.GetBookingsByEmail(ctx, email)
	})
}

func (s *BookingService) LocalBookings() []domain.Booking {
	return s.cache.Bookings()
}

func (s *BookingService) CurrentBooking() (domain.Booking, bool) {
	return s.cache.Current()
}

func (s *BookingService) ReloadLocal(ctx context.Context) []domain.Booking {
	s.cache.Load(ctx)
	return s.cache.Bookings()
}

func (s *BookingService) ClearLocal(ctx context.Context) error {
	return s.cache.Clear(ctx)
}

func (s *BookingService) SelectLocal(key string) bool {
	return s.cache.SetCurrent(key)
}

// LocalError is the last failure of the local booking cache, if any.
func (s *BookingService) LocalError() error {
	return s.cache.LastError()
}

func (s *BookingService) ClearLocalError() {
	s.cache.ClearError()
}

func (s *BookingService) publish(ctx context.Context, eventType string, b *domain.Booking) error {
	if s.producer == nil || s.notificationsTopic == "" {
		return nil
	}
	event := kafka.BookingEvent{
		Type:             eventType,
		BookingID:        b.ID,
		ConfirmationCode: b.ConfirmationCode,
		FullName:         b.FullName,
		Email:            b.Email,
		NumberOfTickets:  b.NumberOfTickets,
		Status:           string(b.Status),
		CreatedAt:        b.CreatedAt,
	}
	return s.producer.Publish(ctx, s.notificationsTopic, b.ConfirmationCode, event)
}

var _ BookingUseCase = (*BookingService)(nil)
