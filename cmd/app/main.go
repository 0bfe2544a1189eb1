package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/gnawa-tickets/config"
	"github.com/Domenick1991/gnawa-tickets/internal/bootstrap"
	"github.com/Domenick1991/gnawa-tickets/internal/cache"
	"github.com/Domenick1991/gnawa-tickets/internal/client"
	"github.com/Domenick1991/gnawa-tickets/internal/kafka"
	"github.com/Domenick1991/gnawa-tickets/internal/logger"
	"github.com/Domenick1991/gnawa-tickets/internal/metrics"
	"github.com/Domenick1991/gnawa-tickets/internal/query"
	"github.com/Domenick1991/gnawa-tickets/internal/repository"
	"github.com/Domenick1991/gnawa-tickets/internal/service/booking"
	"github.com/Domenick1991/gnawa-tickets/internal/service/catalog"
	"github.com/Domenick1991/gnawa-tickets/internal/storage"
	"github.com/Domenick1991/gnawa-tickets/internal/store"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	logger.Setup(cfg.Logging)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		stop()
		logrus.Fatalf("server error: %v", err)
	}
}

// run wires the services and serves until ctx is done. Resources opened here
// are released before it returns.
func run(ctx context.Context, cfg *config.Config) error {
	durable, checks, cleanup, err := openStorage(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer cleanup()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	remote := client.New(cfg.API.BaseURL, time.Duration(cfg.API.TimeoutSeconds)*time.Second, client.WithMetrics(m))
	queries := query.NewCache()

	bookingCache := store.NewBookingCache(durable, store.WithKey(cfg.Storage.Key), store.WithMetrics(m))
	bookingCache.Load(ctx)
	logrus.WithField("bookings", bookingCache.Len()).Info("Booking cache loaded")

	opts := []booking.BookingServiceOption{}
	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		opts = append(opts, booking.WithProducer(producer, cfg.Kafka.NotificationsTopic))
		checks = append(checks, bootstrap.HealthCheck{Name: "kafka", Check: producer.CheckConnection})
	}

	catalogService := catalog.NewCatalogService(remote, queries, time.Duration(cfg.Query.StaleTimeSeconds)*time.Second)
	bookingService := booking.NewBookingService(remote, bookingCache, queries, opts...)

	return bootstrap.Run(ctx, cfg, reg, bookingService, catalogService, checks...)
}

func openStorage(ctx context.Context, cfg *config.Config) (storage.Storage, []bootstrap.HealthCheck, func(), error) {
	noop := func() {}

	switch cfg.Storage.Driver {
	case "memory":
		return storage.NewMemoryStorage(), nil, noop, nil
	case "file":
		s, err := storage.NewFileStorage(cfg.Storage.Dir)
		if err != nil {
			return nil, nil, noop, err
		}
		return s, nil, noop, nil
	case "redis":
		s := cache.NewRedisStorage(cache.NewRedisClient(cfg.Redis))
		if err := s.Ping(ctx); err != nil {
			_ = s.Close()
			return nil, nil, noop, fmt.Errorf("connect redis: %w", err)
		}
		checks := []bootstrap.HealthCheck{{Name: "redis", Check: s.Ping}}
		return s, checks, func() { _ = s.Close() }, nil
	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, nil, noop, fmt.Errorf("connect postgres: %w", err)
		}
		s := repository.NewPGStorage(pool)
		if err := s.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, noop, err
		}
		checks := []bootstrap.HealthCheck{{Name: "postgres", Check: pool.Ping}}
		return s, checks, pool.Close, nil
	default:
		return nil, nil, noop, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
