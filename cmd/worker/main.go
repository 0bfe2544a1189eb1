package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/gnawa-tickets/config"
	"github.com/Domenick1991/gnawa-tickets/internal/email"
	"github.com/Domenick1991/gnawa-tickets/internal/kafka"
	"github.com/Domenick1991/gnawa-tickets/internal/logger"
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

	if len(cfg.Kafka.Brokers) == 0 {
		logrus.Fatal("kafka.brokers is required for the notification worker")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	emailSender := email.NewSender()

	logrus.WithField("topic", cfg.Kafka.NotificationsTopic).Info("Notification worker started")
	if err := consumer.Consume(ctx, kafka.BookingEventHandler(emailSender.Send)); err != nil && !errors.Is(err, context.Canceled) {
		logrus.Errorf("consumer stopped: %v", err)
		return
	}
	logrus.Info("Notification worker stopped")
}
