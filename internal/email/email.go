package email

import (
	"context"
	"fmt"

	"github.com/Domenick1991/gnawa-tickets/internal/kafka"
	"github.com/sirupsen/logrus"
)

// Sender delivers booking receipts. It only logs them; there is no mail relay yet.
type Sender struct {
	log *logrus.Entry
}

func NewSender() *Sender {
	return &Sender{log: logrus.WithField("component", "EmailSender")}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	if event.Email == "" {
		return nil
	}
	s.log.WithFields(logrus.Fields{
		"to":                event.Email,
		"type":              event.Type,
		"confirmation_code": event.ConfirmationCode,
	}).Info(Subject(event))
	return nil
}

func Subject(event kafka.BookingEvent) string {
	plural := ""
	if event.NumberOfTickets > 1 {
		plural = "s"
	}
	return fmt.Sprintf("Réservation %s : %d billet%s", event.ConfirmationCode, event.NumberOfTickets, plural)
}
