package domain

import (
	"errors"
	"strings"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

const (
	MinTickets = 1
	MaxTickets = 10

	// ConfirmationCodeLength is the length of codes issued by the booking service.
	ConfirmationCodeLength = 8
)

// Booking is a reservation accepted by the remote booking service.
// Timestamps are kept as the server sent them so cached records round-trip unchanged.
type Booking struct {
	ID               string        `json:"id,omitempty"`
	FullName         string        `json:"full_name"`
	Email            string        `json:"email"`
	Phone            string        `json:"phone"`
	NumberOfTickets  int           `json:"number_of_tickets"`
	ConfirmationCode string        `json:"confirmation_code"`
	Status           BookingStatus `json:"status"`
	CreatedAt        string        `json:"created_at,omitempty"`
	UpdatedAt        string        `json:"updated_at,omitempty"`
}

// Key identifies the booking locally: the server id, or the confirmation code for legacy records.
func (b Booking) Key() string {
	if b.ID != "" {
		return b.ID
	}
	return b.ConfirmationCode
}

func (b Booking) TotalPrice(ticketPrice float64) float64 {
	return float64(b.NumberOfTickets) * ticketPrice
}

type CreateBookingInput struct {
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	NumberOfTickets int    `json:"number_of_tickets"`
}

var (
	ErrFullNameRequired  = errors.New("full name is required")
	ErrEmailRequired     = errors.New("email is required")
	ErrPhoneRequired     = errors.New("phone is required")
	ErrTicketsOutOfRange = errors.New("number of tickets must be between 1 and 10")
)

// Validate checks a booking form before it is submitted.
func (in CreateBookingInput) Validate() error {
	if strings.TrimSpace(in.FullName) == "" {
		return ErrFullNameRequired
	}
	if strings.TrimSpace(in.Email) == "" {
		return ErrEmailRequired
	}
	if strings.TrimSpace(in.Phone) == "" {
		return ErrPhoneRequired
	}
	if in.NumberOfTickets < MinTickets || in.NumberOfTickets > MaxTickets {
		return ErrTicketsOutOfRange
	}
	return nil
}

func IsConfirmationCode(code string) bool {
	return len(code) == ConfirmationCodeLength
}

func IsEmailQuery(email string) bool {
	return strings.Contains(email, "@")
}
