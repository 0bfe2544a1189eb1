package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingEventHandler(t *testing.T) {
	event := BookingEvent{
		Type:             "booking_created",
		BookingID:        "b1",
		ConfirmationCode: "GNW45210",
		Email:            "y@example.com",
		NumberOfTickets:  2,
		Status:           "confirmed",
	}
	payload, err := json.Marshal(event)
	require.NoError(t, err)

	var got []BookingEvent
	handler := BookingEventHandler(func(_ context.Context, e BookingEvent) error {
		got = append(got, e)
		return nil
	})

	require.NoError(t, handler(context.Background(), kafka.Message{Value: payload}))
	require.NoError(t, handler(context.Background(), kafka.Message{Value: []byte("not json")}))

	assert.Equal(t, []BookingEvent{event}, got)
}

func TestBookingEventHandler_PropagatesHandleError(t *testing.T) {
	boom := errors.New("smtp down")
	handler := BookingEventHandler(func(context.Context, BookingEvent) error { return boom })

	err := handler(context.Background(), kafka.Message{Value: []byte(`{"type":"booking_created"}`)})
	assert.ErrorIs(t, err, boom)
}

func TestNilConsumerClose(t *testing.T) {
	var c *Consumer
	assert.NoError(t, c.Close())
}
