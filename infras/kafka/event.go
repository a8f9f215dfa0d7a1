package kafka

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	EventPaymentCompleted  = "payment.completed"
	EventPaymentFailed     = "payment.failed"
	EventPaymentRefunded   = "payment.refunded"
	EventEmergencyOpened   = "emergency.opened"
	EventEmergencyResolved = "emergency.resolved"
	EventEmergencyClosed   = "emergency.closed"
	EventRefundSettled     = "refund.settled"
	EventRefundCompleted   = "refund.completed"
)

// Event is the body of every domain event. Amount is a fixed two-decimal string.
type Event struct {
	Name      string    `json:"event"`
	BookingID string    `json:"booking_id"`
	CaseID    string    `json:"case_id,omitempty"`
	Amount    string    `json:"amount,omitempty"`
	At        time.Time `json:"at"`
}

// Publish sends event keyed by booking id. Failures are logged and dropped.
func Publish(ctx context.Context, client Client, topic string, event Event) {
	if topic == "" {
		return
	}

	err := client.SendMessages(ctx, topic, Message{Key: event.BookingID, Value: event})
	if err != nil {
		log.Warn().Err(err).Str("topic", topic).Str("event", event.Name).Msg("failed to publish domain event")
	}
}
