package model

import (
	"time"

	"hotel/shared/model"

	"github.com/jmoiron/sqlx/types"
)

const (
	TableName  = "notifications"
	EntityName = "notification"

	FieldID        = "id"
	FieldUserID    = "user_id"
	FieldBookingID = "booking_id"
	FieldChannel   = "type"
	FieldTitle     = "title"
	FieldMessage   = "message"
	FieldStatus    = "status"
	FieldTarget    = "metadata"
	FieldSentAt    = "sent_at"
)

const (
	ChannelSMS   = "sms"
	ChannelEmail = "email"
	ChannelBoth  = "both"
)

const (
	StatusPending = "pending"
	StatusSent    = "sent"
	StatusFailed  = "failed"
)

type Notification struct {
	ID        string         `db:"id"`
	UserID    string         `db:"user_id"`
	BookingID *string        `db:"booking_id"`
	Channel   string         `db:"type"`
	Title     string         `db:"title"`
	Message   string         `db:"message"`
	Status    string         `db:"status"`
	Target    types.JSONText `db:"metadata"`
	SentAt    *time.Time     `db:"sent_at"`
	model.Metadata
}
