package model

import (
	"time"

	bookingModel "hotel/internal/domains/booking/model"
	"hotel/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "emergency_cases"
	EntityName = "emergency_case"

	FieldID           = "id"
	FieldBookingID    = "booking_id"
	FieldType         = "type"
	FieldDescription  = "description"
	FieldStatus       = "status"
	FieldRefundAmount = "refund_amount"
	FieldRefundStatus = "refund_status"
	FieldDetails      = "emergency_details"
	FieldResolvedAt   = "resolved_at"
)

const (
	TypeIllness       = "illness"
	TypeCancellation  = "cancellation"
	TypeEarlyCheckout = "early_checkout"
)

const (
	StatusOpen     = "open"
	StatusResolved = "resolved"
	StatusClosed   = "closed"
)

const (
	RefundStatusPending   = "pending"
	RefundStatusProcessed = "processed"
	RefundStatusCompleted = "completed"
)

type Case struct {
	ID           string              `db:"id"`
	BookingID    string              `db:"booking_id"`
	Type         string              `db:"type"`
	Description  string              `db:"description"`
	Status       string              `db:"status"`
	RefundAmount decimal.NullDecimal `db:"refund_amount"`
	RefundStatus *string             `db:"refund_status"`
	Details      Details             `db:"emergency_details"`
	ResolvedAt   *time.Time          `db:"resolved_at"`
	model.Metadata
}

func (c Case) HasRefundStatus(status string) bool {
	return c.RefundStatus != nil && *c.RefundStatus == status
}

// BookingStatus maps a case type to the booking status it leaves behind.
func BookingStatus(caseType string) string {
	switch caseType {
	case TypeCancellation:
		return bookingModel.StatusEmergencyCancelled
	case TypeEarlyCheckout:
		return bookingModel.StatusCheckedOut
	default:
		return bookingModel.StatusConfirmed
	}
}

// Refundable case types go through the refund policy.
func Refundable(caseType string) bool {
	return caseType == TypeCancellation || caseType == TypeEarlyCheckout
}
