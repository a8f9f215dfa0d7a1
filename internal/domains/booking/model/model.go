package model

import (
	"errors"
	"time"

	"hotel/shared/constant"
	"hotel/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID               = "id"
	FieldCode             = "booking_code"
	FieldUserID           = "user_id"
	FieldRoomID           = "room_id"
	FieldCheckIn          = "check_in_date"
	FieldCheckOut         = "check_out_date"
	FieldNights           = "nights"
	FieldAdults           = "adults"
	FieldChildren         = "children"
	FieldTotalAmount      = "total_amount"
	FieldStatus           = "status"
	FieldPaymentMethod    = "payment_method"
	FieldPaymentStatus    = "payment_status"
	FieldSpecialRequests  = "special_requests"
	FieldEmergencyContact = "emergency_contact"
	FieldEmergencyPhone   = "emergency_phone"
	FieldVersion          = "version"
)

const (
	StatusPending            = "pending"
	StatusConfirmed          = "confirmed"
	StatusCheckedIn          = "checked_in"
	StatusCheckedOut         = "checked_out"
	StatusCancelled          = "cancelled"
	StatusEmergencyCancelled = "emergency_cancelled"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

const (
	PaymentMethodCreditCard    = "credit_card"
	PaymentMethodDebitCard     = "debit_card"
	PaymentMethodMobilePayment = "mobile_payment"
	PaymentMethodOnlineBanking = "online_banking"
)

const CodePrefix = "BK"

var (
	ErrInvalidStay   = errors.New("check-out date must be after check-in date")
	ErrNightMismatch = errors.New("night count does not match the stay")
	ErrNegativeTotal = errors.New("total amount must not be negative")
)

// ActiveStatuses hold the room for their dates.
var ActiveStatuses = []string{StatusPending, StatusConfirmed, StatusCheckedIn}

type Booking struct {
	ID               string          `db:"id"`
	Code             string          `db:"booking_code"`
	UserID           string          `db:"user_id"`
	RoomID           string          `db:"room_id"`
	CheckIn          time.Time       `db:"check_in_date"`
	CheckOut         time.Time       `db:"check_out_date"`
	Nights           int             `db:"nights"`
	Adults           int             `db:"adults"`
	Children         int             `db:"children"`
	TotalAmount      decimal.Decimal `db:"total_amount"`
	Status           string          `db:"status"`
	PaymentMethod    string          `db:"payment_method"`
	PaymentStatus    string          `db:"payment_status"`
	SpecialRequests  string          `db:"special_requests"`
	EmergencyContact string          `db:"emergency_contact"`
	EmergencyPhone   string          `db:"emergency_phone"`
	Version          int             `db:"version"`
	model.Metadata
}

// NightsBetween counts calendar days between two dates, ignoring the clock.
func NightsBetween(checkIn, checkOut time.Time) int {
	in := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, time.UTC)
	out := time.Date(checkOut.Year(), checkOut.Month(), checkOut.Day(), 0, 0, 0, 0, time.UTC)

	return int(out.Sub(in).Hours() / 24) //nolint:mnd
}

func (b Booking) Validate() error {
	if !b.CheckOut.After(b.CheckIn) || NightsBetween(b.CheckIn, b.CheckOut) < 1 {
		return ErrInvalidStay
	}

	if b.Nights != NightsBetween(b.CheckIn, b.CheckOut) {
		return ErrNightMismatch
	}

	if b.TotalAmount.IsNegative() {
		return ErrNegativeTotal
	}

	return nil
}

func (b Booking) Cancelled() bool {
	return b.Status == StatusCancelled || b.Status == StatusEmergencyCancelled
}

// Mutation stamps the audit and version columns onto a set of column changes.
func (b Booking) Mutation(fields map[string]any, user string, at time.Time) map[string]any {
	fields[FieldVersion] = b.Version + 1
	fields[constant.FieldModifiedAt] = at
	fields[constant.FieldModifiedBy] = user

	return fields
}
