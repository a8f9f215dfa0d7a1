package model

import (
	"encoding/json"
	"time"

	"hotel/shared/model"

	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

const (
	TableName  = "payments"
	EntityName = "payment"

	FieldID             = "id"
	FieldPaymentID      = "payment_id"
	FieldBookingID      = "booking_id"
	FieldAmount         = "amount"
	FieldRefundedAmount = "refunded_amount"
	FieldCurrency       = "currency"
	FieldMethod         = "payment_method"
	FieldStatus         = "status"
	FieldDetails        = "payment_details"
	FieldPaidAt         = "paid_at"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusRefunded  = "refunded"
)

// ExternalIDPrefix marks ids generated for the gateway order.
const ExternalIDPrefix = "PH_"

type Payment struct {
	ID             string          `db:"id"`
	PaymentID      string          `db:"payment_id"`
	BookingID      string          `db:"booking_id"`
	Amount         decimal.Decimal `db:"amount"`
	RefundedAmount decimal.Decimal `db:"refunded_amount"`
	Currency       string          `db:"currency"`
	Method         string          `db:"payment_method"`
	Status         string          `db:"status"`
	Details        types.JSONText  `db:"payment_details"`
	PaidAt         *time.Time      `db:"paid_at"`
	model.Metadata
}

// Terminal payments are never moved back by a gateway callback.
func (p Payment) Terminal() bool {
	return p.Status == StatusCompleted || p.Status == StatusRefunded
}

// Transition reports whether status may move from the current one.
// refunded is absorbing and completed never becomes failed.
func (p Payment) Transition(to string) bool {
	switch p.Status {
	case StatusRefunded:
		return false
	case StatusCompleted:
		return to == StatusRefunded
	case StatusFailed:
		return to == StatusCompleted || to == StatusRefunded || to == StatusFailed
	default:
		return to != StatusPending
	}
}

func EncodeDetails(details map[string]string) types.JSONText {
	raw, err := json.Marshal(details)
	if err != nil {
		return types.JSONText("{}")
	}

	return types.JSONText(raw)
}

func (p Payment) DecodeDetails() map[string]string {
	details := map[string]string{}
	if len(p.Details) == 0 {
		return details
	}

	_ = p.Details.Unmarshal(&details)

	return details
}
