package dto

import (
	"hotel/infras/payhere"
	"hotel/internal/domains/payment/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/timezone"

	"github.com/shopspring/decimal"
)

type InitiatePaymentRequest struct {
	BookingID     string `json:"booking_id"     validate:"required,uuid"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=credit_card debit_card mobile_payment online_banking"`
}

type RefundPaymentRequest struct {
	RefundAmount decimal.Decimal `json:"refund_amount"`
	Reason       string          `json:"reason"        validate:"required,max=500"`
}

type PaymentResponse struct {
	ID             string          `json:"id"`
	PaymentID      string          `json:"payment_id"`
	BookingID      string          `json:"booking_id"`
	Amount         decimal.Decimal `json:"amount"`
	RefundedAmount decimal.Decimal `json:"refunded_amount"`
	Currency       string          `json:"currency"`
	PaymentMethod  string          `json:"payment_method"`
	Status         string          `json:"status"`
	PaidAt         *string         `json:"paid_at"`
	gDto.Metadata
}

func (p *PaymentResponse) FromModel(model model.Payment) {
	p.ID = model.ID
	p.PaymentID = model.PaymentID
	p.BookingID = model.BookingID
	p.Amount = model.Amount
	p.RefundedAmount = model.RefundedAmount
	p.Currency = model.Currency
	p.PaymentMethod = model.Method
	p.Status = model.Status

	if model.PaidAt != nil {
		paidAt := timezone.Format(*model.PaidAt, constant.DateFormat)
		p.PaidAt = &paidAt
	}

	p.Metadata.FromModel(model.Metadata)
}

type CheckoutResponse struct {
	Payment    PaymentResponse `json:"payment"`
	FormData   payhere.Form    `json:"form_data"`
	PayHereURL string          `json:"payhere_url"`
}

type GetPaymentsResponse struct {
	Payments  []PaymentResponse `json:"payments"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetPaymentsResponse) FromModels(models []model.Payment, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.TotalPages(totalData, limit)

	r.Payments = make([]PaymentResponse, len(models))
	for i, mod := range models {
		r.Payments[i].FromModel(mod)
	}
}
