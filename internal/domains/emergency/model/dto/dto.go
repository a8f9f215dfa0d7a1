package dto

import (
	"hotel/internal/domains/emergency/model"
	"hotel/internal/domains/emergency/repository"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/timezone"

	"github.com/shopspring/decimal"
)

type OpenCaseRequest struct {
	BookingID       string            `json:"booking_id"       validate:"required,uuid"`
	Type            string            `json:"type"             validate:"required,oneof=illness cancellation early_checkout"`
	Description     string            `json:"description"      validate:"required,max=2000"`
	AdditionalNotes map[string]string `json:"additional_notes" validate:"omitempty,max=20,dive,keys,max=50,endkeys,max=500"`
}

type CancellationRequest struct {
	BookingID    string `json:"booking_id"     validate:"required,uuid"`
	Reason       string `json:"reason"         validate:"required,max=2000"`
	ViaPhoneCall bool   `json:"via_phone_call"`
}

type IllnessRequest struct {
	BookingID             string `json:"booking_id"              validate:"required,uuid"`
	Description           string `json:"description"             validate:"required,max=2000"`
	RequiresEarlyCheckout bool   `json:"requires_early_checkout"`
}

type GuestEmergencyRequest struct {
	BookingCode string `json:"booking_code" validate:"required,max=20"`
	Type        string `json:"type"         validate:"required,oneof=illness cancellation early_checkout"`
	Description string `json:"description"  validate:"required,max=2000"`
	Name        string `json:"name"         validate:"required,max=100"`
	Phone       string `json:"phone"        validate:"required,phone"`
	Email       string `json:"email"        validate:"required,email"`
}

type ResolveCaseRequest struct {
	ResolutionNotes string `json:"resolution_notes" validate:"omitempty,max=2000"`
}

// SettleRefundRequest overrides the stamped refund amount when Amount is set.
type SettleRefundRequest struct {
	Amount *decimal.Decimal `json:"amount"`
}

type CaseResponse struct {
	ID           string           `json:"id"`
	BookingID    string           `json:"booking_id"`
	Type         string           `json:"type"`
	Description  string           `json:"description"`
	Status       string           `json:"status"`
	RefundAmount *decimal.Decimal `json:"refund_amount"`
	RefundStatus *string          `json:"refund_status"`
	Details      model.Details    `json:"emergency_details"`
	ResolvedAt   *string          `json:"resolved_at"`
	gDto.Metadata
}

func (c *CaseResponse) FromModel(model model.Case) {
	c.ID = model.ID
	c.BookingID = model.BookingID
	c.Type = model.Type
	c.Description = model.Description
	c.Status = model.Status
	c.RefundStatus = model.RefundStatus
	c.Details = model.Details

	if model.RefundAmount.Valid {
		amount := model.RefundAmount.Decimal
		c.RefundAmount = &amount
	}

	if model.ResolvedAt != nil {
		resolvedAt := timezone.Format(*model.ResolvedAt, constant.DateFormat)
		c.ResolvedAt = &resolvedAt
	}

	c.Metadata.FromModel(model.Metadata)
}

type GetCasesResponse struct {
	Cases     []CaseResponse `json:"cases"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetCasesResponse) FromModels(models []model.Case, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.TotalPages(totalData, limit)

	r.Cases = make([]CaseResponse, len(models))
	for i, mod := range models {
		r.Cases[i].FromModel(mod)
	}
}

type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

type StatisticsResponse struct {
	TotalEmergencies    int             `json:"total_emergencies"`
	OpenEmergencies     int             `json:"open_emergencies"`
	ResolvedEmergencies int             `json:"resolved_emergencies"`
	TotalRefunds        decimal.Decimal `json:"total_refunds"`
	EmergencyTypes      []TypeCount     `json:"emergency_types"`
}

func (s *StatisticsResponse) FromRepository(stats repository.Statistics, types []repository.TypeCount) {
	s.TotalEmergencies = stats.Total
	s.OpenEmergencies = stats.Open
	s.ResolvedEmergencies = stats.Resolved
	s.TotalRefunds = stats.CompletedRefunds

	s.EmergencyTypes = make([]TypeCount, len(types))
	for i, count := range types {
		s.EmergencyTypes[i] = TypeCount{Type: count.Type, Count: count.Total}
	}
}
