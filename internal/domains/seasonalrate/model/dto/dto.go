package dto

import (
	"time"

	"hotel/internal/domains/seasonalrate/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateSeasonalRateRequest struct {
	RoomID     string          `json:"room_id"    validate:"required,uuid"`
	Name       string          `json:"name"       validate:"required,max=100"`
	StartDate  string          `json:"start_date" validate:"required,dateonly"`
	EndDate    string          `json:"end_date"   validate:"required,dateonly"`
	Multiplier decimal.Decimal `json:"multiplier" validate:"required,gt=0"`
}

// Period parses both dates. Callers validate the format first.
func (c *CreateSeasonalRateRequest) Period() (time.Time, time.Time) {
	start, _ := time.Parse(constant.DateOnlyFormat, c.StartDate)
	end, _ := time.Parse(constant.DateOnlyFormat, c.EndDate)

	return start, end
}

func (c *CreateSeasonalRateRequest) ToModel(user string) model.SeasonalRate {
	start, end := c.Period()

	return model.SeasonalRate{
		ID:         uuid.NewString(),
		RoomID:     c.RoomID,
		Name:       c.Name,
		StartDate:  start,
		EndDate:    end,
		Multiplier: c.Multiplier,
		Metadata:   gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateSeasonalRateRequest struct {
	Name       string           `db:"name"       json:"name"       validate:"omitempty,max=100"`
	StartDate  string           `db:"start_date" json:"start_date" validate:"omitempty,dateonly"`
	EndDate    string           `db:"end_date"   json:"end_date"   validate:"omitempty,dateonly"`
	Multiplier *decimal.Decimal `db:"multiplier" json:"multiplier" validate:"omitempty,gt=0"`
}

type SeasonalRateResponse struct {
	ID         string          `json:"id"`
	RoomID     string          `json:"room_id"`
	Name       string          `json:"name"`
	StartDate  string          `json:"start_date"`
	EndDate    string          `json:"end_date"`
	Multiplier decimal.Decimal `json:"multiplier" validate:"required,gt=0"`
	gDto.Metadata
}

func (r *SeasonalRateResponse) FromModel(model model.SeasonalRate) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.Name = model.Name
	r.StartDate = model.StartDate.Format(constant.DateOnlyFormat)
	r.EndDate = model.EndDate.Format(constant.DateOnlyFormat)
	r.Multiplier = model.Multiplier
	r.Metadata.FromModel(model.Metadata)
}

type GetSeasonalRatesResponse struct {
	Rates []SeasonalRateResponse `json:"rates"`
}

func (r *GetSeasonalRatesResponse) FromModels(models []model.SeasonalRate) {
	r.Rates = make([]SeasonalRateResponse, len(models))
	for i, mod := range models {
		r.Rates[i].FromModel(mod)
	}
}
