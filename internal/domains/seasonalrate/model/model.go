package model

import (
	"time"

	"hotel/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "room_seasonal_rates"
	EntityName = "seasonal_rate"

	FieldID         = "id"
	FieldRoomID     = "room_id"
	FieldName       = "name"
	FieldStartDate  = "start_date"
	FieldEndDate    = "end_date"
	FieldMultiplier = "multiplier"
)

type SeasonalRate struct {
	ID         string          `db:"id"`
	RoomID     string          `db:"room_id"`
	Name       string          `db:"name"`
	StartDate  time.Time       `db:"start_date"`
	EndDate    time.Time       `db:"end_date"`
	Multiplier decimal.Decimal `db:"multiplier"`
	model.Metadata
}

// Covers reports whether the night starting on day falls inside the rate. Both ends are inclusive.
func (r SeasonalRate) Covers(day time.Time) bool {
	d := dateOf(day)

	return !d.Before(dateOf(r.StartDate)) && !d.After(dateOf(r.EndDate))
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
