package model

import (
	"hotel/shared/model"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID          = "id"
	FieldNumber      = "number"
	FieldName        = "name"
	FieldType        = "type"
	FieldBasePrice   = "base_price"
	FieldCapacity    = "capacity"
	FieldStatus      = "status"
	FieldDescription = "description"
	FieldAmenities   = "amenities"
	FieldImage       = "image"
)

const (
	StatusAvailable   = "available"
	StatusMaintenance = "maintenance"
	StatusUnavailable = "unavailable"
)

type Room struct {
	ID          string          `db:"id"`
	Number      string          `db:"number"`
	Name        string          `db:"name"`
	Type        string          `db:"type"`
	BasePrice   decimal.Decimal `db:"base_price"`
	Capacity    int             `db:"capacity"`
	Status      string          `db:"status"`
	Description string          `db:"description"`
	Amenities   pq.StringArray  `db:"amenities"`
	Image       string          `db:"image"`
	model.Metadata
}

func (r Room) Bookable() bool {
	return r.Status == StatusAvailable
}
