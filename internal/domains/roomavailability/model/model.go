package model

import (
	"time"

	"hotel/shared/model"
)

const (
	TableName  = "room_availabilities"
	EntityName = "room_availability"

	FieldID     = "id"
	FieldRoomID = "room_id"
	FieldDate   = "date"
	FieldStatus = "status"
)

const (
	StatusAvailable = "available"
	StatusBlocked   = "blocked"
)

// RoomAvailability marks one calendar day of a room. Only blocked days affect bookings;
// a day without a row is available.
type RoomAvailability struct {
	ID     string    `db:"id"`
	RoomID string    `db:"room_id"`
	Date   time.Time `db:"date"`
	Status string    `db:"status"`
	model.Metadata
}

func (a RoomAvailability) Blocked() bool {
	return a.Status == StatusBlocked
}
