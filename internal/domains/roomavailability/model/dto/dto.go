package dto

import (
	"strings"
	"time"

	"hotel/internal/domains/roomavailability/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"

	"github.com/google/uuid"
)

type AvailabilityEntry struct {
	Date   string `json:"date"   validate:"required,dateonly"`
	Status string `json:"status" validate:"required,max=20"`
}

// SetAvailabilityRequest replaces every dated entry of a room.
type SetAvailabilityRequest struct {
	Availability []AvailabilityEntry `json:"availability" validate:"required,min=1,max=366,dive"`
}

// ToModels normalizes statuses to lower case. Dates were validated by the request tags.
func (r *SetAvailabilityRequest) ToModels(roomID, user string, now time.Time) []model.RoomAvailability {
	models := make([]model.RoomAvailability, len(r.Availability))

	for i, entry := range r.Availability {
		date, _ := time.Parse(constant.DateOnlyFormat, entry.Date)

		models[i] = model.RoomAvailability{
			ID:       uuid.NewString(),
			RoomID:   roomID,
			Date:     date,
			Status:   NormalizeStatus(entry.Status),
			Metadata: gModel.NewMetadata(user, now),
		}
	}

	return models
}

type UpdateAvailabilityRequest struct {
	Date   string `json:"date"   validate:"required,dateonly"`
	Status string `json:"status" validate:"required,max=20"`
}

func NormalizeStatus(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}

// ValidStatus reports whether a normalized status is known.
func ValidStatus(status string) bool {
	return status == model.StatusAvailable || status == model.StatusBlocked
}

type AvailableRoomsRequest struct {
	CheckIn  string `json:"check_in_date"  validate:"required,dateonly"`
	CheckOut string `json:"check_out_date" validate:"required,dateonly"`
}

type AvailabilityResponse struct {
	ID     string `json:"id"`
	RoomID string `json:"room_id"`
	Date   string `json:"date"`
	Status string `json:"status"`
	gDto.Metadata
}

func (r *AvailabilityResponse) FromModel(model model.RoomAvailability) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.Date = model.Date.Format(constant.DateOnlyFormat)
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetAvailabilitiesResponse struct {
	Availability []AvailabilityResponse `json:"availability"`
}

func (r *GetAvailabilitiesResponse) FromModels(models []model.RoomAvailability) {
	r.Availability = make([]AvailabilityResponse, len(models))
	for i, mod := range models {
		r.Availability[i].FromModel(mod)
	}
}
