package dto

import (
	"mime/multipart"

	"hotel/internal/domains/room/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type CreateRoomRequest struct {
	Number      string                `json:"number"      validate:"required,max=20"`
	Name        string                `json:"name"        validate:"required,max=100"`
	Type        string                `json:"type"        validate:"required,max=50"`
	BasePrice   decimal.Decimal       `json:"base_price"  validate:"required,gt=0"`
	Capacity    int                   `json:"capacity"    validate:"required,min=1"`
	Status      string                `json:"status"      validate:"omitempty,oneof=available maintenance unavailable"`
	Description string                `json:"description" validate:"omitempty,max=2000"`
	Amenities   []string              `json:"amenities"   validate:"omitempty,dive,max=100"`
	Image       *multipart.FileHeader `json:"image"       validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile   multipart.File        `json:"-"`
}

func (c *CreateRoomRequest) ToModel(user string, imageURL string) model.Room {
	status := c.Status
	if status == "" {
		status = model.StatusAvailable
	}

	return model.Room{
		ID:          uuid.NewString(),
		Number:      c.Number,
		Name:        c.Name,
		Type:        c.Type,
		BasePrice:   c.BasePrice.Round(2),
		Capacity:    c.Capacity,
		Status:      status,
		Description: c.Description,
		Amenities:   pq.StringArray(c.Amenities),
		Image:       imageURL,
		Metadata:    gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateRoomRequest struct {
	Name        string                `db:"name"        json:"name"        validate:"omitempty,max=100"`
	Type        string                `db:"type"        json:"type"        validate:"omitempty,max=50"`
	BasePrice   *decimal.Decimal      `db:"base_price"  json:"base_price"  validate:"omitempty,gt=0"`
	Capacity    *int                  `db:"capacity"    json:"capacity"    validate:"omitempty,min=1"`
	Status      string                `db:"status"      json:"status"      validate:"omitempty,oneof=available maintenance unavailable"`
	Description string                `db:"description" json:"description" validate:"omitempty,max=2000"`
	Amenities   pq.StringArray        `db:"amenities"   json:"amenities"   validate:"omitempty,dive,max=100"`
	Image       *multipart.FileHeader `json:"image"     validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile   multipart.File        `json:"-"`
}

type RoomResponse struct {
	ID          string          `json:"id"`
	Number      string          `json:"number"`
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	BasePrice   decimal.Decimal `json:"base_price"`
	Capacity    int             `json:"capacity"`
	Status      string          `json:"status"`
	Description string          `json:"description"`
	Amenities   []string        `json:"amenities"`
	Image       string          `json:"image"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Number = model.Number
	r.Name = model.Name
	r.Type = model.Type
	r.BasePrice = model.BasePrice
	r.Capacity = model.Capacity
	r.Status = model.Status
	r.Description = model.Description
	r.Amenities = model.Amenities
	r.Image = model.Image
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.TotalPages(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
