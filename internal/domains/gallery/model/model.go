package model

import "hotel/shared/model"

const (
	TableName  = "hotel_images"
	EntityName = "gallery"

	FieldID          = "id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldImageURL    = "image_url"
	FieldAltText     = "alt_text"
	FieldSortOrder   = "sort_order"
	FieldFeatured    = "is_featured"
	FieldActive      = "is_active"
)

const (
	CategoryRooms      = "rooms"
	CategoryDining     = "dining"
	CategoryFacilities = "facilities"
	CategoryExterior   = "exterior"
	CategoryEvents     = "events"
	CategoryOther      = "other"
)

type HotelImage struct {
	ID          string `db:"id"`
	Title       string `db:"title"`
	Description string `db:"description"`
	Category    string `db:"category"`
	ImageURL    string `db:"image_url"`
	AltText     string `db:"alt_text"`
	SortOrder   int    `db:"sort_order"`
	Featured    bool   `db:"is_featured"`
	Active      bool   `db:"is_active"`
	model.Metadata
}
