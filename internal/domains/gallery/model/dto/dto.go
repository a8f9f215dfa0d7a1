package dto

import (
	"mime/multipart"

	"hotel/internal/domains/gallery/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

type CreateImageRequest struct {
	Title       string                `json:"title"       validate:"required,min=3,max=100"`
	Description string                `json:"description" validate:"omitempty,max=1000"`
	Category    string                `json:"category"    validate:"required,oneof=rooms dining facilities exterior events other"`
	AltText     string                `json:"alt_text"    validate:"omitempty,max=255"`
	SortOrder   int                   `json:"sort_order"  validate:"gte=0"`
	Featured    bool                  `json:"is_featured"`
	Image       *multipart.FileHeader `json:"image"       swaggerignore:"true" validate:"required,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5"`
	ImageFile   multipart.File        `json:"-"`
}

func (c *CreateImageRequest) ToModel(user, imageURL string) model.HotelImage {
	altText := c.AltText
	if altText == "" {
		altText = c.Title
	}

	return model.HotelImage{
		ID:          uuid.NewString(),
		Title:       c.Title,
		Description: c.Description,
		Category:    c.Category,
		ImageURL:    imageURL,
		AltText:     altText,
		SortOrder:   c.SortOrder,
		Featured:    c.Featured,
		Active:      true,
		Metadata:    gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateImageRequest struct {
	Title       string                `db:"title"       json:"title"       validate:"omitempty,min=3,max=100"`
	Description string                `db:"description" json:"description" validate:"omitempty,max=1000"`
	Category    string                `db:"category"    json:"category"    validate:"omitempty,oneof=rooms dining facilities exterior events other"`
	AltText     string                `db:"alt_text"    json:"alt_text"    validate:"omitempty,max=255"`
	SortOrder   *int                  `db:"sort_order"  json:"sort_order"  validate:"omitempty,gte=0"`
	Image       *multipart.FileHeader `json:"image"       swaggerignore:"true" validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5"`
	ImageFile   multipart.File        `json:"-"`
}

// Empty reports whether the request changes nothing.
func (u *UpdateImageRequest) Empty() bool {
	return u.Title == "" && u.Description == "" && u.Category == "" && u.AltText == "" && u.SortOrder == nil && u.Image == nil
}

type ReorderItem struct {
	ID        string `json:"id"         validate:"required,uuid"`
	SortOrder int    `json:"sort_order" validate:"gte=0"`
}

type ReorderRequest struct {
	Images []ReorderItem `json:"images" validate:"required,min=1,max=200,dive"`
}

type ImageResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	ImageURL    string `json:"image_url"`
	AltText     string `json:"alt_text"`
	SortOrder   int    `json:"sort_order"`
	Featured    bool   `json:"is_featured"`
	Active      bool   `json:"is_active"`
	gDto.Metadata
}

func (r *ImageResponse) FromModel(model model.HotelImage) {
	r.ID = model.ID
	r.Title = model.Title
	r.Description = model.Description
	r.Category = model.Category
	r.ImageURL = model.ImageURL
	r.AltText = model.AltText
	r.SortOrder = model.SortOrder
	r.Featured = model.Featured
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetImagesResponse struct {
	Images    []ImageResponse `json:"images"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetImagesResponse) FromModels(models []model.HotelImage, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.TotalPages(totalData, limit)

	r.Images = make([]ImageResponse, len(models))
	for i, m := range models {
		r.Images[i].FromModel(m)
	}
}
