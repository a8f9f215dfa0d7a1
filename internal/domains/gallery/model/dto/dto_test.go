package dto_test

import (
	"testing"

	"hotel/internal/domains/gallery/model"
	"hotel/internal/domains/gallery/model/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/stretchr/testify/assert"
)

func TestCreateImageRequest_ToModel(t *testing.T) {
	req := dto.CreateImageRequest{
		Title:       "Infinity Pool",
		Description: "Rooftop pool at sunset",
		Category:    model.CategoryFacilities,
		SortOrder:   3,
		Featured:    true,
	}

	userID := "test-user-id"
	image := req.ToModel(userID, "https://cdn.example.com/gallery/pool.jpg")

	assert.NotEmpty(t, image.ID, "expected ID to be generated")
	assert.Equal(t, req.Title, image.Title)
	assert.Equal(t, req.Category, image.Category)
	assert.Equal(t, "https://cdn.example.com/gallery/pool.jpg", image.ImageURL)
	assert.Equal(t, req.Title, image.AltText, "alt text falls back to the title")
	assert.Equal(t, 3, image.SortOrder)
	assert.True(t, image.Featured)
	assert.True(t, image.Active, "new images are active")
	assert.Equal(t, userID, image.CreatedBy)
	assert.Equal(t, userID, image.ModifiedBy)
	assert.False(t, image.CreatedAt.IsZero(), "expected CreatedAt to be set")
}

func TestCreateImageRequest_ToModel_KeepsAltText(t *testing.T) {
	req := dto.CreateImageRequest{Title: "Lobby", AltText: "Marble lobby with chandelier", Category: model.CategoryExterior}

	assert.Equal(t, "Marble lobby with chandelier", req.ToModel("u", "url").AltText)
}

func TestUpdateImageRequest_Empty(t *testing.T) {
	order := 0

	assert.True(t, (&dto.UpdateImageRequest{}).Empty())
	assert.False(t, (&dto.UpdateImageRequest{SortOrder: &order}).Empty())
	assert.False(t, (&dto.UpdateImageRequest{Title: "Spa"}).Empty())
}

func TestGetImagesResponse_FromModels(t *testing.T) {
	now := timezone.Now()
	images := []model.HotelImage{
		{
			ID:       "test-id-1",
			Title:    "Deluxe Room",
			Category: model.CategoryRooms,
			ImageURL: "https://example.com/image1.jpg",
			Active:   true,
			Metadata: gModel.NewMetadata("test-user", now),
		},
		{
			ID:       "test-id-2",
			Title:    "Restaurant",
			Category: model.CategoryDining,
			ImageURL: "https://example.com/image2.jpg",
			Featured: true,
			Metadata: gModel.NewMetadata("test-user", now),
		},
	}

	var response dto.GetImagesResponse
	response.FromModels(images, 15, 10)

	assert.Equal(t, 15, response.TotalData)
	assert.Equal(t, 2, response.TotalPage)
	assert.Len(t, response.Images, len(images))

	for i, image := range response.Images {
		assert.Equal(t, images[i].ID, image.ID)
		assert.Equal(t, images[i].Category, image.Category)
		assert.Equal(t, images[i].ImageURL, image.ImageURL)
		assert.Equal(t, images[i].Featured, image.Featured)
	}
}

func TestGetImagesResponse_FromModels_EmptyList(t *testing.T) {
	var response dto.GetImagesResponse
	response.FromModels(nil, 0, 10)

	assert.Equal(t, 0, response.TotalData)
	assert.Equal(t, 1, response.TotalPage)
	assert.Empty(t, response.Images)
}
