package dto_test

import (
	"testing"
	"time"

	"hotel/internal/domains/roomavailability/model"
	"hotel/internal/domains/roomavailability/model/dto"
	"hotel/shared/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAvailabilityRequest_ToModels(t *testing.T) {
	now := time.Date(2026, 12, 1, 9, 0, 0, 0, time.UTC)
	req := dto.SetAvailabilityRequest{Availability: []dto.AvailabilityEntry{
		{Date: "2026-12-24", Status: " BLOCKED"},
		{Date: "2026-12-25", Status: "available"},
	}}

	models := req.ToModels("r1", "staff-1", now)

	require.Len(t, models, 2)
	assert.NotEqual(t, models[0].ID, models[1].ID)
	assert.Equal(t, "r1", models[0].RoomID)
	assert.Equal(t, time.Date(2026, 12, 24, 0, 0, 0, 0, time.UTC), models[0].Date)
	assert.Equal(t, model.StatusBlocked, models[0].Status)
	assert.True(t, models[0].Blocked())
	assert.False(t, models[1].Blocked())
	assert.Equal(t, "staff-1", models[1].CreatedBy)
}

func TestValidStatus(t *testing.T) {
	assert.True(t, dto.ValidStatus(dto.NormalizeStatus("Blocked ")))
	assert.True(t, dto.ValidStatus(model.StatusAvailable))
	assert.False(t, dto.ValidStatus("maintenance"))
}

func TestSetAvailabilityRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.SetAvailabilityRequest
		wantErr bool
	}{
		{name: "valid", req: dto.SetAvailabilityRequest{Availability: []dto.AvailabilityEntry{{Date: "2026-12-24", Status: "blocked"}}}},
		{name: "empty calendar", req: dto.SetAvailabilityRequest{}, wantErr: true},
		{name: "bad date", req: dto.SetAvailabilityRequest{Availability: []dto.AvailabilityEntry{{Date: "24-12-2026", Status: "blocked"}}}, wantErr: true},
		{name: "missing status", req: dto.SetAvailabilityRequest{Availability: []dto.AvailabilityEntry{{Date: "2026-12-24"}}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
		})
	}
}
