package model_test

import (
	"testing"
	"time"

	bookingModel "hotel/internal/domains/booking/model"
	"hotel/internal/domains/emergency/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetails_MergeKeepsPriorSections(t *testing.T) {
	cancelledAt := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	resolvedAt := cancelledAt.Add(2 * time.Hour)

	original := model.Details{
		Cancellation:    &model.CancellationDetails{Reason: "flight cancelled", ViaPhoneCall: true, CancelledAt: cancelledAt},
		AdditionalNotes: map[string]string{"agent": "front desk", "callback": "yes"},
	}

	merged := original.Merge(model.Details{
		Resolution:      &model.Resolution{Notes: "refund approved", ResolvedAt: resolvedAt},
		AdditionalNotes: map[string]string{"callback": "done"},
	})

	require.NotNil(t, merged.Cancellation)
	assert.Equal(t, "flight cancelled", merged.Cancellation.Reason)
	require.NotNil(t, merged.Resolution)
	assert.Equal(t, "refund approved", merged.Resolution.Notes)
	assert.Equal(t, map[string]string{"agent": "front desk", "callback": "done"}, merged.AdditionalNotes)
	assert.Equal(t, "yes", original.AdditionalNotes["callback"])
}

func TestDetails_ValueScan(t *testing.T) {
	details := model.Details{Illness: &model.IllnessDetails{RequiresEarlyCheckout: true}}

	value, err := details.Value()
	require.NoError(t, err)

	raw, ok := value.([]byte)
	require.True(t, ok)
	assert.JSONEq(t, `{"illness":{"requires_early_checkout":true,"reported_at":"0001-01-01T00:00:00Z"}}`, string(raw))

	var scanned model.Details
	require.NoError(t, scanned.Scan(raw))
	assert.True(t, scanned.Illness.RequiresEarlyCheckout)

	require.NoError(t, scanned.Scan(nil))
	assert.Nil(t, scanned.Illness)

	require.NoError(t, scanned.Scan(`{"resolution":{"resolution_notes":"done"}}`))
	assert.Equal(t, "done", scanned.Resolution.Notes)

	// an empty column is read as empty details, not stale ones
	require.NoError(t, scanned.Scan([]byte{}))
	assert.Nil(t, scanned.Resolution)

	assert.Error(t, scanned.Scan(42))
}

func TestBookingStatus(t *testing.T) {
	assert.Equal(t, bookingModel.StatusEmergencyCancelled, model.BookingStatus(model.TypeCancellation))
	assert.Equal(t, bookingModel.StatusCheckedOut, model.BookingStatus(model.TypeEarlyCheckout))
	assert.Equal(t, bookingModel.StatusConfirmed, model.BookingStatus(model.TypeIllness))
	assert.False(t, model.Refundable(model.TypeIllness))
}
