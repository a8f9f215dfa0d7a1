package templates_test

import (
	"testing"

	"hotel/internal/domains/notification/templates"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	data := templates.Data{
		HotelName:      "Dumidu Hotel",
		EmergencyPhone: "+94 11 234 5678",
		Currency:       "LKR",
		GuestName:      "Nimal",
		BookingCode:    "BK65F1A2B3C4D5E",
		CheckInShort:   "Mar 01",
		TotalAmount:    "1000.00",
		EmergencyType:  "cancellation",
		RefundAmount:   "850.00",
	}

	tests := []struct {
		name string
		kind string
		want string
	}{
		{templates.BookingConfirmation, templates.KindSMS, "Your booking BK65F1A2B3C4D5E is confirmed. Check-in: Mar 01. Dumidu Hotel"},
		{templates.PaymentConfirmation, templates.KindSMS, "Payment confirmed for booking BK65F1A2B3C4D5E. Amount: LKR 1000.00. Dumidu Hotel"},
		{templates.Emergency, templates.KindSMS, "Emergency case registered for booking BK65F1A2B3C4D5E. Type: cancellation. We'll contact you soon."},
		{templates.Refund, templates.KindSMS, "Refund of LKR 850.00 processed for booking BK65F1A2B3C4D5E. Dumidu Hotel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := templates.Render(tt.name, tt.kind, data)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRender_Email(t *testing.T) {
	body, err := templates.Render(templates.HotelRules, templates.KindEmail, templates.Data{
		GuestName: "Nimal", HotelName: "Dumidu Hotel", EmergencyPhone: "+94 11 234 5678",
		CheckInTime: "2:00 PM", CheckOutTime: "11:00 AM",
	})

	require.NoError(t, err)
	assert.Contains(t, body, "Dear Nimal,")
	assert.Contains(t, body, "Check-in time: 2:00 PM")
	assert.Contains(t, body, "For emergencies, call: +94 11 234 5678")
}

func TestHas(t *testing.T) {
	assert.True(t, templates.Has(templates.Emergency, templates.KindSMS))
	assert.False(t, templates.Has(templates.HotelRules, templates.KindSMS))
	assert.False(t, templates.Has("unknown", templates.KindEmail))
}
