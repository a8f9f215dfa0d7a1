package model_test

import (
	"testing"

	"hotel/internal/domains/payment/model"

	"github.com/stretchr/testify/assert"
)

func TestPayment_Transition(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want bool
	}{
		{model.StatusPending, model.StatusCompleted, true},
		{model.StatusPending, model.StatusFailed, true},
		{model.StatusPending, model.StatusPending, false},
		{model.StatusFailed, model.StatusCompleted, true},
		{model.StatusCompleted, model.StatusFailed, false},
		{model.StatusCompleted, model.StatusRefunded, true},
		{model.StatusRefunded, model.StatusCompleted, false},
		{model.StatusRefunded, model.StatusRefunded, false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			assert.Equal(t, tt.want, model.Payment{Status: tt.from}.Transition(tt.to))
		})
	}
}

func TestPayment_Details(t *testing.T) {
	payment := model.Payment{Details: model.EncodeDetails(map[string]string{"payment_id": "320025071278"})}

	assert.Equal(t, "320025071278", payment.DecodeDetails()["payment_id"])
	assert.Empty(t, model.Payment{}.DecodeDetails())
}
