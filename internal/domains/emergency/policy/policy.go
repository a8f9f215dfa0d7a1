// Package policy decides how much of a booking is refunded for an emergency.
//
// The calculation is pure: the caller pins now once per operation and passes the
// same value to every step that needs it, so the stamped and settled amounts agree.
package policy

import (
	"errors"
	"time"

	bookingModel "hotel/internal/domains/booking/model"
	"hotel/internal/domains/emergency/model"

	"github.com/shopspring/decimal"
)

const (
	currencyPlaces = 2
	hoursPerDay    = 24
)

var ErrInvalidNights = errors.New("booking has no nights to refund")

// Net is the refundable part of total once tax is withheld.
func Net(total, taxRate decimal.Decimal) decimal.Decimal {
	return total.Mul(decimal.NewFromInt(1).Sub(taxRate))
}

// RemainingNights counts whole days from now until the check-out date, clamped to [0, nights].
// The check-out date is read as midnight in now's location.
func RemainingNights(booking bookingModel.Booking, now time.Time) int {
	year, month, day := booking.CheckOut.Date()
	checkOut := time.Date(year, month, day, 0, 0, 0, 0, now.Location())

	if !now.Before(checkOut) {
		return 0
	}

	remaining := int(checkOut.Sub(now).Hours()) / hoursPerDay

	return min(max(remaining, 0), booking.Nights)
}

// Calculate returns the refund for caseType rounded once to two places.
func Calculate(booking bookingModel.Booking, caseType string, now time.Time, taxRate decimal.Decimal) (decimal.Decimal, error) {
	if booking.Nights <= 0 {
		return decimal.Zero, ErrInvalidNights
	}

	net := Net(booking.TotalAmount, taxRate)

	switch caseType {
	case model.TypeCancellation:
		return net.Round(currencyPlaces), nil
	case model.TypeEarlyCheckout:
		remaining := RemainingNights(booking, now)
		if remaining == 0 {
			return decimal.Zero, nil
		}

		refund := net.Mul(decimal.NewFromInt(int64(remaining))).Div(decimal.NewFromInt(int64(booking.Nights)))

		return refund.Round(currencyPlaces), nil
	default:
		return decimal.Zero, nil
	}
}
