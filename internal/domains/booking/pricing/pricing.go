// Package pricing computes the price of a stay from a room's base price and its seasonal rates.
package pricing

import (
	"time"

	"hotel/internal/domains/seasonalrate/model"

	"github.com/shopspring/decimal"
)

const currencyPlaces = 2

type Night struct {
	Date       time.Time       `json:"date"`
	Multiplier decimal.Decimal `json:"multiplier"`
	Price      decimal.Decimal `json:"price"`
}

type Quote struct {
	Nights []Night         `json:"nights"`
	Total  decimal.Decimal `json:"total"`
}

// Multiplier returns the highest multiplier among rates covering day, or 1.
func Multiplier(rates []model.SeasonalRate, day time.Time) decimal.Decimal {
	best := decimal.NewFromInt(1)
	found := false

	for _, rate := range rates {
		if !rate.Covers(day) {
			continue
		}

		if !found || rate.Multiplier.GreaterThan(best) {
			best = rate.Multiplier
			found = true
		}
	}

	return best
}

// Calculate prices every night in [checkIn, checkOut). The total is rounded once.
func Calculate(basePrice decimal.Decimal, rates []model.SeasonalRate, checkIn, checkOut time.Time) Quote {
	quote := Quote{Total: decimal.Zero}

	for day := checkIn; day.Before(checkOut); day = day.AddDate(0, 0, 1) {
		multiplier := Multiplier(rates, day)
		price := basePrice.Mul(multiplier)

		quote.Nights = append(quote.Nights, Night{Date: day, Multiplier: multiplier, Price: price})
		quote.Total = quote.Total.Add(price)
	}

	quote.Total = quote.Total.Round(currencyPlaces)

	return quote
}
