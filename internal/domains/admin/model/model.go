package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const EntityName = "admin"

type RoomTotals struct {
	Total     int `db:"total"`
	Available int `db:"available"`
}

type StatusCount struct {
	Status string `db:"status"`
	Total  int    `db:"total"`
}

// UpcomingStay is a booking joined with its guest and room for the dashboard lists.
type UpcomingStay struct {
	BookingID  string    `db:"id"`
	Code       string    `db:"booking_code"`
	GuestName  string    `db:"guest_name"`
	RoomNumber string    `db:"room_number"`
	CheckIn    time.Time `db:"check_in_date"`
	CheckOut   time.Time `db:"check_out_date"`
	Status     string    `db:"status"`
}

type ExportRow struct {
	Code          string           `db:"booking_code"`
	GuestName     string           `db:"guest_name"`
	GuestEmail    string           `db:"guest_email"`
	RoomNumber    string           `db:"room_number"`
	RoomType      string           `db:"room_type"`
	CheckIn       time.Time        `db:"check_in_date"`
	CheckOut      time.Time        `db:"check_out_date"`
	Nights        int              `db:"nights"`
	TotalAmount   decimal.Decimal  `db:"total_amount"`
	Status        string           `db:"status"`
	PaymentStatus string           `db:"payment_status"`
	PaidAmount    *decimal.Decimal `db:"paid_amount"`
	CreatedAt     time.Time        `db:"created_at"`
}
