package dto

import (
	"hotel/internal/domains/admin/model"
	"hotel/shared/constant"
	"hotel/shared/timezone"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type ExportRequest struct {
	From string `json:"from" validate:"omitempty,dateonly"`
	To   string `json:"to"   validate:"omitempty,dateonly"`
}

type OccupancyResponse struct {
	TotalRooms     int             `json:"total_rooms"`
	AvailableRooms int             `json:"available_rooms"`
	OccupiedRooms  int             `json:"occupied_rooms"`
	Rate           decimal.Decimal `json:"occupancy_rate"`
}

// OccupancyFrom returns occupied over total as a percentage with two decimals.
func OccupancyFrom(totals model.RoomTotals, occupied int) OccupancyResponse {
	res := OccupancyResponse{
		TotalRooms:     totals.Total,
		AvailableRooms: totals.Available,
		OccupiedRooms:  occupied,
		Rate:           decimal.Zero,
	}

	if totals.Total > 0 {
		res.Rate = decimal.NewFromInt(int64(occupied)).Mul(hundred).Div(decimal.NewFromInt(int64(totals.Total))).Round(2)
	}

	return res
}

type StayResponse struct {
	BookingID  string `json:"booking_id"`
	Code       string `json:"booking_code"`
	GuestName  string `json:"guest_name"`
	RoomNumber string `json:"room_number"`
	CheckIn    string `json:"check_in_date"`
	CheckOut   string `json:"check_out_date"`
	Status     string `json:"status"`
}

func StaysFrom(stays []model.UpcomingStay) []StayResponse {
	res := make([]StayResponse, len(stays))
	for i, s := range stays {
		res[i] = StayResponse{
			BookingID:  s.BookingID,
			Code:       s.Code,
			GuestName:  s.GuestName,
			RoomNumber: s.RoomNumber,
			CheckIn:    timezone.Format(s.CheckIn, constant.DateOnlyFormat),
			CheckOut:   timezone.Format(s.CheckOut, constant.DateOnlyFormat),
			Status:     s.Status,
		}
	}

	return res
}

type DashboardResponse struct {
	Occupancy         OccupancyResponse `json:"occupancy"`
	MonthlyRevenue    decimal.Decimal   `json:"monthly_revenue"`
	RevenueMonth      string            `json:"revenue_month"`
	BookingsByStatus  map[string]int    `json:"bookings_by_status"`
	TotalBookings     int               `json:"total_bookings"`
	AverageRoomRate   decimal.Decimal   `json:"average_room_rate"`
	UpcomingCheckIns  []StayResponse    `json:"upcoming_check_ins"`
	UpcomingCheckOuts []StayResponse    `json:"upcoming_check_outs"`
}

func (r *DashboardResponse) SetStatusCounts(counts []model.StatusCount) {
	r.BookingsByStatus = make(map[string]int, len(counts))
	r.TotalBookings = 0

	for _, c := range counts {
		r.BookingsByStatus[c.Status] = c.Total
		r.TotalBookings += c.Total
	}
}
