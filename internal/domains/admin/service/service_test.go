package service_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"hotel/infras/otel/mocks"
	adminMocks "hotel/internal/domains/admin/mocks"
	"hotel/internal/domains/admin/model"
	"hotel/internal/domains/admin/model/dto"
	"hotel/internal/domains/admin/service"
	"hotel/shared/failure"
	"hotel/shared/timezone"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"
)

func day(value string) time.Time {
	t, _ := time.Parse(time.DateOnly, value)

	return t
}

func setup(t *testing.T, at time.Time) (*adminMocks.MockAdmin, service.Admin) {
	t.Helper()

	t.Cleanup(timezone.SetLocation(time.UTC))
	t.Cleanup(timezone.Freeze(at))

	repo := adminMocks.NewMockAdmin(gomock.NewController(t))

	return repo, service.New(repo, mocks.NewOtel())
}

func TestAdminService_Dashboard(t *testing.T) {
	repo, svc := setup(t, time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC))

	repo.EXPECT().RoomTotals(gomock.Any()).Return(model.RoomTotals{Total: 8, Available: 7}, nil)
	repo.EXPECT().OccupiedRooms(gomock.Any(), day("2025-03-15")).Return(3, nil)
	repo.EXPECT().Revenue(gomock.Any(), day("2025-03-01"), day("2025-04-01")).Return(decimal.RequireFromString("1234.567"), nil)
	repo.EXPECT().BookingStatusCounts(gomock.Any()).Return([]model.StatusCount{
		{Status: "confirmed", Total: 4},
		{Status: "pending", Total: 2},
	}, nil)
	repo.EXPECT().AverageRoomRate(gomock.Any()).Return(decimal.RequireFromString("183.3333"), nil)
	repo.EXPECT().UpcomingCheckIns(gomock.Any(), day("2025-03-15"), day("2025-03-22")).Return([]model.UpcomingStay{
		{BookingID: "b1", Code: "BKA", GuestName: "Nimal", RoomNumber: "101", CheckIn: day("2025-03-16"), CheckOut: day("2025-03-18"), Status: "confirmed"},
	}, nil)
	repo.EXPECT().UpcomingCheckOuts(gomock.Any(), day("2025-03-15"), day("2025-03-22")).Return(nil, nil)

	res, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "37.5", res.Occupancy.Rate.String())
	assert.Equal(t, 3, res.Occupancy.OccupiedRooms)
	assert.Equal(t, "1234.57", res.MonthlyRevenue.String())
	assert.Equal(t, "2025-03", res.RevenueMonth)
	assert.Equal(t, map[string]int{"confirmed": 4, "pending": 2}, res.BookingsByStatus)
	assert.Equal(t, 6, res.TotalBookings)
	assert.Equal(t, "183.33", res.AverageRoomRate.String())
	require.Len(t, res.UpcomingCheckIns, 1)
	assert.Equal(t, "2025-03-16", res.UpcomingCheckIns[0].CheckIn)
	assert.Empty(t, res.UpcomingCheckOuts)
}

func TestAdminService_Dashboard_NoRooms(t *testing.T) {
	repo, svc := setup(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC))

	repo.EXPECT().RoomTotals(gomock.Any()).Return(model.RoomTotals{}, nil)
	repo.EXPECT().OccupiedRooms(gomock.Any(), gomock.Any()).Return(0, nil)
	repo.EXPECT().Revenue(gomock.Any(), gomock.Any(), gomock.Any()).Return(decimal.Zero, nil)
	repo.EXPECT().BookingStatusCounts(gomock.Any()).Return(nil, nil)
	repo.EXPECT().AverageRoomRate(gomock.Any()).Return(decimal.Zero, nil)
	repo.EXPECT().UpcomingCheckIns(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	repo.EXPECT().UpcomingCheckOuts(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	res, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Occupancy.Rate.IsZero())
	assert.Equal(t, 0, res.TotalBookings)
}

func TestAdminService_Dashboard_RepositoryError(t *testing.T) {
	repo, svc := setup(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC))

	repo.EXPECT().RoomTotals(gomock.Any()).Return(model.RoomTotals{}, errors.New("db down"))

	_, err := svc.Dashboard(context.Background())
	assert.Error(t, err)
}

func TestAdminService_ExportBookings(t *testing.T) {
	repo, svc := setup(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC))
	paid := decimal.RequireFromString("350")

	repo.EXPECT().ExportRows(gomock.Any(), day("2025-02-01"), day("2025-03-01")).Return([]model.ExportRow{
		{
			Code:          "BK65F1A2B3C4D5E",
			GuestName:     "Nimal Perera",
			GuestEmail:    "nimal@example.com",
			RoomNumber:    "101",
			RoomType:      "double",
			CheckIn:       day("2025-03-01"),
			CheckOut:      day("2025-03-04"),
			Nights:        3,
			TotalAmount:   paid,
			Status:        "confirmed",
			PaymentStatus: "completed",
			PaidAmount:    &paid,
			CreatedAt:     time.Date(2025, 2, 10, 9, 5, 0, 0, time.UTC),
		},
		{Code: "BK000000000000B", TotalAmount: decimal.NewFromInt(80), Status: "pending", PaymentStatus: "pending"},
	}, nil)

	content, filename, err := svc.ExportBookings(context.Background(), dto.ExportRequest{From: "2025-02-01", To: "2025-02-28"})
	require.NoError(t, err)
	assert.Equal(t, "bookings_2025-02-01_2025-02-28.xlsx", filename)

	book, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)

	defer book.Close()

	rows, err := book.GetRows("Bookings")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Booking Code", rows[0][0])
	assert.Equal(t, "BK65F1A2B3C4D5E", rows[1][0])
	assert.Equal(t, "2025-03-01", rows[1][5])
	assert.Equal(t, "350.00", rows[1][8])
	assert.Equal(t, "350.00", rows[1][11])
	assert.Equal(t, "2025-02-10 09:05", rows[1][12])
	assert.Equal(t, "80.00", rows[2][8])
}

func TestAdminService_ExportBookings_Range(t *testing.T) {
	tests := []struct {
		name     string
		req      dto.ExportRequest
		from, to string
		wantCode int
	}{
		{name: "defaults to the current month", from: "2025-03-01", to: "2025-04-01"},
		{name: "from only spans a month", req: dto.ExportRequest{From: "2025-01-10"}, from: "2025-01-10", to: "2025-02-10"},
		{name: "to only spans a month", req: dto.ExportRequest{To: "2025-01-31"}, from: "2025-01-01", to: "2025-02-01"},
		{name: "reversed", req: dto.ExportRequest{From: "2025-03-10", To: "2025-03-01"}, wantCode: http.StatusBadRequest},
		{name: "more than a year", req: dto.ExportRequest{From: "2023-01-01", To: "2025-01-01"}, wantCode: http.StatusBadRequest},
		{name: "bad date", req: dto.ExportRequest{From: "01/02/2025"}, wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, svc := setup(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC))

			if tt.wantCode == 0 {
				repo.EXPECT().ExportRows(gomock.Any(), day(tt.from), day(tt.to)).Return(nil, nil)
			}

			_, _, err := svc.ExportBookings(context.Background(), tt.req)

			if tt.wantCode == 0 {
				require.NoError(t, err)

				return
			}

			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}
