package service_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"hotel/infras/otel/mocks"
	bookingMocks "hotel/internal/domains/booking/mocks"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/service"
	emergencyMocks "hotel/internal/domains/emergency/mocks"
	notificationMocks "hotel/internal/domains/notification/service/mocks"
	paymentMocks "hotel/internal/domains/payment/mocks"
	roomMocks "hotel/internal/domains/room/mocks"
	roomModel "hotel/internal/domains/room/model"
	availabilityMocks "hotel/internal/domains/roomavailability/service/mocks"
	rateModel "hotel/internal/domains/seasonalrate/model"
	rateMocks "hotel/internal/domains/seasonalrate/service/mocks"
	userMocks "hotel/internal/domains/user/mocks"
	userModel "hotel/internal/domains/user/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"
	"hotel/shared/transaction"
	txMocks "hotel/shared/transaction/mocks"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const roomID = "9c0f6a9e-7f43-4a8e-a1b2-3c4d5e6f7a80"

type fixture struct {
	repo         *bookingMocks.MockBooking
	room         *roomMocks.MockRoom
	payment      *paymentMocks.MockPayment
	cases        *emergencyMocks.MockCase
	users        *userMocks.MockUser
	rates        *rateMocks.MockSeasonalRate
	availability *availabilityMocks.MockRoomAvailability
	notification *notificationMocks.MockNotification
	svc          service.Booking
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(timezone.SetLocation(time.UTC))
	t.Cleanup(timezone.Freeze(time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)))

	tx := txMocks.NewMockTransactor(ctrl)
	tx.EXPECT().WithinTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn transaction.TxFunc) error {
			return fn(ctx, nil)
		}).AnyTimes()

	f := fixture{
		repo:         bookingMocks.NewMockBooking(ctrl),
		room:         roomMocks.NewMockRoom(ctrl),
		payment:      paymentMocks.NewMockPayment(ctrl),
		cases:        emergencyMocks.NewMockCase(ctrl),
		users:        userMocks.NewMockUser(ctrl),
		rates:        rateMocks.NewMockSeasonalRate(ctrl),
		availability: availabilityMocks.NewMockRoomAvailability(ctrl),
		notification: notificationMocks.NewMockNotification(ctrl),
	}
	f.svc = service.New(f.repo, f.room, f.payment, f.cases, f.users, f.rates, f.availability, tx, f.notification, mocks.NewOtel())

	return f
}

func asUser(id, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, id)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func createRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		RoomID:   roomID,
		CheckIn:  "2025-03-01",
		CheckOut: "2025-03-04",
		Adults:   2,
		Children: 1,
	}
}

// expectQuote prices the room at 100 a night with a 1.5 rate on the second night.
func (f fixture) expectQuote() {
	f.room.EXPECT().Get(gomock.Any(), gomock.Any(), roomModel.FieldID, roomModel.FieldBasePrice).
		Return(roomModel.Room{ID: roomID, BasePrice: decimal.NewFromInt(100)}, nil)
	f.rates.EXPECT().ForStay(gomock.Any(), roomID, gomock.Any(), gomock.Any()).Return([]rateModel.SeasonalRate{{
		RoomID:     roomID,
		StartDate:  time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
		Multiplier: decimal.RequireFromString("1.5"),
	}}, nil)
}

func (f fixture) expectRoomLock(room roomModel.Room) {
	f.room.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(room, nil)
}

// expectOpenDates reports no blocked night in the requested stay.
func (f fixture) expectOpenDates() {
	f.availability.EXPECT().BlockedTx(gomock.Any(), gomock.Any(), roomID,
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)).Return(false, nil)
}

func availableRoom() roomModel.Room {
	return roomModel.Room{ID: roomID, Status: roomModel.StatusAvailable, Capacity: 3, BasePrice: decimal.NewFromInt(100)}
}

func TestCreate(t *testing.T) {
	f := newFixture(t)
	f.expectQuote()
	f.expectRoomLock(availableRoom())
	f.expectOpenDates()

	f.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), model.FieldID).DoAndReturn(
		func(_ context.Context, _ *sqlx.Tx, filter gDto.FilterGroup, _ ...string) (model.Booking, error) {
			where, args := filter.GetWhereClause()
			assert.Contains(t, where, "bookings.check_in_date < :stay_check_out")
			assert.Contains(t, where, "bookings.check_out_date > :stay_check_in")
			assert.Equal(t, "2025-03-04", args["stay_check_out"])
			assert.Equal(t, "2025-03-01", args["stay_check_in"])

			return model.Booking{}, nil
		})

	var inserted model.Booking
	f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ *sqlx.Tx, booking model.Booking) error {
			inserted = booking

			return nil
		})
	f.notification.EXPECT().SendBookingConfirmation(gomock.Any(), gomock.Any()).Return(true)

	res, err := f.svc.Create(asUser("u1", constant.RoleGuest), createRequest())

	require.NoError(t, err)
	assert.Equal(t, "350.00", inserted.TotalAmount.StringFixed(2))
	assert.Equal(t, 3, inserted.Nights)
	assert.Equal(t, "u1", inserted.UserID)
	assert.Equal(t, model.StatusPending, inserted.Status)
	assert.Equal(t, model.PaymentStatusPending, inserted.PaymentStatus)
	assert.Equal(t, model.PaymentMethodCreditCard, inserted.PaymentMethod)
	assert.Len(t, inserted.Code, 15)
	assert.True(t, strings.HasPrefix(inserted.Code, model.CodePrefix))
	assert.Equal(t, strings.ToUpper(inserted.Code), inserted.Code)
	assert.Equal(t, inserted.Code, res.Code)
	assert.Equal(t, "2025-03-01", res.CheckIn)
}

func TestCreate_Rejections(t *testing.T) {
	t.Run("check-in in the past", func(t *testing.T) {
		f := newFixture(t)
		req := createRequest()
		req.CheckIn = "2025-01-31"

		_, err := f.svc.Create(asUser("u1", constant.RoleGuest), req)

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("check-out before check-in", func(t *testing.T) {
		f := newFixture(t)
		req := createRequest()
		req.CheckOut = "2025-03-01"

		_, err := f.svc.Create(asUser("u1", constant.RoleGuest), req)

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("room not found", func(t *testing.T) {
		f := newFixture(t)
		f.room.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(roomModel.Room{}, nil)

		_, err := f.svc.Create(asUser("u1", constant.RoleGuest), createRequest())

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("room under maintenance", func(t *testing.T) {
		f := newFixture(t)
		f.expectQuote()

		room := availableRoom()
		room.Status = roomModel.StatusMaintenance
		f.expectRoomLock(room)

		_, err := f.svc.Create(asUser("u1", constant.RoleGuest), createRequest())

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("too many guests", func(t *testing.T) {
		f := newFixture(t)
		f.expectQuote()

		room := availableRoom()
		room.Capacity = 2
		f.expectRoomLock(room)

		_, err := f.svc.Create(asUser("u1", constant.RoleGuest), createRequest())

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("dates blocked", func(t *testing.T) {
		f := newFixture(t)
		f.expectQuote()
		f.expectRoomLock(availableRoom())
		f.availability.EXPECT().BlockedTx(gomock.Any(), gomock.Any(), roomID, gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := f.svc.Create(asUser("u1", constant.RoleGuest), createRequest())

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.ErrorContains(t, err, "blocked")
	})

	t.Run("dates taken", func(t *testing.T) {
		f := newFixture(t)
		f.expectQuote()
		f.expectRoomLock(availableRoom())
		f.expectOpenDates()
		f.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), model.FieldID).Return(model.Booking{ID: "b0"}, nil)

		_, err := f.svc.Create(asUser("u1", constant.RoleGuest), createRequest())

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})
}

func guestRequest() dto.CreateGuestBookingRequest {
	return dto.CreateGuestBookingRequest{
		CreateBookingRequest: createRequest(),
		GuestName:            "Nimal Perera",
		GuestEmail:           " Nimal@Example.com ",
		GuestPhone:           "+94771234567",
	}
}

// expectBookable walks the stay checks up to the booking insert.
func (f fixture) expectBookable() {
	f.expectQuote()
	f.expectRoomLock(availableRoom())
	f.expectOpenDates()
	f.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), model.FieldID).Return(model.Booking{}, nil)
}

func TestCreateGuest(t *testing.T) {
	t.Run("opens a guest account", func(t *testing.T) {
		f := newFixture(t)
		f.expectBookable()

		var guest userModel.User

		gomock.InOrder(
			f.users.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, _ *sqlx.Tx, filter gDto.FilterGroup, _ ...string) (userModel.User, error) {
					_, args := filter.GetWhereClause()
					assert.Equal(t, "nimal@example.com", args[userModel.FieldEmail])

					return userModel.User{}, nil
				}),
			f.users.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, _ *sqlx.Tx, user userModel.User) error {
					guest = user

					return nil
				}),
		)

		var inserted model.Booking
		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ *sqlx.Tx, booking model.Booking) error {
				inserted = booking

				return nil
			})
		f.notification.EXPECT().SendBookingConfirmation(gomock.Any(), gomock.Any()).Return(true)

		_, err := f.svc.CreateGuest(context.Background(), guestRequest())
		require.NoError(t, err)

		assert.Equal(t, "nimal@example.com", guest.Email)
		assert.Equal(t, constant.RoleGuest, guest.Role)
		assert.True(t, guest.Active)
		require.NotNil(t, guest.Phone)
		assert.Equal(t, "+94771234567", *guest.Phone)
		assert.NotEmpty(t, guest.Password)
		assert.Equal(t, guest.ID, inserted.UserID)
		assert.Equal(t, constant.ContextGuest, inserted.CreatedBy)
	})

	t.Run("reuses the guest account", func(t *testing.T) {
		f := newFixture(t)
		f.expectBookable()

		f.users.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(userModel.User{ID: "u7", Role: constant.RoleGuest, Active: true}, nil)
		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ *sqlx.Tx, booking model.Booking) error {
				assert.Equal(t, "u7", booking.UserID)

				return nil
			})
		f.notification.EXPECT().SendBookingConfirmation(gomock.Any(), gomock.Any()).Return(true)

		_, err := f.svc.CreateGuest(context.Background(), guestRequest())
		require.NoError(t, err)
	})

	t.Run("staff email must sign in", func(t *testing.T) {
		f := newFixture(t)
		f.expectBookable()

		f.users.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(userModel.User{ID: "s1", Role: constant.RoleStaff, Active: true}, nil)

		_, err := f.svc.CreateGuest(context.Background(), guestRequest())

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("blocked dates open no account", func(t *testing.T) {
		f := newFixture(t)
		f.expectQuote()
		f.expectRoomLock(availableRoom())
		f.availability.EXPECT().BlockedTx(gomock.Any(), gomock.Any(), roomID, gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := f.svc.CreateGuest(context.Background(), guestRequest())

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})
}

func TestGet(t *testing.T) {
	booking := model.Booking{ID: "b1", UserID: "u1", Status: model.StatusConfirmed}

	t.Run("owner", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

		res, err := f.svc.Get(asUser("u1", constant.RoleGuest), "b1")

		require.NoError(t, err)
		assert.Equal(t, "b1", res.ID)
	})

	t.Run("another guest", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

		_, err := f.svc.Get(asUser("u2", constant.RoleGuest), "b1")

		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("staff", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

		_, err := f.svc.GetByCode(asUser("s1", constant.RoleStaff), "BK65F1A2B3C4D5E")

		require.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		_, err := f.svc.Get(asUser("u1", constant.RoleGuest), "b1")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestGetMine(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, filter gDto.FilterGroup) (int, error) {
			_, args := filter.GetWhereClause()
			assert.Equal(t, "u1", args[model.FieldUserID])

			return 1, nil
		})
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{{ID: "b1", UserID: "u1"}}, nil)

	res, err := f.svc.GetMine(asUser("u1", constant.RoleGuest), gDto.QueryParams{Limit: 10})

	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Len(t, res.Bookings, 1)
}

func TestUpdate(t *testing.T) {
	t.Run("staff confirms a booking", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(model.Booking{ID: "b1", UserID: "u1", Status: model.StatusPending, Version: 1}, nil)
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, model.StatusConfirmed, fields[model.FieldStatus])
				assert.Equal(t, 2, fields[model.FieldVersion])
				assert.Equal(t, "s1", fields[constant.FieldModifiedBy])

				return nil
			})

		res, err := f.svc.Update(asUser("s1", constant.RoleStaff), dto.UpdateBookingRequest{Status: model.StatusConfirmed}, "b1")

		require.NoError(t, err)
		assert.Equal(t, model.StatusConfirmed, res.Status)
	})

	t.Run("guest may only cancel", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Update(asUser("u1", constant.RoleGuest), dto.UpdateBookingRequest{Status: model.StatusConfirmed}, "b1")

		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("cancelled booking is frozen", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(model.Booking{ID: "b1", UserID: "u1", Status: model.StatusEmergencyCancelled}, nil)

		_, err := f.svc.Update(asUser("u1", constant.RoleGuest), dto.UpdateBookingRequest{SpecialRequests: "late arrival"}, "b1")

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("empty request", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Update(asUser("u1", constant.RoleGuest), dto.UpdateBookingRequest{}, "b1")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name       string
		exists     bool
		hasPayment bool
		hasCase    bool
		wantCode   int
	}{
		{name: "not found", wantCode: http.StatusNotFound},
		{name: "paid booking is kept", exists: true, hasPayment: true, wantCode: http.StatusConflict},
		{name: "escalated booking is kept", exists: true, hasCase: true, wantCode: http.StatusConflict},
		{name: "deleted", exists: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(tt.exists, nil)

			if tt.exists {
				f.payment.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(tt.hasPayment, nil)
			}

			if tt.exists && !tt.hasPayment {
				f.cases.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(tt.hasCase, nil)
			}

			if tt.wantCode == 0 {
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			}

			err := f.svc.Delete(asUser("s1", constant.RoleAdmin), "b1")

			if tt.wantCode == 0 {
				require.NoError(t, err)

				return
			}

			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}
