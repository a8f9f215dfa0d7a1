package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotel/config"
	"hotel/infras/mail"
	mailMocks "hotel/infras/mail/mocks"
	"hotel/infras/otel/mocks"
	smsMocks "hotel/infras/sms/mocks"
	bookingModel "hotel/internal/domains/booking/model"
	notificationMocks "hotel/internal/domains/notification/mocks"
	"hotel/internal/domains/notification/model"
	"hotel/internal/domains/notification/service"
	roomMocks "hotel/internal/domains/room/mocks"
	roomModel "hotel/internal/domains/room/model"
	userMocks "hotel/internal/domains/user/mocks"
	userModel "hotel/internal/domains/user/model"
	gDto "hotel/shared/dto"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo *notificationMocks.MockNotification
	user *userMocks.MockUser
	room *roomMocks.MockRoom
	mail *mailMocks.MockMail
	sms  *smsMocks.MockSMS
	svc  service.Notification
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Hotel.Name = "Dumidu Hotel"
	cfg.Hotel.Currency = "LKR"
	cfg.Hotel.EmergencyPhone = "+94 11 234 5678"
	cfg.Hotel.CheckInTime = "14:00"
	cfg.Hotel.CheckOutTime = "11:00"

	f := fixture{
		repo: notificationMocks.NewMockNotification(ctrl),
		user: userMocks.NewMockUser(ctrl),
		room: roomMocks.NewMockRoom(ctrl),
		mail: mailMocks.NewMockMail(ctrl),
		sms:  smsMocks.NewMockSMS(ctrl),
	}
	f.svc = service.New(f.repo, f.user, f.room, f.mail, f.sms, cfg, mocks.NewOtel())

	return f
}

var booking = bookingModel.Booking{
	ID:          "b1",
	Code:        "BK65F1A2B3C4D5E",
	UserID:      "u1",
	RoomID:      "r1",
	CheckIn:     time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	CheckOut:    time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
	Nights:      4,
	TotalAmount: decimal.RequireFromString("1000"),
}

func guest(phone string) userModel.User {
	u := userModel.User{ID: "u1", Name: "Nimal", Email: "nimal@example.com"}
	if phone != "" {
		u.Phone = &phone
	}

	return u
}

func expectGuest(f fixture, u userModel.User) {
	f.user.EXPECT().Get(gomock.Any(), gomock.Any()).Return(u, nil)
	f.room.EXPECT().Get(gomock.Any(), gomock.Any(), roomModel.FieldName).Return(roomModel.Room{Name: "Deluxe"}, nil)
}

func TestNotificationService_SendEmergencyNotification(t *testing.T) {
	t.Run("email and sms are recorded and marked sent", func(t *testing.T) {
		f := newFixture(t)
		expectGuest(f, guest("+94771234567"))

		f.mail.EXPECT().Enabled().Return(true)
		f.sms.EXPECT().Enabled().Return(true)

		var channels []string
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, n model.Notification) error {
			assert.Equal(t, model.StatusPending, n.Status)
			assert.Equal(t, "u1", n.UserID)
			channels = append(channels, n.Channel)

			return nil
		}).Times(2)

		f.mail.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, m mail.Message) error {
			assert.Equal(t, "Emergency Case - Dumidu Hotel", m.Subject)
			assert.Contains(t, m.Body, "- Type: cancellation")
			assert.Contains(t, m.Body, "- Description: flight cancelled")

			return nil
		})
		f.sms.EXPECT().
			Send(gomock.Any(), "+94771234567", "Emergency case registered for booking BK65F1A2B3C4D5E. Type: cancellation. We'll contact you soon.").
			Return(nil)

		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, model.StatusSent, fields[model.FieldStatus])
				assert.NotNil(t, fields[model.FieldSentAt])

				return nil
			}).Times(2)

		ok := f.svc.SendEmergencyNotification(context.Background(), booking, "cancellation", "flight cancelled")

		assert.True(t, ok)
		assert.Equal(t, []string{model.ChannelEmail, model.ChannelSMS}, channels)
	})

	t.Run("no phone means email only", func(t *testing.T) {
		f := newFixture(t)
		expectGuest(f, guest(""))

		f.mail.EXPECT().Enabled().Return(true)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
		f.mail.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		assert.True(t, f.svc.SendEmergencyNotification(context.Background(), booking, "illness", "fever"))
	})
}

func TestNotificationService_DeliveryFailureIsSwallowed(t *testing.T) {
	f := newFixture(t)
	expectGuest(f, guest(""))

	f.mail.EXPECT().Enabled().Return(true)
	f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
	f.mail.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("smtp: connection refused"))
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, model.StatusFailed, fields[model.FieldStatus])
			assert.NotContains(t, fields, model.FieldSentAt)

			return nil
		})

	assert.False(t, f.svc.SendPaymentConfirmation(context.Background(), booking))
}

func TestNotificationService_HotelRulesHasNoSMS(t *testing.T) {
	f := newFixture(t)
	expectGuest(f, guest("+94771234567"))

	f.mail.EXPECT().Enabled().Return(true)
	f.sms.EXPECT().Enabled().Return(true)
	f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
	f.mail.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, m mail.Message) error {
		assert.Equal(t, "Hotel Rules & Regulations - Dumidu Hotel", m.Subject)
		assert.Contains(t, m.Body, "Check-in time: 2:00 PM")
		assert.Contains(t, m.Body, "Check-out time: 11:00 AM")

		return nil
	})
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	assert.True(t, f.svc.SendHotelRules(context.Background(), booking))
}

func TestNotificationService_DisabledChannels(t *testing.T) {
	f := newFixture(t)
	expectGuest(f, guest("+94771234567"))

	f.mail.EXPECT().Enabled().Return(false)
	f.sms.EXPECT().Enabled().Return(false)

	assert.False(t, f.svc.SendRefundNotification(context.Background(), booking, decimal.RequireFromString("850")))
}

func TestNotificationService_UnknownGuest(t *testing.T) {
	f := newFixture(t)
	f.user.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)

	assert.False(t, f.svc.SendBookingConfirmation(context.Background(), booking))
}

func TestNotificationService_RecordFailure(t *testing.T) {
	f := newFixture(t)
	expectGuest(f, guest(""))

	f.mail.EXPECT().Enabled().Return(true)
	f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

	assert.False(t, f.svc.SendBookingConfirmation(context.Background(), booking))
}
