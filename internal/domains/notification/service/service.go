package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hotel/config"
	"hotel/infras/mail"
	"hotel/infras/otel"
	"hotel/infras/sms"
	bookingModel "hotel/internal/domains/booking/model"
	"hotel/internal/domains/notification/model"
	"hotel/internal/domains/notification/model/dto"
	"hotel/internal/domains/notification/repository"
	"hotel/internal/domains/notification/templates"
	roomModel "hotel/internal/domains/room/model"
	roomRepository "hotel/internal/domains/room/repository"
	userModel "hotel/internal/domains/user/model"
	userRepository "hotel/internal/domains/user/repository"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	systemUser = "system"

	dateLongFormat  = "Jan 02, 2006"
	dateShortFormat = "Jan 02"
	clockInFormat   = "15:04"
	clockOutFormat  = "3:04 PM"
)

var titles = map[string]struct{ email, sms string }{
	templates.BookingConfirmation: {"Booking Confirmation - %s", "Booking Confirmed"},
	templates.PaymentConfirmation: {"Payment Confirmation - %s", "Payment Confirmed"},
	templates.HotelRules:          {"Hotel Rules & Regulations - %s", ""},
	templates.Emergency:           {"Emergency Case - %s", "Emergency Case"},
	templates.Refund:              {"Refund Processed - %s", "Refund Processed"},
}

// Notification delivers guest messages. Every Send method is best-effort:
// it reports whether all attempted channels were delivered and never returns an error.
type Notification interface {
	SendBookingConfirmation(ctx context.Context, booking bookingModel.Booking) bool
	SendPaymentConfirmation(ctx context.Context, booking bookingModel.Booking) bool
	SendHotelRules(ctx context.Context, booking bookingModel.Booking) bool
	SendEmergencyNotification(ctx context.Context, booking bookingModel.Booking, emergencyType, description string) bool
	SendRefundNotification(ctx context.Context, booking bookingModel.Booking, amount decimal.Decimal) bool
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetNotificationsResponse, error)
}

type serviceImpl struct {
	repo     repository.Notification
	userRepo userRepository.User
	roomRepo roomRepository.Room
	mail     mail.Mail
	sms      sms.SMS
	cfg      *config.Config
	otel     otel.Otel
}

func New(
	repo repository.Notification,
	userRepo userRepository.User,
	roomRepo roomRepository.Room,
	mail mail.Mail,
	sms sms.SMS,
	cfg *config.Config,
	otel otel.Otel,
) Notification {
	return &serviceImpl{
		repo:     repo,
		userRepo: userRepo,
		roomRepo: roomRepo,
		mail:     mail,
		sms:      sms,
		cfg:      cfg,
		otel:     otel,
	}
}

func (s *serviceImpl) SendBookingConfirmation(ctx context.Context, booking bookingModel.Booking) bool {
	return s.dispatch(ctx, templates.BookingConfirmation, booking, templates.Data{})
}

func (s *serviceImpl) SendPaymentConfirmation(ctx context.Context, booking bookingModel.Booking) bool {
	return s.dispatch(ctx, templates.PaymentConfirmation, booking, templates.Data{})
}

func (s *serviceImpl) SendHotelRules(ctx context.Context, booking bookingModel.Booking) bool {
	return s.dispatch(ctx, templates.HotelRules, booking, templates.Data{})
}

func (s *serviceImpl) SendEmergencyNotification(ctx context.Context, booking bookingModel.Booking, emergencyType, description string) bool {
	return s.dispatch(ctx, templates.Emergency, booking, templates.Data{EmergencyType: emergencyType, Description: description})
}

func (s *serviceImpl) SendRefundNotification(ctx context.Context, booking bookingModel.Booking, amount decimal.Decimal) bool {
	return s.dispatch(ctx, templates.Refund, booking, templates.Data{RefundAmount: amount.StringFixed(2)})
}

func (s *serviceImpl) dispatch(ctx context.Context, name string, booking bookingModel.Booking, data templates.Data) bool {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".notification."+name)
	defer scope.End()

	guest, err := s.userRepo.Get(ctx, shared.FilterByID(booking.UserID, userModel.FieldID, userModel.TableName))
	if err != nil || guest.ID == constant.Empty {
		log.Warn().Err(err).Str("booking_id", booking.ID).Str("notification", name).Msg("notification skipped, guest not found")

		return false
	}

	data = s.fill(ctx, data, booking, guest)
	attempted, delivered := 0, 0

	if s.mail.Enabled() {
		attempted++

		if s.deliverEmail(ctx, name, booking, guest, data) {
			delivered++
		}
	}

	if guest.HasPhone() && s.sms.Enabled() && templates.Has(name, templates.KindSMS) {
		attempted++

		if s.deliverSMS(ctx, name, booking, guest, data) {
			delivered++
		}
	}

	scope.SetAttributes(map[string]any{
		"notification.attempted": attempted,
		"notification.delivered": delivered,
	})

	return attempted > 0 && attempted == delivered
}

func (s *serviceImpl) fill(ctx context.Context, data templates.Data, booking bookingModel.Booking, guest userModel.User) templates.Data {
	hotel := s.cfg.Hotel

	data.HotelName = hotel.Name
	data.EmergencyPhone = hotel.EmergencyPhone
	data.Currency = hotel.Currency
	data.CheckInTime = clock(hotel.CheckInTime)
	data.CheckOutTime = clock(hotel.CheckOutTime)
	data.GuestName = guest.Name
	data.BookingCode = booking.Code
	data.CheckIn = booking.CheckIn.Format(dateLongFormat)
	data.CheckInShort = booking.CheckIn.Format(dateShortFormat)
	data.CheckOut = booking.CheckOut.Format(dateLongFormat)
	data.Nights = booking.Nights
	data.TotalAmount = booking.TotalAmount.StringFixed(2)
	data.PaymentMethod = booking.PaymentMethod

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(booking.RoomID, roomModel.FieldID, roomModel.TableName), roomModel.FieldName)
	if err != nil {
		log.Warn().Err(err).Str("room_id", booking.RoomID).Msg("failed to load room for notification")
	}

	data.RoomName = room.Name

	return data
}

func clock(value string) string {
	parsed, err := time.Parse(clockInFormat, value)
	if err != nil {
		return value
	}

	return parsed.Format(clockOutFormat)
}

func (s *serviceImpl) deliverEmail(ctx context.Context, name string, booking bookingModel.Booking, guest userModel.User, data templates.Data) bool {
	body, err := templates.Render(name, templates.KindEmail, data)
	if err != nil {
		log.Warn().Err(err).Msg("failed to render email notification")

		return false
	}

	title := fmt.Sprintf(titles[name].email, data.HotelName)

	return s.deliver(ctx, model.ChannelEmail, booking, guest.ID, title, body, map[string]string{model.ChannelEmail: guest.Email}, func() error {
		return s.mail.Send(ctx, mail.Message{To: guest.Email, ToName: guest.Name, Subject: title, Body: body}) //nolint:wrapcheck
	})
}

func (s *serviceImpl) deliverSMS(ctx context.Context, name string, booking bookingModel.Booking, guest userModel.User, data templates.Data) bool {
	body, err := templates.Render(name, templates.KindSMS, data)
	if err != nil {
		log.Warn().Err(err).Msg("failed to render sms notification")

		return false
	}

	phone := *guest.Phone

	return s.deliver(ctx, model.ChannelSMS, booking, guest.ID, titles[name].sms, body, map[string]string{"phone": phone}, func() error {
		return s.sms.Send(ctx, phone, body) //nolint:wrapcheck
	})
}

// deliver records a pending row, runs send and stamps the outcome on the row.
func (s *serviceImpl) deliver(
	ctx context.Context,
	channel string,
	booking bookingModel.Booking,
	userID, title, message string,
	target map[string]string,
	send func() error,
) bool {
	now := timezone.Now()
	bookingID := booking.ID

	notification := model.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		BookingID: &bookingID,
		Channel:   channel,
		Title:     title,
		Message:   message,
		Status:    model.StatusPending,
		Target:    encodeTarget(target),
		Metadata:  gModel.NewMetadata(systemUser, now),
	}

	if err := s.repo.Insert(ctx, notification); err != nil {
		log.Warn().Err(err).Str("channel", channel).Msg("failed to record notification")

		return false
	}

	filter := shared.FilterByID(notification.ID, model.FieldID, model.TableName)

	if err := send(); err != nil {
		log.Warn().Err(err).Str("channel", channel).Str("booking_id", booking.ID).Msg("notification delivery failed")

		s.mark(ctx, filter, map[string]any{model.FieldStatus: model.StatusFailed})

		return false
	}

	sentAt := timezone.Now()
	s.mark(ctx, filter, map[string]any{model.FieldStatus: model.StatusSent, model.FieldSentAt: sentAt})

	return true
}

func (s *serviceImpl) mark(ctx context.Context, filter gDto.FilterGroup, fields map[string]any) {
	fields[constant.FieldModifiedAt] = timezone.Now()
	fields[constant.FieldModifiedBy] = systemUser

	if err := s.repo.Update(ctx, fields, filter); err != nil {
		log.Warn().Err(err).Msg("failed to update notification status")
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetNotificationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".notification.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count notifications")

		return res, fmt.Errorf("failed to count notifications: %w", err)
	}

	notifications, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get notifications")

		return res, fmt.Errorf("failed to get notifications: %w", err)
	}

	res.FromModels(notifications, total, params.Limit)

	return res, nil
}

func encodeTarget(target map[string]string) types.JSONText {
	raw, err := json.Marshal(target)
	if err != nil {
		return types.JSONText("{}")
	}

	return types.JSONText(raw)
}
