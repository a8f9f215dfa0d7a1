package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	"hotel/infras/payhere"
	bookingModel "hotel/internal/domains/booking/model"
	bookingRepository "hotel/internal/domains/booking/repository"
	notificationService "hotel/internal/domains/notification/service"
	"hotel/internal/domains/payment/model"
	"hotel/internal/domains/payment/model/dto"
	"hotel/internal/domains/payment/repository"
	refundService "hotel/internal/domains/refund/service"
	roomModel "hotel/internal/domains/room/model"
	roomRepository "hotel/internal/domains/room/repository"
	userModel "hotel/internal/domains/user/model"
	userRepository "hotel/internal/domains/user/repository"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"
	"hotel/shared/transaction"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	systemUser = "payhere"
	country    = "Sri Lanka"
)

type Payment interface {
	Initiate(ctx context.Context, req dto.InitiatePaymentRequest) (dto.CheckoutResponse, error)
	// HandleNotification applies a gateway callback. It reports false when the callback
	// is not authentic, not a success, or does not match the stored payment.
	HandleNotification(ctx context.Context, callback payhere.Callback) (bool, error)
	Return(ctx context.Context, orderID string) (dto.PaymentResponse, error)
	Get(ctx context.Context, id string) (dto.PaymentResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPaymentsResponse, error)
	Refund(ctx context.Context, id string, req dto.RefundPaymentRequest) (dto.PaymentResponse, error)
}

type serviceImpl struct {
	repo         repository.Payment
	bookingRepo  bookingRepository.Booking
	userRepo     userRepository.User
	roomRepo     roomRepository.Room
	transactor   transaction.Transactor
	gateway      payhere.Gateway
	settlement   refundService.Settlement
	notification notificationService.Notification
	kafka        kafka.Client
	cfg          *config.Config
	otel         otel.Otel
}

func New(
	repo repository.Payment,
	bookingRepo bookingRepository.Booking,
	userRepo userRepository.User,
	roomRepo roomRepository.Room,
	transactor transaction.Transactor,
	gateway payhere.Gateway,
	settlement refundService.Settlement,
	notification notificationService.Notification,
	kafka kafka.Client,
	cfg *config.Config,
	otel otel.Otel,
) Payment {
	return &serviceImpl{
		repo:         repo,
		bookingRepo:  bookingRepo,
		userRepo:     userRepo,
		roomRepo:     roomRepo,
		transactor:   transactor,
		gateway:      gateway,
		settlement:   settlement,
		notification: notification,
		kafka:        kafka,
		cfg:          cfg,
		otel:         otel,
	}
}

func (s *serviceImpl) Initiate(ctx context.Context, req dto.InitiatePaymentRequest) (res dto.CheckoutResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payment.Initiate")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.booking(ctx, req.BookingID)
	if err != nil {
		return res, err
	}

	if booking.Cancelled() {
		return res, failure.Conflict("booking is cancelled") // nolint:wrapcheck
	}

	exist, err := s.repo.Exist(ctx, shared.FilterByID(booking.ID, model.FieldBookingID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check existing payment")

		return res, fmt.Errorf("failed to check existing payment: %w", err)
	}

	if exist {
		return res, failure.Conflict("payment already exists for this booking") // nolint:wrapcheck
	}

	guest, err := s.userRepo.Get(ctx, shared.FilterByID(booking.UserID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get guest")

		return res, fmt.Errorf("failed to get guest: %w", err)
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(booking.RoomID, roomModel.FieldID, roomModel.TableName), roomModel.FieldName)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	user, _ := shared.CurrentUser(ctx)
	payment := model.Payment{
		ID:        uuid.NewString(),
		PaymentID: model.ExternalIDPrefix + uuid.NewString(),
		BookingID: booking.ID,
		Amount:    booking.TotalAmount,
		Currency:  s.cfg.Hotel.Currency,
		Method:    req.PaymentMethod,
		Status:    model.StatusPending,
		Details:   model.EncodeDetails(map[string]string{}),
		Metadata:  gModel.NewMetadata(user, timezone.Now()),
	}

	if err = s.repo.Insert(ctx, payment); err != nil {
		if shared.IsUniqueViolation(err) {
			return res, failure.Conflict("payment already exists for this booking") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to insert payment")

		return res, fmt.Errorf("failed to insert payment: %w", err)
	}

	firstName, lastName := splitName(guest.Name)
	phone := constant.Empty

	if guest.HasPhone() {
		phone = *guest.Phone
	}

	res.FormData = s.gateway.CheckoutForm(ctx, payhere.Order{
		OrderID:   payment.PaymentID,
		Items:     fmt.Sprintf("Room %s - %d nights", room.Name, booking.Nights),
		Amount:    payment.Amount,
		Currency:  payment.Currency,
		FirstName: firstName,
		LastName:  lastName,
		Email:     guest.Email,
		Phone:     phone,
		Country:   country,
		Custom1:   booking.ID,
		Custom2:   req.PaymentMethod,
	})
	res.PayHereURL = s.gateway.CheckoutURL()
	res.Payment.FromModel(payment)

	return res, nil
}

func (s *serviceImpl) HandleNotification(ctx context.Context, callback payhere.Callback) (ok bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payment.HandleNotification")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	verification := s.gateway.Verify(ctx, callback)
	now := timezone.Now()

	var (
		booking bookingModel.Booking
		outcome string
	)

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		var payment model.Payment

		booking, payment, err = s.lockForCallback(ctx, tx, callback.OrderID)
		if err != nil || payment.ID == constant.Empty {
			return err
		}

		success := verification.Success && matches(payment, callback)

		switch {
		case success && payment.Status == model.StatusCompleted:
			outcome = model.StatusCompleted
		case success && payment.Transition(model.StatusCompleted):
			booking, err = s.complete(ctx, tx, payment, booking, callback, now)
			if err != nil {
				return err
			}

			outcome = model.StatusCompleted
			ok = true
		case success:
			log.Warn().Str("order_id", callback.OrderID).Str("status", payment.Status).Msg("success callback ignored for settled payment")
		case payment.Terminal():
			log.Warn().Str("order_id", callback.OrderID).Str("status", payment.Status).Msg("failure callback ignored for terminal payment")
		default:
			if err = s.fail(ctx, tx, payment, callback, now); err != nil {
				return err
			}

			outcome = model.StatusFailed
		}

		return nil
	})
	if err != nil {
		return false, err //nolint:wrapcheck
	}

	scope.SetAttributes(map[string]any{
		"payment.order_id":  callback.OrderID,
		"payment.authentic": verification.Authentic,
		"payment.outcome":   outcome,
	})

	switch {
	case ok:
		s.notification.SendPaymentConfirmation(ctx, booking)
		s.notification.SendHotelRules(ctx, booking)
		s.publish(ctx, kafka.EventPaymentCompleted, booking.ID, callback.Amount, now)
	case outcome == model.StatusFailed:
		s.publish(ctx, kafka.EventPaymentFailed, booking.ID, callback.Amount, now)
	}

	return ok || outcome == model.StatusCompleted, nil
}

// matches checks the callback against the amount and currency we asked for.
func matches(payment model.Payment, callback payhere.Callback) bool {
	return callback.Amount == payhere.FormatAmount(payment.Amount) && callback.Currency == payment.Currency
}

// lockForCallback locks the booking and then the payment of orderID. Settlement locks in the
// same order, so a callback racing a cancellation waits instead of deadlocking.
// An unknown order comes back as an empty payment.
func (s *serviceImpl) lockForCallback(ctx context.Context, tx *sqlx.Tx, orderID string) (bookingModel.Booking, model.Payment, error) {
	var booking bookingModel.Booking

	paymentFilter := shared.FilterByID(orderID, model.FieldPaymentID, model.TableName)

	current, err := s.repo.GetTx(ctx, tx, paymentFilter, model.FieldBookingID)
	if err != nil {
		log.Error().Err(err).Str("order_id", orderID).Msg("failed to get payment")

		return booking, model.Payment{}, fmt.Errorf("failed to get payment: %w", err)
	}

	if current.BookingID == constant.Empty {
		log.Warn().Str("order_id", orderID).Msg("payment callback for unknown order")

		return booking, model.Payment{}, nil
	}

	booking, err = s.bookingRepo.GetForUpdateTx(ctx, tx, shared.FilterByID(current.BookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking_id", current.BookingID).Msg("failed to lock booking")

		return booking, model.Payment{}, fmt.Errorf("failed to lock booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, model.Payment{}, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	payment, err := s.repo.GetForUpdateTx(ctx, tx, paymentFilter)
	if err != nil {
		log.Error().Err(err).Str("order_id", orderID).Msg("failed to lock payment")

		return booking, payment, fmt.Errorf("failed to lock payment: %w", err)
	}

	return booking, payment, nil
}

func (s *serviceImpl) complete(
	ctx context.Context,
	tx *sqlx.Tx,
	payment model.Payment,
	booking bookingModel.Booking,
	callback payhere.Callback,
	now time.Time,
) (bookingModel.Booking, error) {
	bookingFilter := shared.FilterByID(booking.ID, bookingModel.FieldID, bookingModel.TableName)

	err := s.repo.UpdateTx(ctx, tx, map[string]any{
		model.FieldStatus:        model.StatusCompleted,
		model.FieldPaidAt:        now,
		model.FieldDetails:       model.EncodeDetails(callback.Payload()),
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: systemUser,
	}, shared.FilterByID(payment.ID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("payment_id", payment.ID).Msg("failed to complete payment")

		return booking, fmt.Errorf("failed to complete payment: %w", err)
	}

	fields := map[string]any{bookingModel.FieldPaymentStatus: bookingModel.PaymentStatusCompleted}
	booking.PaymentStatus = bookingModel.PaymentStatusCompleted

	// a booking cancelled while the guest was paying stays cancelled
	if !booking.Cancelled() {
		fields[bookingModel.FieldStatus] = bookingModel.StatusConfirmed
		booking.Status = bookingModel.StatusConfirmed
	}

	if err = s.bookingRepo.UpdateTx(ctx, tx, booking.Mutation(fields, systemUser, now), bookingFilter); err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to confirm booking")

		return booking, fmt.Errorf("failed to confirm booking: %w", err)
	}

	booking.Version++

	return booking, nil
}

func (s *serviceImpl) fail(ctx context.Context, tx *sqlx.Tx, payment model.Payment, callback payhere.Callback, now time.Time) error {
	err := s.repo.UpdateTx(ctx, tx, map[string]any{
		model.FieldStatus:        model.StatusFailed,
		model.FieldDetails:       model.EncodeDetails(callback.Payload()),
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: systemUser,
	}, shared.FilterByID(payment.ID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("payment_id", payment.ID).Msg("failed to mark payment failed")

		return fmt.Errorf("failed to mark payment failed: %w", err)
	}

	return nil
}

// Return serves the browser redirect. The redirect is not signed, so it only reports what
// the notify callback already stored.
func (s *serviceImpl) Return(ctx context.Context, orderID string) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payment.Return")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	payment, err := s.repo.Get(ctx, shared.FilterByID(orderID, model.FieldPaymentID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get payment")

		return res, fmt.Errorf("failed to get payment: %w", err)
	}

	if payment.ID == constant.Empty {
		return res, failure.NotFound("payment not found") // nolint:wrapcheck
	}

	res.FromModel(payment)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payment.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	payment, err := s.payment(ctx, id)
	if err != nil {
		return res, err
	}

	if _, err = s.booking(ctx, payment.BookingID); err != nil {
		return res, err
	}

	res.FromModel(payment)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPaymentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payment.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count payments")

		return res, fmt.Errorf("failed to count payments: %w", err)
	}

	payments, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get payments")

		return res, fmt.Errorf("failed to get payments: %w", err)
	}

	res.FromModels(payments, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) Refund(ctx context.Context, id string, req dto.RefundPaymentRequest) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payment.Refund")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	payment, err := s.payment(ctx, id)
	if err != nil {
		return res, err
	}

	if payment.Status != model.StatusCompleted && payment.Status != model.StatusRefunded {
		return res, failure.BadRequestFromString("payment cannot be refunded") // nolint:wrapcheck
	}

	amount := req.RefundAmount
	if amount.IsZero() {
		amount = payment.Amount
	}

	user, _ := shared.CurrentUser(ctx)
	now := timezone.Now()

	result, err := s.settlement.Settle(ctx, refundService.Request{
		BookingID: payment.BookingID,
		Amount:    amount.Round(2),
		User:      user,
		Now:       now,
	})
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if !result.AlreadySettled {
		log.Info().Str("payment_id", payment.ID).Str("reason", req.Reason).Str("amount", result.Amount.StringFixed(2)).Msg("payment refunded")
		s.publish(ctx, kafka.EventPaymentRefunded, payment.BookingID, result.Amount.StringFixed(2), now)
	}

	payment, err = s.payment(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(payment)

	return res, nil
}

func (s *serviceImpl) payment(ctx context.Context, id string) (model.Payment, error) {
	payment, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get payment")

		return payment, fmt.Errorf("failed to get payment: %w", err)
	}

	if payment.ID == constant.Empty {
		return payment, failure.NotFound("payment not found") // nolint:wrapcheck
	}

	return payment, nil
}

// booking loads a booking the current user may act on. Guests only reach their own.
func (s *serviceImpl) booking(ctx context.Context, id string) (bookingModel.Booking, error) {
	booking, err := s.bookingRepo.Get(ctx, shared.FilterByID(id, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if userID, role := shared.CurrentUser(ctx); !shared.IsStaff(role) && booking.UserID != userID {
		return booking, failure.ResourceRestrictedError
	}

	return booking, nil
}

func (s *serviceImpl) publish(ctx context.Context, name, bookingID, amount string, at time.Time) {
	kafka.Publish(ctx, s.kafka, s.cfg.External.Kafka.Topics.Payment, kafka.Event{
		Name:      name,
		BookingID: bookingID,
		Amount:    amount,
		At:        at,
	})
}

func splitName(name string) (first, last string) {
	first, last, _ = strings.Cut(strings.TrimSpace(name), " ")

	return first, strings.TrimSpace(last)
}
