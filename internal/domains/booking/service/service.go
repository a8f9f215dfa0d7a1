package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"hotel/infras/otel"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/pricing"
	"hotel/internal/domains/booking/repository"
	emergencyModel "hotel/internal/domains/emergency/model"
	emergencyRepository "hotel/internal/domains/emergency/repository"
	notificationService "hotel/internal/domains/notification/service"
	paymentModel "hotel/internal/domains/payment/model"
	paymentRepository "hotel/internal/domains/payment/repository"
	roomModel "hotel/internal/domains/room/model"
	roomRepository "hotel/internal/domains/room/repository"
	roomAvailabilityService "hotel/internal/domains/roomavailability/service"
	seasonalRateService "hotel/internal/domains/seasonalrate/service"
	userModel "hotel/internal/domains/user/model"
	userRepository "hotel/internal/domains/user/repository"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/password"
	"hotel/shared/timezone"
	"hotel/shared/transaction"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const guestPasswordPrefix = "Guest"

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	CreateGuest(ctx context.Context, req dto.CreateGuestBookingRequest) (dto.BookingResponse, error)
	Quote(ctx context.Context, req dto.QuoteRequest) (dto.QuoteResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	GetMine(ctx context.Context, params gDto.QueryParams) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetByCode(ctx context.Context, code string) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (dto.BookingResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo         repository.Booking
	roomRepo     roomRepository.Room
	paymentRepo  paymentRepository.Payment
	caseRepo     emergencyRepository.Case
	userRepo     userRepository.User
	rates        seasonalRateService.SeasonalRate
	availability roomAvailabilityService.RoomAvailability
	transactor   transaction.Transactor
	notification notificationService.Notification
	otel         otel.Otel
}

func New(
	repo repository.Booking,
	roomRepo roomRepository.Room,
	paymentRepo paymentRepository.Payment,
	caseRepo emergencyRepository.Case,
	userRepo userRepository.User,
	rates seasonalRateService.SeasonalRate,
	availability roomAvailabilityService.RoomAvailability,
	transactor transaction.Transactor,
	notification notificationService.Notification,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:         repo,
		roomRepo:     roomRepo,
		paymentRepo:  paymentRepo,
		caseRepo:     caseRepo,
		userRepo:     userRepo,
		rates:        rates,
		availability: availability,
		transactor:   transactor,
		notification: notification,
		otel:         otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := shared.CurrentUser(ctx)

	return s.create(ctx, req, user, nil)
}

// CreateGuest books without an account. The stay is checked exactly like Create, and the
// guest account is found or opened in the same transaction.
func (s *serviceImpl) CreateGuest(ctx context.Context, req dto.CreateGuestBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.CreateGuest")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.create(ctx, req.CreateBookingRequest, constant.ContextGuest, s.guestOwner(req))
}

// bookingOwner returns the user a booking belongs to. It runs inside the booking transaction.
type bookingOwner func(ctx context.Context, tx *sqlx.Tx, now time.Time) (string, error)

// create books req for actor. With a nil owner the booking belongs to actor.
func (s *serviceImpl) create(ctx context.Context, req dto.CreateBookingRequest, actor string, owner bookingOwner) (res dto.BookingResponse, err error) {
	now := timezone.Now()

	checkIn, checkOut, err := s.stay(req.CheckIn, req.CheckOut, now)
	if err != nil {
		return res, err
	}

	quote, err := s.quote(ctx, req.RoomID, checkIn, checkOut)
	if err != nil {
		return res, err
	}

	booking := req.ToModel(actor, checkIn, checkOut, quote.Total, now)
	if err = booking.Validate(); err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		room, err := s.roomRepo.GetForUpdateTx(ctx, tx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
		if err != nil {
			log.Error().Err(err).Str("room_id", req.RoomID).Msg("failed to lock room")

			return fmt.Errorf("failed to lock room: %w", err)
		}

		if room.ID == constant.Empty {
			return failure.NotFound("room not found") // nolint:wrapcheck
		}

		if !room.Bookable() {
			return failure.Conflict(fmt.Sprintf("room is %s", room.Status)) // nolint:wrapcheck
		}

		if booking.Adults+booking.Children > room.Capacity {
			return failure.BadRequestf("room capacity is %d guests", room.Capacity) // nolint:wrapcheck
		}

		blocked, err := s.availability.BlockedTx(ctx, tx, room.ID, checkIn, checkOut)
		if err != nil {
			return err //nolint:wrapcheck
		}

		if blocked {
			return failure.Conflict("room is blocked for the selected dates") // nolint:wrapcheck
		}

		overlapping, err := s.repo.GetTx(ctx, tx, s.overlapFilter(room.ID, checkIn, checkOut), model.FieldID)
		if err != nil {
			log.Error().Err(err).Str("room_id", room.ID).Msg("failed to check room availability")

			return fmt.Errorf("failed to check room availability: %w", err)
		}

		if overlapping.ID != constant.Empty {
			return failure.Conflict("room is not available for the selected dates") // nolint:wrapcheck
		}

		if owner != nil {
			if booking.UserID, err = owner(ctx, tx, now); err != nil {
				return err
			}
		}

		if err = s.repo.InsertTx(ctx, tx, booking); err != nil {
			if shared.IsUniqueViolation(err) {
				return failure.Conflict("booking code already exists, please retry") // nolint:wrapcheck
			}

			log.Error().Err(err).Msg("failed to create booking")

			return fmt.Errorf("failed to create booking: %w", err)
		}

		return nil
	})
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	s.notification.SendBookingConfirmation(ctx, booking)

	res.FromModel(booking)

	return res, nil
}

// guestOwner attaches the booking to the guest account registered under the request's email.
// Staff and admin emails are refused so a guest booking never lands on their accounts.
func (s *serviceImpl) guestOwner(req dto.CreateGuestBookingRequest) bookingOwner {
	return func(ctx context.Context, tx *sqlx.Tx, now time.Time) (string, error) {
		email := userModel.NormalizeEmail(req.GuestEmail)

		user, err := s.userRepo.GetTx(ctx, tx, shared.FilterByID(email, userModel.FieldEmail, userModel.TableName),
			userModel.FieldID, userModel.FieldRole, userModel.FieldActive)
		if err != nil {
			log.Error().Err(err).Msg("failed to get guest account")

			return constant.Empty, fmt.Errorf("failed to get guest account: %w", err)
		}

		if user.ID != constant.Empty {
			if user.Role != constant.RoleGuest || !user.Active {
				return constant.Empty, failure.Conflict("email belongs to an account that must sign in to book") // nolint:wrapcheck
			}

			return user.ID, nil
		}

		// nobody knows this password, so the account cannot sign in until one is set for it
		hashed, err := password.Hash(guestPasswordPrefix + uuid.NewString())
		if err != nil {
			log.Error().Err(err).Msg("failed to hash guest password")

			return constant.Empty, fmt.Errorf("failed to hash guest password: %w", err)
		}

		guest := req.ToUserModel(hashed, now)

		if err = s.userRepo.InsertTx(ctx, tx, guest); err != nil {
			if shared.IsUniqueViolation(err) {
				return constant.Empty, failure.Conflict("guest account was created concurrently, please retry") // nolint:wrapcheck
			}

			log.Error().Err(err).Msg("failed to create guest account")

			return constant.Empty, fmt.Errorf("failed to create guest account: %w", err)
		}

		return guest.ID, nil
	}
}

// stay parses and checks the requested dates. Check-in may not be in the past.
func (s *serviceImpl) stay(rawCheckIn, rawCheckOut string, now time.Time) (checkIn, checkOut time.Time, err error) {
	checkIn, checkOut, err = dto.ParseStay(rawCheckIn, rawCheckOut)
	if err != nil {
		return checkIn, checkOut, failure.BadRequest(err) // nolint:wrapcheck
	}

	if checkIn.Before(timezone.StartOfDay(now)) {
		return checkIn, checkOut, failure.BadRequestFromString("check-in date must not be in the past") // nolint:wrapcheck
	}

	if !checkOut.After(checkIn) {
		return checkIn, checkOut, failure.BadRequest(model.ErrInvalidStay) // nolint:wrapcheck
	}

	return checkIn, checkOut, nil
}

func (s *serviceImpl) quote(ctx context.Context, roomID string, checkIn, checkOut time.Time) (pricing.Quote, error) {
	room, err := s.roomRepo.Get(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName),
		roomModel.FieldID, roomModel.FieldBasePrice)
	if err != nil {
		log.Error().Err(err).Str("room_id", roomID).Msg("failed to get room")

		return pricing.Quote{}, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return pricing.Quote{}, failure.NotFound("room not found") // nolint:wrapcheck
	}

	rates, err := s.rates.ForStay(ctx, roomID, checkIn, checkOut)
	if err != nil {
		return pricing.Quote{}, err //nolint:wrapcheck
	}

	return pricing.Calculate(room.BasePrice, rates, checkIn, checkOut), nil
}

func (s *serviceImpl) overlapFilter(roomID string, checkIn, checkOut time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRoomID,
				Operator: gDto.FilterOperatorEq,
				Value:    roomID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorIn,
				Value:    model.ActiveStatuses,
				Table:    model.TableName,
			},
			// Stays are half-open: a check-out on the requested check-in day does not clash.
			gDto.Filter{
				Field:    model.FieldCheckIn,
				Operator: gDto.FilterOperatorLess,
				Value:    checkOut.Format(constant.DateOnlyFormat),
				Table:    model.TableName,
				ArgName:  "stay_check_out",
			},
			gDto.Filter{
				Field:    model.FieldCheckOut,
				Operator: gDto.FilterOperatorGreater,
				Value:    checkIn.Format(constant.DateOnlyFormat),
				Table:    model.TableName,
				ArgName:  "stay_check_in",
			},
		},
	}
}

func (s *serviceImpl) Quote(ctx context.Context, req dto.QuoteRequest) (res dto.QuoteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Quote")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	checkIn, checkOut, err := s.stay(req.CheckIn, req.CheckOut, timezone.Now())
	if err != nil {
		return res, err
	}

	quote, err := s.quote(ctx, req.RoomID, checkIn, checkOut)
	if err != nil {
		return res, err
	}

	res = dto.QuoteResponse{
		RoomID:   req.RoomID,
		CheckIn:  req.CheckIn,
		CheckOut: req.CheckOut,
		Nights:   quote.Nights,
		Total:    quote.Total,
	}

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) GetMine(ctx context.Context, params gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	user, _ := shared.CurrentUser(ctx)

	filter := shared.FilterByID(user, model.FieldUserID, model.TableName)
	filter.Operator = gDto.FilterGroupOperatorAnd

	return s.GetAll(ctx, params, filter)
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.find(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) GetByCode(ctx context.Context, code string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetByCode")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.find(ctx, shared.FilterByID(code, model.FieldCode, model.TableName))
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

// find loads a booking the caller may see. Guests only see their own.
func (s *serviceImpl) find(ctx context.Context, filter gDto.FilterGroup) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, filter)
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

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdateBookingRequest{}) {
		return res, failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, role := shared.CurrentUser(ctx)
	if req.Status != constant.Empty && req.Status != model.StatusCancelled && !shared.IsStaff(role) {
		return res, failure.ResourceRestrictedError
	}

	now := timezone.Now()
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	var booking model.Booking

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		booking, err = s.repo.GetForUpdateTx(ctx, tx, filter)
		if err != nil {
			log.Error().Err(err).Str("booking_id", id).Msg("failed to lock booking")

			return fmt.Errorf("failed to lock booking: %w", err)
		}

		if booking.ID == constant.Empty {
			return failure.NotFound("booking not found") // nolint:wrapcheck
		}

		if !shared.IsStaff(role) && booking.UserID != user {
			return failure.ResourceRestrictedError
		}

		if booking.Cancelled() {
			return failure.Conflict(fmt.Sprintf("booking is %s", booking.Status)) // nolint:wrapcheck
		}

		fields := booking.Mutation(shared.ChangedFields(req, user), user, now)
		if err = s.repo.UpdateTx(ctx, tx, fields, filter); err != nil {
			log.Error().Err(err).Str("booking_id", id).Msg("failed to update booking")

			return fmt.Errorf("failed to update booking: %w", err)
		}

		return nil
	})
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	booking.Version++
	booking.ModifiedAt = now
	booking.ModifiedBy = user

	if req.Status != constant.Empty {
		booking.Status = req.Status
	}

	if req.SpecialRequests != constant.Empty {
		booking.SpecialRequests = req.SpecialRequests
	}

	if req.EmergencyContact != constant.Empty {
		booking.EmergencyContact = req.EmergencyContact
	}

	if req.EmergencyPhone != constant.Empty {
		booking.EmergencyPhone = req.EmergencyPhone
	}

	res.FromModel(booking)

	return res, nil
}

// Delete removes a booking nothing else refers to. Paid or escalated bookings are kept for the ledger.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if booking exists")

		return fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !exist {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	hasPayment, err := s.paymentRepo.Exist(ctx, shared.FilterByID(id, paymentModel.FieldBookingID, paymentModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check booking payments")

		return fmt.Errorf("failed to check booking payments: %w", err)
	}

	if hasPayment {
		return failure.Conflict("booking has a payment") // nolint:wrapcheck
	}

	hasCase, err := s.caseRepo.Exist(ctx, shared.FilterByID(id, emergencyModel.FieldBookingID, emergencyModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check booking emergency cases")

		return fmt.Errorf("failed to check booking emergency cases: %w", err)
	}

	if hasCase {
		return failure.Conflict("booking has an emergency case") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	return nil
}
