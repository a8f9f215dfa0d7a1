package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	bookingModel "hotel/internal/domains/booking/model"
	bookingRepository "hotel/internal/domains/booking/repository"
	"hotel/internal/domains/emergency/model"
	"hotel/internal/domains/emergency/model/dto"
	"hotel/internal/domains/emergency/policy"
	"hotel/internal/domains/emergency/repository"
	notificationService "hotel/internal/domains/notification/service"
	refundService "hotel/internal/domains/refund/service"
	userModel "hotel/internal/domains/user/model"
	userRepository "hotel/internal/domains/user/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"
	"hotel/shared/transaction"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	cacheStatistics = "emergency:statistics"
	guestUser       = "guest"
)

type Emergency interface {
	OpenCase(ctx context.Context, req dto.OpenCaseRequest) (dto.CaseResponse, error)
	ProcessCancellation(ctx context.Context, req dto.CancellationRequest) (dto.CaseResponse, error)
	ProcessIllness(ctx context.Context, req dto.IllnessRequest) (dto.CaseResponse, error)
	SubmitGuestEmergency(ctx context.Context, req dto.GuestEmergencyRequest) (dto.CaseResponse, error)
	Resolve(ctx context.Context, id string, req dto.ResolveCaseRequest) (dto.CaseResponse, error)
	Close(ctx context.Context, id string) (dto.CaseResponse, error)
	SettleRefund(ctx context.Context, id string, req dto.SettleRefundRequest) (dto.CaseResponse, error)
	CompleteRefund(ctx context.Context, id string) (dto.CaseResponse, error)
	Get(ctx context.Context, id string) (dto.CaseResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetCasesResponse, error)
	Statistics(ctx context.Context) (dto.StatisticsResponse, error)
}

// opening describes one case to open. The booking is selected by id, or by code for guest submissions.
type opening struct {
	bookingID   string
	bookingCode string
	guestEmail  string
	caseType    string
	description string
	details     model.Details
	settle      bool
	user        string
	now         time.Time
}

type outcome struct {
	emergencyCase model.Case
	booking       bookingModel.Booking
	refund        refundService.Result
	settled       bool
}

type serviceImpl struct {
	repo         repository.Case
	bookingRepo  bookingRepository.Booking
	userRepo     userRepository.User
	transactor   transaction.Transactor
	settlement   refundService.Settlement
	notification notificationService.Notification
	kafka        kafka.Client
	cache        cache.RedisCache
	cfg          *config.Config
	otel         otel.Otel
}

func New(
	repo repository.Case,
	bookingRepo bookingRepository.Booking,
	userRepo userRepository.User,
	transactor transaction.Transactor,
	settlement refundService.Settlement,
	notification notificationService.Notification,
	kafka kafka.Client,
	cache cache.RedisCache,
	cfg *config.Config,
	otel otel.Otel,
) Emergency {
	return &serviceImpl{
		repo:         repo,
		bookingRepo:  bookingRepo,
		userRepo:     userRepo,
		transactor:   transactor,
		settlement:   settlement,
		notification: notification,
		kafka:        kafka,
		cache:        cache,
		cfg:          cfg,
		otel:         otel,
	}
}

func (s *serviceImpl) OpenCase(ctx context.Context, req dto.OpenCaseRequest) (res dto.CaseResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".emergency.OpenCase")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := shared.CurrentUser(ctx)

	return s.open(ctx, opening{
		bookingID:   req.BookingID,
		caseType:    req.Type,
		description: req.Description,
		details:     model.Details{AdditionalNotes: req.AdditionalNotes},
		user:        user,
		now:         timezone.Now(),
	})
}

func (s *serviceImpl) ProcessCancellation(ctx context.Context, req dto.CancellationRequest) (res dto.CaseResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".emergency.ProcessCancellation")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := shared.CurrentUser(ctx)
	now := timezone.Now()

	return s.open(ctx, opening{
		bookingID:   req.BookingID,
		caseType:    model.TypeCancellation,
		description: req.Reason,
		details: model.Details{Cancellation: &model.CancellationDetails{
			Reason:       req.Reason,
			ViaPhoneCall: req.ViaPhoneCall,
			CancelledAt:  now,
		}},
		settle: true,
		user:   user,
		now:    now,
	})
}

func (s *serviceImpl) ProcessIllness(ctx context.Context, req dto.IllnessRequest) (res dto.CaseResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".emergency.ProcessIllness")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := shared.CurrentUser(ctx)
	now := timezone.Now()

	caseType := model.TypeIllness
	if req.RequiresEarlyCheckout {
		caseType = model.TypeEarlyCheckout
	}

	return s.open(ctx, opening{
		bookingID:   req.BookingID,
		caseType:    caseType,
		description: req.Description,
		details: model.Details{Illness: &model.IllnessDetails{
			RequiresEarlyCheckout: req.RequiresEarlyCheckout,
			ReportedAt:            now,
		}},
		settle: req.RequiresEarlyCheckout,
		user:   user,
		now:    now,
	})
}

// SubmitGuestEmergency is the public form: the booking code and the guest's email stand in for a login.
func (s *serviceImpl) SubmitGuestEmergency(ctx context.Context, req dto.GuestEmergencyRequest) (res dto.CaseResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".emergency.SubmitGuestEmergency")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	now := timezone.Now()

	return s.open(ctx, opening{
		bookingCode: strings.ToUpper(strings.TrimSpace(req.BookingCode)),
		guestEmail:  req.Email,
		caseType:    req.Type,
		description: req.Description,
		details: model.Details{GuestSubmission: &model.GuestSubmission{
			Name:        req.Name,
			Phone:       req.Phone,
			Email:       req.Email,
			SubmittedAt: now,
		}},
		user: guestUser,
		now:  now,
	})
}

// open runs the whole case opening in one transaction. Notifications and events go out after commit.
func (s *serviceImpl) open(ctx context.Context, req opening) (res dto.CaseResponse, err error) {
	var out outcome

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		out, err = s.openTx(ctx, tx, req)

		return err
	})
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	s.afterOpen(ctx, req, out)
	res.FromModel(out.emergencyCase)

	return res, nil
}

func (s *serviceImpl) openTx(ctx context.Context, tx *sqlx.Tx, req opening) (out outcome, err error) {
	booking, err := s.lockBooking(ctx, tx, req)
	if err != nil {
		return out, err
	}

	if booking.Cancelled() {
		return out, failure.Conflict("booking is already cancelled") // nolint:wrapcheck
	}

	if model.Refundable(req.caseType) {
		switch {
		case booking.PaymentStatus == bookingModel.PaymentStatusRefunded:
			return out, failure.Conflict("booking has already been refunded") // nolint:wrapcheck
		case booking.Status == bookingModel.StatusCheckedOut:
			return out, failure.Conflict("booking is already checked out") // nolint:wrapcheck
		}
	}

	openCase, err := s.repo.GetTx(ctx, tx, s.openCaseFilter(booking.ID), model.FieldID)
	if err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to check open emergency case")

		return out, fmt.Errorf("failed to check open emergency case: %w", err)
	}

	if openCase.ID != constant.Empty {
		return out, failure.Conflict("booking already has an open emergency case") // nolint:wrapcheck
	}

	refund := decimal.Zero

	if model.Refundable(req.caseType) {
		refund, err = policy.Calculate(booking, req.caseType, req.now, decimal.NewFromFloat(s.cfg.Hotel.TaxRate))
		if err != nil {
			return out, failure.BadRequest(err) // nolint:wrapcheck
		}
	}

	emergencyCase := model.Case{
		ID:          uuid.NewString(),
		BookingID:   booking.ID,
		Type:        req.caseType,
		Description: req.description,
		Status:      model.StatusOpen,
		Details:     req.details,
		Metadata:    gModel.NewMetadata(req.user, req.now),
	}

	if refund.IsPositive() {
		refundStatus := model.RefundStatusPending
		emergencyCase.RefundAmount = decimal.NewNullDecimal(refund)
		emergencyCase.RefundStatus = &refundStatus
	}

	if err = s.repo.InsertTx(ctx, tx, emergencyCase); err != nil {
		if shared.IsUniqueViolation(err) {
			return out, failure.Conflict("booking already has an open emergency case") // nolint:wrapcheck
		}

		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to insert emergency case")

		return out, fmt.Errorf("failed to insert emergency case: %w", err)
	}

	booking.Status = model.BookingStatus(req.caseType)
	fields := booking.Mutation(map[string]any{bookingModel.FieldStatus: booking.Status}, req.user, req.now)

	err = s.bookingRepo.UpdateTx(ctx, tx, fields, shared.FilterByID(booking.ID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to update booking status")

		return out, fmt.Errorf("failed to update booking status: %w", err)
	}

	booking.Version++
	out = outcome{emergencyCase: emergencyCase, booking: booking}

	if !req.settle || !refund.IsPositive() {
		return out, nil
	}

	out.refund, err = s.settlement.SettleTx(ctx, tx, refundService.Request{
		BookingID: booking.ID,
		CaseID:    emergencyCase.ID,
		Amount:    refund,
		User:      req.user,
		Now:       req.now,
	})
	if err != nil {
		return out, err //nolint:wrapcheck
	}

	// the payment was refunded under another case, so this one would promise money that is never paid
	if out.refund.AlreadySettled {
		return out, failure.Conflict("booking has already been refunded") // nolint:wrapcheck
	}

	processed := model.RefundStatusProcessed
	out.emergencyCase.RefundStatus = &processed
	out.emergencyCase.RefundAmount = decimal.NewNullDecimal(out.refund.Amount)
	out.booking = out.refund.Booking
	out.settled = true

	return out, nil
}

func (s *serviceImpl) lockBooking(ctx context.Context, tx *sqlx.Tx, req opening) (bookingModel.Booking, error) {
	filter := shared.FilterByID(req.bookingID, bookingModel.FieldID, bookingModel.TableName)
	if req.bookingCode != constant.Empty {
		filter = shared.FilterByID(req.bookingCode, bookingModel.FieldCode, bookingModel.TableName)
	}

	booking, err := s.bookingRepo.GetForUpdateTx(ctx, tx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to lock booking")

		return booking, fmt.Errorf("failed to lock booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if req.bookingCode != constant.Empty {
		return booking, s.checkGuestEmail(ctx, booking, req.guestEmail)
	}

	if userID, role := shared.CurrentUser(ctx); !shared.IsStaff(role) && booking.UserID != userID {
		return booking, failure.ResourceRestrictedError
	}

	return booking, nil
}

func (s *serviceImpl) checkGuestEmail(ctx context.Context, booking bookingModel.Booking, email string) error {
	guest, err := s.userRepo.Get(ctx, shared.FilterByID(booking.UserID, userModel.FieldID, userModel.TableName), userModel.FieldEmail)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking guest")

		return fmt.Errorf("failed to get booking guest: %w", err)
	}

	if !strings.EqualFold(guest.Email, strings.TrimSpace(email)) {
		return failure.BadRequestFromString("email does not match the booking") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) openCaseFilter(bookingID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldBookingID,
				Operator: gDto.FilterOperatorEq,
				Value:    bookingID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    model.StatusOpen,
				Table:    model.TableName,
			},
		},
	}
}

func (s *serviceImpl) afterOpen(ctx context.Context, req opening, out outcome) {
	s.notification.SendEmergencyNotification(ctx, out.booking, req.caseType, req.description)

	amount := constant.Empty
	if out.emergencyCase.RefundAmount.Valid {
		amount = out.emergencyCase.RefundAmount.Decimal.StringFixed(2)
	}

	s.publish(ctx, kafka.EventEmergencyOpened, out.emergencyCase, amount, req.now)

	if out.settled {
		s.notification.SendRefundNotification(ctx, out.booking, out.refund.Amount)
		s.publish(ctx, kafka.EventRefundSettled, out.emergencyCase, out.refund.Amount.StringFixed(2), req.now)
	}

	shared.InvalidateCaches(ctx, s.cache, cacheStatistics)
}

func (s *serviceImpl) Resolve(ctx context.Context, id string, req dto.ResolveCaseRequest) (res dto.CaseResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".emergency.Resolve")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := shared.CurrentUser(ctx)
	now := timezone.Now()

	emergencyCase, err := s.transition(ctx, id, model.StatusOpen, func(emergencyCase *model.Case) map[string]any {
		emergencyCase.Status = model.StatusResolved
		emergencyCase.ResolvedAt = &now
		emergencyCase.Details = emergencyCase.Details.Merge(model.Details{
			Resolution: &model.Resolution{Notes: req.ResolutionNotes, ResolvedAt: now},
		})

		return map[string]any{
			model.FieldStatus:        emergencyCase.Status,
			model.FieldResolvedAt:    now,
			model.FieldDetails:       emergencyCase.Details,
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: user,
		}
	})
	if err != nil {
		return res, err
	}

	s.publish(ctx, kafka.EventEmergencyResolved, emergencyCase, constant.Empty, now)
	shared.InvalidateCaches(ctx, s.cache, cacheStatistics)

	res.FromModel(emergencyCase)

	return res, nil
}

func (s *serviceImpl) Close(ctx context.Context, id string) (res dto.CaseResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".emergency.Close")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := shared.CurrentUser(ctx)
	now := timezone.Now()

	emergencyCase, err := s.transition(ctx, id, model.StatusResolved, func(emergencyCase *model.Case) map[string]any {
		emergencyCase.Status = model.StatusClosed

		return map[string]any{
			model.FieldStatus:        emergencyCase.Status,
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: user,
		}
	})
	if err != nil {
		return res, err
	}

	s.publish(ctx, kafka.EventEmergencyClosed, emergencyCase, constant.Empty, now)
	shared.InvalidateCaches(ctx, s.cache, cacheStatistics)

	res.FromModel(emergencyCase)

	return res, nil
}

// transition moves a locked case out of from. apply mutates the case and returns the columns to write.
func (s *serviceImpl) transition(
	ctx context.Context,
	id, from string,
	apply func(emergencyCase *model.Case) map[string]any,
) (emergencyCase model.Case, err error) {
	err = s.transactor.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		filter := shared.FilterByID(id, model.FieldID, model.TableName)

		emergencyCase, err = s.repo.GetForUpdateTx(ctx, tx, filter)
		if err != nil {
			log.Error().Err(err).Str("case_id", id).Msg("failed to lock emergency case")

			return fmt.Errorf("failed to lock emergency case: %w", err)
		}

		if emergencyCase.ID == constant.Empty {
			return failure.NotFound("emergency case not found") // nolint:wrapcheck
		}

		if emergencyCase.Status != from {
			return failure.Conflict(fmt.Sprintf("emergency case is %s", emergencyCase.Status)) // nolint:wrapcheck
		}

		if err = s.repo.UpdateTx(ctx, tx, apply(&emergencyCase), filter); err != nil {
			log.Error().Err(err).Str("case_id", id).Msg("failed to update emergency case")

			return fmt.Errorf("failed to update emergency case: %w", err)
		}

		return nil
	})

	return emergencyCase, err //nolint:wrapcheck
}

func (s *serviceImpl) SettleRefund(ctx context.Context, id string, req dto.SettleRefundRequest) (res dto.CaseResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".emergency.SettleRefund")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := shared.CurrentUser(ctx)
	now := timezone.Now()

	var result refundService.Result

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		// SettleTx locks the booking before the case, so the case is only read here
		emergencyCase, err := s.repo.GetTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			log.Error().Err(err).Str("case_id", id).Msg("failed to get emergency case")

			return fmt.Errorf("failed to get emergency case: %w", err)
		}

		if emergencyCase.ID == constant.Empty {
			return failure.NotFound("emergency case not found") // nolint:wrapcheck
		}

		amount := emergencyCase.RefundAmount.Decimal
		if req.Amount != nil {
			amount = req.Amount.Round(2)
		}

		if !amount.IsPositive() {
			return failure.BadRequestFromString("emergency case has no refund amount") // nolint:wrapcheck
		}

		result, err = s.settlement.SettleTx(ctx, tx, refundService.Request{
			BookingID: emergencyCase.BookingID,
			CaseID:    emergencyCase.ID,
			Amount:    amount,
			User:      user,
			Now:       now,
		})

		return err //nolint:wrapcheck
	})
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	emergencyCase, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if !result.AlreadySettled {
		s.notification.SendRefundNotification(ctx, result.Booking, result.Amount)
		s.publish(ctx, kafka.EventRefundSettled, emergencyCase, result.Amount.StringFixed(2), now)
		shared.InvalidateCaches(ctx, s.cache, cacheStatistics)
	}

	res.FromModel(emergencyCase)

	return res, nil
}

func (s *serviceImpl) CompleteRefund(ctx context.Context, id string) (res dto.CaseResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".emergency.CompleteRefund")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := shared.CurrentUser(ctx)
	now := timezone.Now()

	var already bool

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		already, err = s.settlement.CompleteTx(ctx, tx, id, user, now)

		return err //nolint:wrapcheck
	})
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	emergencyCase, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if !already {
		s.publish(ctx, kafka.EventRefundCompleted, emergencyCase, emergencyCase.RefundAmount.Decimal.StringFixed(2), now)
		shared.InvalidateCaches(ctx, s.cache, cacheStatistics)
	}

	res.FromModel(emergencyCase)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.CaseResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".emergency.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	emergencyCase, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if userID, role := shared.CurrentUser(ctx); !shared.IsStaff(role) {
		booking, err := s.bookingRepo.Get(ctx, shared.FilterByID(emergencyCase.BookingID, bookingModel.FieldID, bookingModel.TableName), bookingModel.FieldUserID)
		if err != nil {
			log.Error().Err(err).Msg("failed to get booking")

			return res, fmt.Errorf("failed to get booking: %w", err)
		}

		if booking.UserID != userID {
			return res, failure.ResourceRestrictedError
		}
	}

	res.FromModel(emergencyCase)

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Case, error) {
	emergencyCase, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("case_id", id).Msg("failed to get emergency case")

		return emergencyCase, fmt.Errorf("failed to get emergency case: %w", err)
	}

	if emergencyCase.ID == constant.Empty {
		return emergencyCase, failure.NotFound("emergency case not found") // nolint:wrapcheck
	}

	return emergencyCase, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetCasesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".emergency.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count emergency cases")

		return res, fmt.Errorf("failed to count emergency cases: %w", err)
	}

	cases, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get emergency cases")

		return res, fmt.Errorf("failed to get emergency cases: %w", err)
	}

	res.FromModels(cases, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) Statistics(ctx context.Context) (res dto.StatisticsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".emergency.Statistics")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = s.cache.Get(ctx, cacheStatistics, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheStatistics).Msg("cache hit for emergency statistics")

		return res, nil
	}

	if !errors.Is(err, cache.Nil) {
		log.Warn().Err(err).Msg("failed to read emergency statistics cache")
	}

	stats, err := s.repo.Statistics(ctx)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	types, err := s.repo.CountByType(ctx)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	res.FromRepository(stats, types)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheStatistics, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save emergency statistics to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) publish(ctx context.Context, name string, emergencyCase model.Case, amount string, at time.Time) {
	kafka.Publish(ctx, s.kafka, s.cfg.External.Kafka.Topics.Emergency, kafka.Event{
		Name:      name,
		BookingID: emergencyCase.BookingID,
		CaseID:    emergencyCase.ID,
		Amount:    amount,
		At:        at,
	})
}
