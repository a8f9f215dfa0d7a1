package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"hotel/infras/otel"
	bookingModel "hotel/internal/domains/booking/model"
	bookingRepository "hotel/internal/domains/booking/repository"
	emergencyModel "hotel/internal/domains/emergency/model"
	emergencyRepository "hotel/internal/domains/emergency/repository"
	notificationService "hotel/internal/domains/notification/service"
	paymentModel "hotel/internal/domains/payment/model"
	paymentRepository "hotel/internal/domains/payment/repository"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/transaction"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const latestCaseQuery = "%s.created_at = (SELECT MAX(latest.created_at) FROM %s latest WHERE latest.booking_id = :booking_id)"

type Request struct {
	BookingID string
	// CaseID pins the case to stamp. Empty means the latest case of the booking, if any.
	CaseID string
	Amount decimal.Decimal
	User   string
	Now    time.Time
}

type Result struct {
	AlreadySettled bool
	Amount         decimal.Decimal
	PaymentID      string
	CaseID         string
	Booking        bookingModel.Booking
}

// Settlement moves money state to refunded. Every write happens under row locks
// and a settled booking stays settled: repeating a call writes nothing.
type Settlement interface {
	SettleTx(ctx context.Context, tx *sqlx.Tx, req Request) (Result, error)
	Settle(ctx context.Context, req Request) (Result, error)
	CompleteTx(ctx context.Context, tx *sqlx.Tx, caseID, user string, now time.Time) (bool, error)
}

type serviceImpl struct {
	transactor   transaction.Transactor
	bookingRepo  bookingRepository.Booking
	paymentRepo  paymentRepository.Payment
	caseRepo     emergencyRepository.Case
	notification notificationService.Notification
	otel         otel.Otel
}

func New(
	transactor transaction.Transactor,
	bookingRepo bookingRepository.Booking,
	paymentRepo paymentRepository.Payment,
	caseRepo emergencyRepository.Case,
	notification notificationService.Notification,
	otel otel.Otel,
) Settlement {
	return &serviceImpl{
		transactor:   transactor,
		bookingRepo:  bookingRepo,
		paymentRepo:  paymentRepo,
		caseRepo:     caseRepo,
		notification: notification,
		otel:         otel,
	}
}

func (s *serviceImpl) Settle(ctx context.Context, req Request) (res Result, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".refund.Settle")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		res, err = s.SettleTx(ctx, tx, req)

		return err
	})
	if err != nil {
		return Result{}, err //nolint:wrapcheck
	}

	if !res.AlreadySettled {
		s.notification.SendRefundNotification(ctx, res.Booking, res.Amount)
	}

	return res, nil
}

func (s *serviceImpl) SettleTx(ctx context.Context, tx *sqlx.Tx, req Request) (res Result, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".refund.SettleTx")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !req.Amount.IsPositive() {
		return res, failure.BadRequestFromString("refund amount must be positive") // nolint:wrapcheck
	}

	booking, err := s.bookingRepo.GetForUpdateTx(ctx, tx, shared.FilterByID(req.BookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking_id", req.BookingID).Msg("failed to lock booking for refund")

		return res, fmt.Errorf("failed to lock booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	payment, err := s.paymentRepo.GetForUpdateTx(ctx, tx, shared.FilterByID(booking.ID, paymentModel.FieldBookingID, paymentModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to lock payment for refund")

		return res, fmt.Errorf("failed to lock payment: %w", err)
	}

	emergencyCase, err := s.caseRepo.GetForUpdateTx(ctx, tx, s.caseFilter(req, booking.ID))
	if err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to lock emergency case for refund")

		return res, fmt.Errorf("failed to lock emergency case: %w", err)
	}

	hasPayment := payment.ID != constant.Empty
	res = Result{Amount: req.Amount, PaymentID: payment.ID, CaseID: emergencyCase.ID, Booking: booking}

	if payment.Status == paymentModel.StatusRefunded ||
		(!hasPayment && booking.PaymentStatus == bookingModel.PaymentStatusRefunded) {
		res.AlreadySettled = true
		res.Amount = payment.RefundedAmount

		scope.AddEvent("refund already settled")

		return res, nil
	}

	if hasPayment {
		if req.Amount.GreaterThan(payment.Amount) {
			return res, failure.BadRequestFromString("refund amount exceeds the paid amount") // nolint:wrapcheck
		}

		err = s.paymentRepo.UpdateTx(ctx, tx, map[string]any{
			paymentModel.FieldStatus:         paymentModel.StatusRefunded,
			paymentModel.FieldRefundedAmount: req.Amount,
			constant.FieldModifiedAt:         req.Now,
			constant.FieldModifiedBy:         req.User,
		}, shared.FilterByID(payment.ID, paymentModel.FieldID, paymentModel.TableName))
		if err != nil {
			log.Error().Err(err).Str("payment_id", payment.ID).Msg("failed to mark payment refunded")

			return res, fmt.Errorf("failed to mark payment refunded: %w", err)
		}
	}

	bookingFields := booking.Mutation(map[string]any{
		bookingModel.FieldPaymentStatus: bookingModel.PaymentStatusRefunded,
	}, req.User, req.Now)

	if err = s.bookingRepo.UpdateTx(ctx, tx, bookingFields, shared.FilterByID(booking.ID, bookingModel.FieldID, bookingModel.TableName)); err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to mark booking refunded")

		return res, fmt.Errorf("failed to mark booking refunded: %w", err)
	}

	res.Booking.PaymentStatus = bookingModel.PaymentStatusRefunded
	res.Booking.Version++

	if emergencyCase.ID == constant.Empty || emergencyCase.HasRefundStatus(emergencyModel.RefundStatusCompleted) {
		return res, nil
	}

	// the case carries the amount actually paid back, which may differ from the stamped one
	caseFields := map[string]any{
		emergencyModel.FieldRefundStatus: emergencyModel.RefundStatusProcessed,
		emergencyModel.FieldRefundAmount: req.Amount,
		constant.FieldModifiedAt:         req.Now,
		constant.FieldModifiedBy:         req.User,
	}

	err = s.caseRepo.UpdateTx(ctx, tx, caseFields, shared.FilterByID(emergencyCase.ID, emergencyModel.FieldID, emergencyModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("case_id", emergencyCase.ID).Msg("failed to mark emergency refund processed")

		return res, fmt.Errorf("failed to mark emergency refund processed: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) caseFilter(req Request, bookingID string) gDto.FilterGroup {
	if req.CaseID != constant.Empty {
		return shared.FilterByID(req.CaseID, emergencyModel.FieldID, emergencyModel.TableName)
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    emergencyModel.FieldBookingID,
				Operator: gDto.FilterOperatorEq,
				Value:    bookingID,
				Table:    emergencyModel.TableName,
			},
			gDto.Filter{
				Operator: gDto.FilterPlainQuery,
				Value:    fmt.Sprintf(latestCaseQuery, emergencyModel.TableName, emergencyModel.TableName),
			},
		},
	}
}

// CompleteTx confirms a processed refund. It reports true when the refund was already completed.
func (s *serviceImpl) CompleteTx(ctx context.Context, tx *sqlx.Tx, caseID, user string, now time.Time) (already bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".refund.CompleteTx")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(caseID, emergencyModel.FieldID, emergencyModel.TableName)

	emergencyCase, err := s.caseRepo.GetForUpdateTx(ctx, tx, filter)
	if err != nil {
		log.Error().Err(err).Str("case_id", caseID).Msg("failed to lock emergency case")

		return false, fmt.Errorf("failed to lock emergency case: %w", err)
	}

	if emergencyCase.ID == constant.Empty {
		return false, failure.NotFound("emergency case not found") // nolint:wrapcheck
	}

	if emergencyCase.HasRefundStatus(emergencyModel.RefundStatusCompleted) {
		return true, nil
	}

	if !emergencyCase.HasRefundStatus(emergencyModel.RefundStatusProcessed) {
		return false, failure.Conflict("refund has not been processed") // nolint:wrapcheck
	}

	err = s.caseRepo.UpdateTx(ctx, tx, map[string]any{
		emergencyModel.FieldRefundStatus: emergencyModel.RefundStatusCompleted,
		constant.FieldModifiedAt:         now,
		constant.FieldModifiedBy:         user,
	}, filter)
	if err != nil {
		log.Error().Err(err).Str("case_id", caseID).Msg("failed to complete emergency refund")

		return false, fmt.Errorf("failed to complete emergency refund: %w", err)
	}

	return false, nil
}
