package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"hotel/infras/otel/mocks"
	bookingMocks "hotel/internal/domains/booking/mocks"
	bookingModel "hotel/internal/domains/booking/model"
	emergencyMocks "hotel/internal/domains/emergency/mocks"
	emergencyModel "hotel/internal/domains/emergency/model"
	notificationMocks "hotel/internal/domains/notification/service/mocks"
	paymentMocks "hotel/internal/domains/payment/mocks"
	paymentModel "hotel/internal/domains/payment/model"
	"hotel/internal/domains/refund/service"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/transaction"
	txMocks "hotel/shared/transaction/mocks"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	tx           *txMocks.MockTransactor
	booking      *bookingMocks.MockBooking
	payment      *paymentMocks.MockPayment
	cases        *emergencyMocks.MockCase
	notification *notificationMocks.MockNotification
	svc          service.Settlement
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		tx:           txMocks.NewMockTransactor(ctrl),
		booking:      bookingMocks.NewMockBooking(ctrl),
		payment:      paymentMocks.NewMockPayment(ctrl),
		cases:        emergencyMocks.NewMockCase(ctrl),
		notification: notificationMocks.NewMockNotification(ctrl),
	}
	f.svc = service.New(f.tx, f.booking, f.payment, f.cases, f.notification, mocks.NewOtel())

	f.tx.EXPECT().WithinTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn transaction.TxFunc) error {
			return fn(ctx, nil)
		}).AnyTimes()

	return f
}

var now = time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)

func strPtr(value string) *string { return &value }

func bookingRow() bookingModel.Booking {
	return bookingModel.Booking{
		ID:            "b1",
		Code:          "BK65F1A2B3C4D5E",
		UserID:        "u1",
		Status:        bookingModel.StatusEmergencyCancelled,
		PaymentStatus: bookingModel.PaymentStatusCompleted,
		TotalAmount:   decimal.RequireFromString("1000"),
		Nights:        4,
		Version:       3,
	}
}

func paymentRow(status string) paymentModel.Payment {
	return paymentModel.Payment{
		ID:        "p1",
		PaymentID: "PH_1",
		BookingID: "b1",
		Amount:    decimal.RequireFromString("1000"),
		Status:    status,
	}
}

func caseRow(refundStatus *string, amount decimal.NullDecimal) emergencyModel.Case {
	return emergencyModel.Case{
		ID:           "c1",
		BookingID:    "b1",
		Type:         emergencyModel.TypeCancellation,
		Status:       emergencyModel.StatusOpen,
		RefundAmount: amount,
		RefundStatus: refundStatus,
	}
}

func (f fixture) expectLocks(booking bookingModel.Booking, payment paymentModel.Payment, emergencyCase emergencyModel.Case) {
	f.booking.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booking, nil)
	f.payment.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(payment, nil)
	f.cases.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(emergencyCase, nil)
}

func TestSettle_FirstCallRefundsEverything(t *testing.T) {
	f := newFixture(t)
	amount := decimal.RequireFromString("850.00")

	f.expectLocks(bookingRow(), paymentRow(paymentModel.StatusCompleted),
		caseRow(strPtr(emergencyModel.RefundStatusPending), decimal.NewNullDecimal(amount)))

	f.payment.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, paymentModel.StatusRefunded, fields[paymentModel.FieldStatus])
			assert.True(t, amount.Equal(fields[paymentModel.FieldRefundedAmount].(decimal.Decimal)))

			return nil
		})
	f.booking.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, bookingModel.PaymentStatusRefunded, fields[bookingModel.FieldPaymentStatus])
			assert.Equal(t, 4, fields[bookingModel.FieldVersion])
			assert.NotContains(t, fields, bookingModel.FieldStatus)

			return nil
		})
	f.cases.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, emergencyModel.RefundStatusProcessed, fields[emergencyModel.FieldRefundStatus])
			assert.True(t, amount.Equal(fields[emergencyModel.FieldRefundAmount].(decimal.Decimal)))

			return nil
		})
	f.notification.EXPECT().SendRefundNotification(gomock.Any(), gomock.Any(), amount).Return(true)

	res, err := f.svc.Settle(context.Background(), service.Request{BookingID: "b1", Amount: amount, User: "staff", Now: now})

	require.NoError(t, err)
	assert.False(t, res.AlreadySettled)
	assert.Equal(t, "p1", res.PaymentID)
	assert.Equal(t, "c1", res.CaseID)
	assert.Equal(t, bookingModel.PaymentStatusRefunded, res.Booking.PaymentStatus)
}

func TestSettle_RepeatedCallWritesNothing(t *testing.T) {
	f := newFixture(t)

	payment := paymentRow(paymentModel.StatusRefunded)
	payment.RefundedAmount = decimal.RequireFromString("850")

	booking := bookingRow()
	booking.PaymentStatus = bookingModel.PaymentStatusRefunded

	f.expectLocks(booking, payment, caseRow(strPtr(emergencyModel.RefundStatusProcessed), decimal.NewNullDecimal(payment.RefundedAmount)))

	res, err := f.svc.Settle(context.Background(), service.Request{
		BookingID: "b1",
		Amount:    decimal.RequireFromString("850"),
		User:      "staff",
		Now:       now,
	})

	require.NoError(t, err)
	assert.True(t, res.AlreadySettled)
	assert.True(t, res.Amount.Equal(payment.RefundedAmount))
}

func TestSettleTx_StampsMissingCaseAmount(t *testing.T) {
	f := newFixture(t)
	amount := decimal.RequireFromString("425.00")

	f.expectLocks(bookingRow(), paymentRow(paymentModel.StatusCompleted), caseRow(nil, decimal.NullDecimal{}))

	f.payment.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.booking.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.cases.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, emergencyModel.RefundStatusProcessed, fields[emergencyModel.FieldRefundStatus])
			assert.True(t, amount.Equal(fields[emergencyModel.FieldRefundAmount].(decimal.Decimal)))

			return nil
		})

	res, err := f.svc.SettleTx(context.Background(), nil, service.Request{BookingID: "b1", CaseID: "c1", Amount: amount, User: "staff", Now: now})

	require.NoError(t, err)
	assert.False(t, res.AlreadySettled)
}

func TestSettleTx_OverrideReplacesStampedAmount(t *testing.T) {
	f := newFixture(t)
	settled := decimal.RequireFromString("600.00")

	f.expectLocks(bookingRow(), paymentRow(paymentModel.StatusCompleted),
		caseRow(strPtr(emergencyModel.RefundStatusPending), decimal.NewNullDecimal(decimal.RequireFromString("425.00"))))

	var paid, recorded decimal.Decimal

	f.payment.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
			paid = fields[paymentModel.FieldRefundedAmount].(decimal.Decimal)

			return nil
		})
	f.booking.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.cases.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
			recorded = fields[emergencyModel.FieldRefundAmount].(decimal.Decimal)

			return nil
		})

	res, err := f.svc.SettleTx(context.Background(), nil, service.Request{BookingID: "b1", CaseID: "c1", Amount: settled, User: "staff", Now: now})

	require.NoError(t, err)
	assert.True(t, settled.Equal(res.Amount))
	assert.True(t, settled.Equal(paid))
	assert.True(t, paid.Equal(recorded), "case records %s but payment refunded %s", recorded, paid)
}

func TestSettleTx_CompletedRefundIsNotRegressed(t *testing.T) {
	f := newFixture(t)

	f.expectLocks(bookingRow(), paymentRow(paymentModel.StatusCompleted),
		caseRow(strPtr(emergencyModel.RefundStatusCompleted), decimal.NewNullDecimal(decimal.RequireFromString("850"))))

	f.payment.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.booking.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	_, err := f.svc.SettleTx(context.Background(), nil, service.Request{
		BookingID: "b1",
		Amount:    decimal.RequireFromString("850"),
		User:      "staff",
		Now:       now,
	})

	require.NoError(t, err)
}

func TestSettleTx_WithoutPayment(t *testing.T) {
	f := newFixture(t)

	f.expectLocks(bookingRow(), paymentModel.Payment{}, emergencyModel.Case{})
	f.booking.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	res, err := f.svc.SettleTx(context.Background(), nil, service.Request{
		BookingID: "b1",
		Amount:    decimal.RequireFromString("100"),
		User:      "staff",
		Now:       now,
	})

	require.NoError(t, err)
	assert.Empty(t, res.PaymentID)
	assert.Empty(t, res.CaseID)
}

func TestSettleTx_Rejections(t *testing.T) {
	t.Run("non positive amount", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.SettleTx(context.Background(), nil, service.Request{BookingID: "b1", Amount: decimal.Zero})

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("booking not found", func(t *testing.T) {
		f := newFixture(t)
		f.booking.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(bookingModel.Booking{}, nil)

		_, err := f.svc.SettleTx(context.Background(), nil, service.Request{BookingID: "b1", Amount: decimal.NewFromInt(1)})

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("amount above payment", func(t *testing.T) {
		f := newFixture(t)
		f.expectLocks(bookingRow(), paymentRow(paymentModel.StatusCompleted), emergencyModel.Case{})

		_, err := f.svc.SettleTx(context.Background(), nil, service.Request{BookingID: "b1", Amount: decimal.NewFromInt(1001)})

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestSettle_FailureSkipsNotification(t *testing.T) {
	f := newFixture(t)

	f.expectLocks(bookingRow(), paymentRow(paymentModel.StatusCompleted), emergencyModel.Case{})
	f.payment.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("deadlock detected"))

	_, err := f.svc.Settle(context.Background(), service.Request{BookingID: "b1", Amount: decimal.NewFromInt(850), User: "staff", Now: now})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "deadlock detected")
}

func TestCompleteTx(t *testing.T) {
	tests := []struct {
		name        string
		row         emergencyModel.Case
		wantUpdate  bool
		wantAlready bool
		wantCode    int
	}{
		{
			name:       "processed becomes completed",
			row:        caseRow(strPtr(emergencyModel.RefundStatusProcessed), decimal.NullDecimal{}),
			wantUpdate: true,
		},
		{
			name:        "completed is idempotent",
			row:         caseRow(strPtr(emergencyModel.RefundStatusCompleted), decimal.NullDecimal{}),
			wantAlready: true,
		},
		{
			name:     "pending is a conflict",
			row:      caseRow(strPtr(emergencyModel.RefundStatusPending), decimal.NullDecimal{}),
			wantCode: http.StatusConflict,
		},
		{
			name:     "no refund is a conflict",
			row:      caseRow(nil, decimal.NullDecimal{}),
			wantCode: http.StatusConflict,
		},
		{
			name:     "missing case",
			row:      emergencyModel.Case{},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.cases.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.row, nil)

			if tt.wantUpdate {
				f.cases.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, emergencyModel.RefundStatusCompleted, fields[emergencyModel.FieldRefundStatus])
						assert.Equal(t, "staff", fields[constant.FieldModifiedBy])

						return nil
					})
			}

			already, err := f.svc.CompleteTx(context.Background(), nil, "c1", "staff", now)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantAlready, already)
		})
	}
}
