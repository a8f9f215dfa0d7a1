package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/admin/model"
	bookingModel "hotel/internal/domains/booking/model"
	paymentModel "hotel/internal/domains/payment/model"
	roomModel "hotel/internal/domains/room/model"
	userModel "hotel/internal/domains/user/model"
	"hotel/shared/constant"
	"hotel/shared/logger"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// occupyingStatuses are the booking states that put a guest in the room.
var occupyingStatuses = []string{bookingModel.StatusConfirmed, bookingModel.StatusCheckedIn}

type Admin interface {
	RoomTotals(ctx context.Context) (model.RoomTotals, error)
	OccupiedRooms(ctx context.Context, day time.Time) (int, error)
	Revenue(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	BookingStatusCounts(ctx context.Context) ([]model.StatusCount, error)
	AverageRoomRate(ctx context.Context) (decimal.Decimal, error)
	UpcomingCheckIns(ctx context.Context, from, to time.Time) ([]model.UpcomingStay, error)
	UpcomingCheckOuts(ctx context.Context, from, to time.Time) ([]model.UpcomingStay, error)
	ExportRows(ctx context.Context, from, to time.Time) ([]model.ExportRow, error)
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Admin {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

func (repo *repositoryImpl) get(ctx context.Context, op string, dest any, query string, args ...any) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".admin."+op)
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err := repo.db.Read.GetContext(ctx, dest, query, args...); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to query %s: %w", op, err)
	}

	return nil
}

func (repo *repositoryImpl) sel(ctx context.Context, op string, dest any, query string, args ...any) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".admin."+op)
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err := repo.db.Read.SelectContext(ctx, dest, query, args...); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to query %s: %w", op, err)
	}

	return nil
}

func (repo *repositoryImpl) RoomTotals(ctx context.Context) (res model.RoomTotals, err error) {
	query := fmt.Sprintf(`SELECT COUNT(*) AS total, COUNT(*) FILTER (WHERE %s = $1) AS available FROM %s`,
		roomModel.FieldStatus, roomModel.TableName)

	err = repo.get(ctx, "RoomTotals", &res, query, roomModel.StatusAvailable)

	return res, err
}

// OccupiedRooms counts rooms with a guest staying the night of day.
func (repo *repositoryImpl) OccupiedRooms(ctx context.Context, day time.Time) (res int, err error) {
	query := fmt.Sprintf(`SELECT COUNT(DISTINCT %[1]s) FROM %[2]s
		WHERE %[3]s = ANY($1) AND %[4]s <= $2 AND %[5]s > $2`,
		bookingModel.FieldRoomID, bookingModel.TableName, bookingModel.FieldStatus,
		bookingModel.FieldCheckIn, bookingModel.FieldCheckOut)

	err = repo.get(ctx, "OccupiedRooms", &res, query, pq.Array(occupyingStatuses), day)

	return res, err
}

// Revenue sums completed payments with paid_at in [from, to).
func (repo *repositoryImpl) Revenue(ctx context.Context, from, to time.Time) (res decimal.Decimal, err error) {
	query := fmt.Sprintf(`SELECT COALESCE(SUM(%[1]s), 0) FROM %[2]s
		WHERE %[3]s = $1 AND %[4]s >= $2 AND %[4]s < $3`,
		paymentModel.FieldAmount, paymentModel.TableName, paymentModel.FieldStatus, paymentModel.FieldPaidAt)

	err = repo.get(ctx, "Revenue", &res, query, paymentModel.StatusCompleted, from, to)

	return res, err
}

func (repo *repositoryImpl) BookingStatusCounts(ctx context.Context) (res []model.StatusCount, err error) {
	query := fmt.Sprintf(`SELECT %[1]s AS status, COUNT(*) AS total FROM %[2]s GROUP BY %[1]s ORDER BY %[1]s`,
		bookingModel.FieldStatus, bookingModel.TableName)

	err = repo.sel(ctx, "BookingStatusCounts", &res, query)

	return res, err
}

func (repo *repositoryImpl) AverageRoomRate(ctx context.Context) (res decimal.Decimal, err error) {
	query := fmt.Sprintf(`SELECT COALESCE(AVG(%s), 0) FROM %s`, roomModel.FieldBasePrice, roomModel.TableName)

	err = repo.get(ctx, "AverageRoomRate", &res, query)

	return res, err
}

func (repo *repositoryImpl) UpcomingCheckIns(ctx context.Context, from, to time.Time) ([]model.UpcomingStay, error) {
	return repo.upcoming(ctx, "UpcomingCheckIns", bookingModel.FieldCheckIn,
		[]string{bookingModel.StatusPending, bookingModel.StatusConfirmed}, from, to)
}

func (repo *repositoryImpl) UpcomingCheckOuts(ctx context.Context, from, to time.Time) ([]model.UpcomingStay, error) {
	return repo.upcoming(ctx, "UpcomingCheckOuts", bookingModel.FieldCheckOut,
		[]string{bookingModel.StatusConfirmed, bookingModel.StatusCheckedIn}, from, to)
}

// upcoming lists bookings whose dateField falls in [from, to). dateField is always a package constant.
func (repo *repositoryImpl) upcoming(ctx context.Context, op, dateField string, statuses []string, from, to time.Time) (res []model.UpcomingStay, err error) {
	query := fmt.Sprintf(`SELECT b.%[1]s, b.%[2]s, u.%[3]s AS guest_name, r.%[4]s AS room_number,
		b.%[5]s, b.%[6]s, b.%[7]s
		FROM %[8]s b
		JOIN %[9]s u ON u.%[10]s = b.%[11]s
		JOIN %[12]s r ON r.%[13]s = b.%[14]s
		WHERE b.%[15]s >= $1 AND b.%[15]s < $2 AND b.%[7]s = ANY($3)
		ORDER BY b.%[15]s, b.%[2]s`,
		bookingModel.FieldID, bookingModel.FieldCode, userModel.FieldName, roomModel.FieldNumber,
		bookingModel.FieldCheckIn, bookingModel.FieldCheckOut, bookingModel.FieldStatus,
		bookingModel.TableName,
		userModel.TableName, userModel.FieldID, bookingModel.FieldUserID,
		roomModel.TableName, roomModel.FieldID, bookingModel.FieldRoomID,
		dateField)

	err = repo.sel(ctx, op, &res, query, from, to, pq.Array(statuses))

	return res, err
}

// ExportRows lists bookings created in [from, to) with guest, room and payment columns.
func (repo *repositoryImpl) ExportRows(ctx context.Context, from, to time.Time) (res []model.ExportRow, err error) {
	query := fmt.Sprintf(`SELECT b.booking_code, u.%[1]s AS guest_name, u.%[2]s AS guest_email,
		r.%[3]s AS room_number, r.%[4]s AS room_type,
		b.check_in_date, b.check_out_date, b.nights, b.total_amount, b.status, b.payment_status,
		p.%[5]s AS paid_amount, b.created_at
		FROM %[6]s b
		JOIN %[7]s u ON u.id = b.user_id
		JOIN %[8]s r ON r.id = b.room_id
		LEFT JOIN %[9]s p ON p.%[10]s = b.id AND p.%[11]s = $3
		WHERE b.created_at >= $1 AND b.created_at < $2
		ORDER BY b.created_at`,
		userModel.FieldName, userModel.FieldEmail, roomModel.FieldNumber, roomModel.FieldType,
		paymentModel.FieldAmount, bookingModel.TableName, userModel.TableName, roomModel.TableName,
		paymentModel.TableName, paymentModel.FieldBookingID, paymentModel.FieldStatus)

	err = repo.sel(ctx, "ExportRows", &res, query, from, to, paymentModel.StatusCompleted)

	return res, err
}
