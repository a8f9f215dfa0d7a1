package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotel/infras/otel/mocks"
	"hotel/infras/postgres"
	"hotel/internal/domains/admin/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepository(t *testing.T) (sqlmock.Sqlmock, repository.Admin) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "postgres")

	return mock, repository.New(&postgres.Connection{Read: sqlxDB, Write: sqlxDB}, mocks.NewOtel())
}

func TestAdminRepository_RoomTotals(t *testing.T) {
	mock, repo := setupRepository(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) AS total, COUNT\(\*\) FILTER \(WHERE status = \$1\) AS available FROM rooms`).
		WithArgs("available").
		WillReturnRows(sqlmock.NewRows([]string{"total", "available"}).AddRow(10, 8))

	res, err := repo.RoomTotals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, res.Total)
	assert.Equal(t, 8, res.Available)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminRepository_OccupiedRooms(t *testing.T) {
	mock, repo := setupRepository(t)
	day := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT COUNT\(DISTINCT room_id\) FROM bookings\s+WHERE status = ANY\(\$1\) AND check_in_date <= \$2 AND check_out_date > \$2`).
		WithArgs(sqlmock.AnyArg(), day).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	occupied, err := repo.OccupiedRooms(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, 4, occupied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminRepository_Revenue(t *testing.T) {
	mock, repo := setupRepository(t)
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) FROM payments\s+WHERE status = \$1 AND paid_at >= \$2 AND paid_at < \$3`).
		WithArgs("completed", from, to).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow("1250.50"))

	revenue, err := repo.Revenue(context.Background(), from, to)
	require.NoError(t, err)
	assert.Equal(t, "1250.5", revenue.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminRepository_UpcomingCheckIns(t *testing.T) {
	mock, repo := setupRepository(t)
	from := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)

	mock.ExpectQuery(`FROM bookings b\s+JOIN users u ON u\.id = b\.user_id\s+JOIN rooms r ON r\.id = b\.room_id\s+WHERE b\.check_in_date >= \$1 AND b\.check_in_date < \$2`).
		WithArgs(from, to, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "booking_code", "guest_name", "room_number", "check_in_date", "check_out_date", "status"}).
			AddRow("b1", "BKA", "Nimal", "101", from.AddDate(0, 0, 1), from.AddDate(0, 0, 3), "confirmed"))

	stays, err := repo.UpcomingCheckIns(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, stays, 1)
	assert.Equal(t, "Nimal", stays[0].GuestName)
	assert.Equal(t, "101", stays[0].RoomNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminRepository_BookingStatusCountsError(t *testing.T) {
	mock, repo := setupRepository(t)

	mock.ExpectQuery(`SELECT status AS status, COUNT\(\*\) AS total FROM bookings GROUP BY status`).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.BookingStatusCounts(context.Background())
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
