package transaction_test

import (
	"context"
	"errors"
	"testing"

	"hotel/infras/otel/mocks"
	"hotel/infras/postgres"
	"hotel/shared/transaction"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (sqlmock.Sqlmock, transaction.Transactor) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "postgres")

	return mock, transaction.New(&postgres.Connection{Read: sqlxDB, Write: sqlxDB}, mocks.NewOtel())
}

func TestWithinTx_CommitsOnSuccess(t *testing.T) {
	mock, transactor := setup(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE bookings").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := transactor.WithinTx(context.Background(), func(ctx context.Context, tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, "UPDATE bookings SET status = 'confirmed'")

		return err
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	mock, transactor := setup(t)
	failure := errors.New("insert emergency case failed")

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE bookings").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	err := transactor.WithinTx(context.Background(), func(ctx context.Context, tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "UPDATE bookings SET status = 'emergency_cancelled'"); err != nil {
			return err
		}

		return failure
	})

	assert.ErrorIs(t, err, failure)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTx_RollsBackAndRepanics(t *testing.T) {
	mock, transactor := setup(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.PanicsWithValue(t, "boom", func() {
		_ = transactor.WithinTx(context.Background(), func(context.Context, *sqlx.Tx) error {
			panic("boom")
		})
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTx_BeginFailure(t *testing.T) {
	mock, transactor := setup(t)

	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	called := false
	err := transactor.WithinTx(context.Background(), func(context.Context, *sqlx.Tx) error {
		called = true

		return nil
	})

	assert.ErrorContains(t, err, "failed to begin transaction")
	assert.False(t, called)
}

func TestWithinTx_CommitFailure(t *testing.T) {
	mock, transactor := setup(t)

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))

	err := transactor.WithinTx(context.Background(), func(context.Context, *sqlx.Tx) error {
		return nil
	})

	assert.ErrorContains(t, err, "failed to commit transaction")
	assert.NoError(t, mock.ExpectationsWereMet())
}
