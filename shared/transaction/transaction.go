package transaction

//go:generate go run go.uber.org/mock/mockgen -source=./transaction.go -destination=./mocks/transaction_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/shared/constant"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// TxFunc runs inside an open transaction. Returning an error rolls the transaction back.
type TxFunc func(ctx context.Context, tx *sqlx.Tx) error

type Transactor interface {
	// WithinTx commits when fn returns nil and rolls back on error or panic.
	// A panic is re-raised after the rollback.
	WithinTx(ctx context.Context, fn TxFunc) error
}

type transactorImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Transactor {
	return &transactorImpl{
		db:   db,
		otel: otel,
	}
}

func (t *transactorImpl) WithinTx(ctx context.Context, fn TxFunc) (err error) {
	ctx, scope := t.otel.NewScope(ctx, constant.OtelTxScopeName, constant.OtelTxScopeName+".WithinTx")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	tx, err := t.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to begin transaction")

		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error().Err(rbErr).Msg("failed to rollback transaction after panic")
			}

			panic(recovered)
		}
	}()

	if err = fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Msg("failed to rollback transaction")

			return errors.Join(err, fmt.Errorf("failed to rollback transaction: %w", rbErr))
		}

		return err
	}

	if err = tx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit transaction")

		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
