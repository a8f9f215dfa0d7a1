package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/emergency/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/logger"
	gRepo "hotel/shared/repository"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type TypeCount struct {
	Type  string `db:"type"`
	Total int    `db:"total"`
}

type Statistics struct {
	Total            int             `db:"total"`
	Open             int             `db:"open"`
	Resolved         int             `db:"resolved"`
	CompletedRefunds decimal.Decimal `db:"completed_refunds"`
}

type Case interface {
	Insert(ctx context.Context, model model.Case) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Case, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Case, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Case) error
	GetTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Case, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Case, error)
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Statistics(ctx context.Context) (Statistics, error)
	CountByType(ctx context.Context) ([]TypeCount, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Case]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Case {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Case](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) Statistics(ctx context.Context) (res Statistics, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".emergency_case.Statistics")
	defer scope.End()

	query := fmt.Sprintf(`SELECT
		COUNT(*) AS total,
		COUNT(*) FILTER (WHERE status = '%s') AS open,
		COUNT(*) FILTER (WHERE status = '%s') AS resolved,
		COALESCE(SUM(refund_amount) FILTER (WHERE refund_status = '%s'), 0) AS completed_refunds
		FROM %s`, model.StatusOpen, model.StatusResolved, model.RefundStatusCompleted, model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err = repo.db.Read.GetContext(ctx, &res, query); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return res, fmt.Errorf("failed to get emergency statistics: %w", err)
	}

	return res, nil
}

func (repo *repositoryImpl) CountByType(ctx context.Context) (res []TypeCount, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".emergency_case.CountByType")
	defer scope.End()

	query := fmt.Sprintf("SELECT type, COUNT(*) AS total FROM %s GROUP BY type ORDER BY type", model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err = repo.db.Read.SelectContext(ctx, &res, query); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to count emergency cases by type: %w", err)
	}

	return res, nil
}
