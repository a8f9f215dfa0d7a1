package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/roomavailability/model"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"

	"github.com/jmoiron/sqlx"
)

type RoomAvailability interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.RoomAvailability) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.RoomAvailability, error)
	GetTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.RoomAvailability, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.RoomAvailability, error)
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.RoomAvailability]
}

func New(db *postgres.Connection, otel otel.Otel) RoomAvailability {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.RoomAvailability](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
