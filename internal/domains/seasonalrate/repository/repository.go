package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/seasonalrate/model"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"
)

type SeasonalRate interface {
	Insert(ctx context.Context, model model.SeasonalRate) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.SeasonalRate, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.SeasonalRate, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.SeasonalRate]
}

func New(db *postgres.Connection, otel otel.Otel) SeasonalRate {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.SeasonalRate](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
