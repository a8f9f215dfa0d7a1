package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"hotel/config"
	"hotel/infras/otel"
	roomModel "hotel/internal/domains/room/model"
	roomRepository "hotel/internal/domains/room/repository"
	"hotel/internal/domains/seasonalrate/model"
	"hotel/internal/domains/seasonalrate/model/dto"
	"hotel/internal/domains/seasonalrate/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const cacheGetRoomRates = "seasonal_rate:room"

type SeasonalRate interface {
	Create(ctx context.Context, req dto.CreateSeasonalRateRequest) error
	GetByRoom(ctx context.Context, roomID string) (dto.GetSeasonalRatesResponse, error)
	Update(ctx context.Context, req dto.UpdateSeasonalRateRequest, id string) error
	Delete(ctx context.Context, id string) error
	// ForStay returns the rates of roomID overlapping the nights in [checkIn, checkOut).
	ForStay(ctx context.Context, roomID string, checkIn, checkOut time.Time) ([]model.SeasonalRate, error)
}

type serviceImpl struct {
	repo     repository.SeasonalRate
	roomRepo roomRepository.Room
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.SeasonalRate, roomRepo roomRepository.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) SeasonalRate {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func validatePeriod(start, end time.Time, multiplier decimal.Decimal) error {
	if end.Before(start) {
		return failure.BadRequestFromString("end_date must not be before start_date") // nolint:wrapcheck
	}

	if !multiplier.IsPositive() {
		return failure.BadRequestFromString("multiplier must be greater than zero") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateSeasonalRateRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".seasonal_rate.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	start, end := req.Period()
	if err = validatePeriod(start, end, req.Multiplier); err != nil {
		return err
	}

	exist, err := s.roomRepo.Exist(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check room existence")

		return fmt.Errorf("failed to check room existence: %w", err)
	}

	if !exist {
		return failure.NotFound("room not found") // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to create seasonal rate")

		return fmt.Errorf("failed to create seasonal rate: %w", err)
	}

	s.invalidate(ctx, req.RoomID)

	return nil
}

func (s *serviceImpl) GetByRoom(ctx context.Context, roomID string) (res dto.GetSeasonalRatesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".seasonal_rate.GetByRoom")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetRoomRates, roomID)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	params := gDto.QueryParams{SortBy: model.TableName + "." + model.FieldStartDate, SortDir: gDto.SortDirAsc}

	rates, err := s.repo.GetAll(ctx, params, shared.FilterByID(roomID, model.FieldRoomID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get seasonal rates")

		return res, fmt.Errorf("failed to get seasonal rates: %w", err)
	}

	res.FromModels(rates)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save seasonal rates to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateSeasonalRateRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".seasonal_rate.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get seasonal rate")

		return fmt.Errorf("failed to get seasonal rate: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("seasonal rate not found") // nolint:wrapcheck
	}

	start, end, multiplier := current.StartDate, current.EndDate, current.Multiplier
	if req.StartDate != constant.Empty {
		start, _ = time.Parse(constant.DateOnlyFormat, req.StartDate)
	}

	if req.EndDate != constant.Empty {
		end, _ = time.Parse(constant.DateOnlyFormat, req.EndDate)
	}

	if req.Multiplier != nil {
		multiplier = *req.Multiplier
	}

	if err = validatePeriod(start, end, multiplier); err != nil {
		return err
	}

	if err = s.repo.Update(ctx, shared.ChangedFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update seasonal rate")

		return fmt.Errorf("failed to update seasonal rate: %w", err)
	}

	s.invalidate(ctx, current.RoomID)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".seasonal_rate.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get seasonal rate")

		return fmt.Errorf("failed to get seasonal rate: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("seasonal rate not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete seasonal rate")

		return fmt.Errorf("failed to delete seasonal rate: %w", err)
	}

	s.invalidate(ctx, current.RoomID)

	return nil
}

func (s *serviceImpl) ForStay(ctx context.Context, roomID string, checkIn, checkOut time.Time) (res []model.SeasonalRate, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".seasonal_rate.ForStay")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	lastNight := checkOut.AddDate(0, 0, -1)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRoomID,
				Operator: gDto.FilterOperatorEq,
				Value:    roomID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStartDate,
				Operator: gDto.FilterOperatorLessEq,
				Value:    lastNight.Format(constant.DateOnlyFormat),
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldEndDate,
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    checkIn.Format(constant.DateOnlyFormat),
				Table:    model.TableName,
			},
		},
	}

	res, err = s.repo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Str("room_id", roomID).Msg("failed to get seasonal rates for stay")

		return nil, fmt.Errorf("failed to get seasonal rates for stay: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, roomID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetRoomRates, roomID)); err != nil {
			log.Error().Err(err).Msg("failed to delete seasonal rate cache")
		}
	}()
}
