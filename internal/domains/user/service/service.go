package service

import (
	"context"
	"fmt"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/internal/domains/user/model"
	"hotel/internal/domains/user/model/dto"
	"hotel/internal/domains/user/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/password"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetUser    = "user:get"
	cacheGetAllUser = "user:gets"
	cacheCountUser  = "user:count"
)

var errUserNotFound = failure.NotFound("user not found")

// User is the staff facing account directory. Guests manage themselves through UpdateProfile.
type User interface {
	Create(ctx context.Context, req dto.CreateUserRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetUsersResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.UserResponse, error)
	Update(ctx context.Context, req dto.UpdateUserRequest, id string) error
	UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.User
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.User, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) User {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func byID(id string) gDto.FilterGroup {
	return shared.FilterByID(id, model.FieldID, model.TableName)
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateUserRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, _ := shared.CurrentUser(ctx)

	if err := password.Check(req.Password); err != nil {
		return failure.BadRequest(err) // nolint:wrapcheck
	}

	taken, err := s.repo.Exist(ctx, shared.FilterByID(model.NormalizeEmail(req.Email), model.FieldEmail, model.TableName))
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}

	if taken {
		return failure.Conflict("email already registered") // nolint:wrapcheck
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err = s.repo.Insert(ctx, req.ToModel(actor, hashed)); err != nil {
		if shared.IsUniqueViolation(err) {
			return failure.Conflict("email already registered") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create user")

		return fmt.Errorf("failed to create user: %w", err)
	}

	s.forget(ctx, "")

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetUsersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllUser, req, filter)

	if s.cache.Get(ctx, cacheKey, &res) == nil {
		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	users, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		return res, fmt.Errorf("failed to list users: %w", err)
	}

	res.FromModels(users, total, req.Limit)
	s.remember(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (total int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountUser, req, filter)

	if s.cache.Get(ctx, cacheKey, &total) == nil {
		return total, nil
	}

	if total, err = s.repo.Count(ctx, filter); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}

	s.remember(ctx, cacheKey, total)

	return total, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetUser, id)

	if s.cache.Get(ctx, cacheKey, &res) == nil {
		return res, nil
	}

	user, err := s.repo.Get(ctx, byID(id))
	if err != nil {
		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return res, errUserNotFound
	}

	res.FromModel(user)
	s.remember(ctx, cacheKey, res)

	return res, nil
}

// Update is the staff edit of another account. Staff cannot lock themselves out
// by deactivating or demoting their own account.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateUserRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdateUserRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	actor, role := shared.CurrentUser(ctx)

	if actor == id && ((req.Active != nil && !*req.Active) || (req.Role != "" && req.Role != role)) {
		return failure.Forbidden("cannot deactivate or change the role of your own account") // nolint:wrapcheck
	}

	if err = s.mustExist(ctx, id); err != nil {
		return err
	}

	return s.update(ctx, shared.ChangedFields(req, actor), id)
}

func (s *serviceImpl) UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.UpdateProfile")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdateProfileRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	userID, _ := shared.CurrentUser(ctx)
	if userID == constant.Empty {
		return failure.Unauthorized("missing user") // nolint:wrapcheck
	}

	return s.update(ctx, shared.ChangedFields(req, userID), userID)
}

// Delete refuses accounts still referenced by bookings; deactivate those instead.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if actor, _ := shared.CurrentUser(ctx); actor == id {
		return failure.Forbidden("cannot delete your own account") // nolint:wrapcheck
	}

	if err = s.mustExist(ctx, id); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, byID(id)); err != nil {
		if shared.IsForeignKeyViolation(err) {
			return failure.Conflict("user has bookings, deactivate the account instead") // nolint:wrapcheck
		}

		log.Error().Err(err).Str("user_id", id).Msg("failed to delete user")

		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.forget(ctx, id)

	return nil
}

func (s *serviceImpl) mustExist(ctx context.Context, id string) error {
	exist, err := s.repo.Exist(ctx, byID(id))
	if err != nil {
		return fmt.Errorf("failed to check user: %w", err)
	}

	if !exist {
		return errUserNotFound
	}

	return nil
}

func (s *serviceImpl) update(ctx context.Context, fields map[string]any, id string) error {
	if err := s.repo.Update(ctx, fields, byID(id)); err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("failed to update user")

		return fmt.Errorf("failed to update user: %w", err)
	}

	s.forget(ctx, id)

	return nil
}

func (s *serviceImpl) remember(ctx context.Context, key string, value any) {
	go func() {
		if err := s.cache.Save(context.WithoutCancel(ctx), key, value, s.cfg.Cache.TTL); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to cache users")
		}
	}()
}

// forget drops the cached lists, and the cached record of id when given.
func (s *serviceImpl) forget(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetUser, id)); err != nil {
				log.Warn().Err(err).Str("user_id", id).Msg("failed to evict cached user")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllUser)
		shared.InvalidateCaches(c, s.cache, cacheCountUser)
	}()
}
