package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/s3"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetRoom    = "room:get"
	cacheGetAllRoom = "room:gets"
	cacheCountRoom  = "room:count"

	// auditFields is what ChangedFields always adds on top of the request.
	auditFields = 2
)

var (
	errRoomNotFound  = failure.NotFound("room not found")
	errNumberTaken   = failure.Conflict("room number already exists")
	errRoomHasOrders = failure.Conflict("room has bookings, set it to unavailable instead")
)

// Room is the room inventory. Reads are public and cached; writes evict the cache.
type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Room
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Room {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func byID(id string) gDto.FilterGroup {
	return shared.FilterByID(id, model.FieldID, model.TableName)
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, _ := shared.CurrentUser(ctx)

	taken, err := s.repo.Exist(ctx, shared.FilterByID(req.Number, model.FieldNumber, model.TableName))
	if err != nil {
		return fmt.Errorf("failed to check room number: %w", err)
	}

	if taken {
		return errNumberTaken
	}

	imageURL, objectName, err := s.uploadImage(ctx, req.Image, req.ImageFile)
	if err != nil {
		return err
	}

	if err = s.repo.Insert(ctx, req.ToModel(actor, imageURL)); err != nil {
		s.removeImage(ctx, objectName)

		if shared.IsUniqueViolation(err) {
			return errNumberTaken
		}

		log.Error().Err(err).Str("number", req.Number).Msg("failed to create room")

		return fmt.Errorf("failed to create room: %w", err)
	}

	s.forget(ctx, constant.Empty)

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllRoom, req, filter)

	if s.cache.Get(ctx, cacheKey, &res) == nil {
		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	rooms, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		return res, fmt.Errorf("failed to list rooms: %w", err)
	}

	res.FromModels(rooms, total, req.Limit)
	s.remember(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (total int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountRoom, req, filter)

	if s.cache.Get(ctx, cacheKey, &total) == nil {
		return total, nil
	}

	if total, err = s.repo.Count(ctx, filter); err != nil {
		return 0, fmt.Errorf("failed to count rooms: %w", err)
	}

	s.remember(ctx, cacheKey, total)

	return total, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetRoom, id)

	if s.cache.Get(ctx, cacheKey, &res) == nil {
		return res, nil
	}

	room, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(room)
	s.remember(ctx, cacheKey, res)

	return res, nil
}

// Update applies the non-empty fields of req. A new image replaces the stored one,
// which is deleted from the bucket once the row points at the new object.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, _ := shared.CurrentUser(ctx)

	fields := shared.ChangedFields(req, actor)
	if len(fields) == auditFields && req.Image == nil {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	room, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	imageURL, objectName, err := s.uploadImage(ctx, req.Image, req.ImageFile)
	if err != nil {
		return err
	}

	if imageURL != constant.Empty {
		fields[model.FieldImage] = imageURL
	}

	if err = s.repo.Update(ctx, fields, byID(id)); err != nil {
		s.removeImage(ctx, objectName)
		log.Error().Err(err).Str("room_id", id).Msg("failed to update room")

		return fmt.Errorf("failed to update room: %w", err)
	}

	if imageURL != constant.Empty && room.Image != constant.Empty {
		s.removeImage(ctx, s.s3.GetObjectNameFromURL(s.cfg.External.S3.BucketName, room.Image))
	}

	s.forget(ctx, id)

	return nil
}

// Delete removes a room that no booking references, along with its image.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, byID(id)); err != nil {
		if shared.IsForeignKeyViolation(err) {
			return errRoomHasOrders
		}

		log.Error().Err(err).Str("room_id", id).Msg("failed to delete room")

		return fmt.Errorf("failed to delete room: %w", err)
	}

	if room.Image != constant.Empty {
		s.removeImage(ctx, s.s3.GetObjectNameFromURL(s.cfg.External.S3.BucketName, room.Image))
	}

	s.forget(ctx, id)

	return nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Room, error) {
	room, err := s.repo.Get(ctx, byID(id))
	if err != nil {
		return room, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return room, errRoomNotFound
	}

	return room, nil
}

// uploadImage stores the image under the room prefix and returns its public url and object name.
func (s *serviceImpl) uploadImage(ctx context.Context, header *multipart.FileHeader, file multipart.File) (string, string, error) {
	if header == nil {
		return constant.Empty, constant.Empty, nil
	}

	objectName := uuid.NewString() + filepath.Ext(header.Filename)

	url, err := s.s3.UploadFile(ctx, s.cfg.External.S3.BucketName, model.EntityName, file, header, objectName)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload room image")

		return constant.Empty, constant.Empty, fmt.Errorf("failed to upload image: %w", err)
	}

	return url, objectName, nil
}

func (s *serviceImpl) removeImage(ctx context.Context, objectName string) {
	if objectName == constant.Empty {
		return
	}

	if err := s.s3.DeleteFile(ctx, s.cfg.External.S3.BucketName, model.EntityName, objectName); err != nil {
		log.Warn().Err(err).Str("object", objectName).Msg("failed to remove room image")
	}
}

func (s *serviceImpl) remember(ctx context.Context, key string, value any) {
	go func() {
		if err := s.cache.Save(context.WithoutCancel(ctx), key, value, s.cfg.Cache.TTL); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to cache rooms")
		}
	}()
}

// forget drops the cached lists, and the cached room id when given.
func (s *serviceImpl) forget(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetRoom, id)); err != nil {
				log.Warn().Err(err).Str("room_id", id).Msg("failed to evict cached room")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllRoom)
		shared.InvalidateCaches(c, s.cache, cacheCountRoom)
	}()
}
