package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/s3"
	"hotel/internal/domains/gallery/model"
	"hotel/internal/domains/gallery/model/dto"
	"hotel/internal/domains/gallery/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"
	"hotel/shared/transaction"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetImage     = "gallery:get"
	cacheGetAllImages = "gallery:get_all"
	cacheFeatured     = "gallery:featured"

	featuredLimit = 12
)

type Gallery interface {
	Create(ctx context.Context, req dto.CreateImageRequest) (dto.ImageResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetImagesResponse, error)
	GetFeatured(ctx context.Context) (dto.GetImagesResponse, error)
	Get(ctx context.Context, id string) (dto.ImageResponse, error)
	Update(ctx context.Context, req dto.UpdateImageRequest, id string) error
	ToggleFeatured(ctx context.Context, id string) (dto.ImageResponse, error)
	ToggleActive(ctx context.Context, id string) (dto.ImageResponse, error)
	Reorder(ctx context.Context, req dto.ReorderRequest) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo       repository.Gallery
	transactor transaction.Transactor
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
	s3         s3.S3
}

func New(repo repository.Gallery, transactor transaction.Transactor, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Gallery {
	return &serviceImpl{
		repo:       repo,
		transactor: transactor,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
		s3:         s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateImageRequest) (res dto.ImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".gallery.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := shared.CurrentUser(ctx)

	url, objectName, err := s.upload(ctx, req.Image, req.ImageFile)
	if err != nil {
		return res, err
	}

	image := req.ToModel(user, url)

	if err = s.repo.Insert(ctx, image); err != nil {
		log.Error().Err(err).Msg("failed to create hotel image")
		s.removeObject(ctx, objectName)

		return res, fmt.Errorf("failed to create hotel image: %w", err)
	}

	s.invalidate(ctx, constant.Empty)
	res.FromModel(image)

	return res, nil
}

// upload stores the file under the gallery prefix with a random object name.
func (s *serviceImpl) upload(ctx context.Context, header *multipart.FileHeader, file multipart.File) (url, objectName string, err error) {
	objectName = uuid.NewString() + filepath.Ext(header.Filename)

	url, err = s.s3.UploadFile(ctx, s.cfg.External.S3.BucketName, model.EntityName, file, header, objectName)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload hotel image")

		return constant.Empty, constant.Empty, fmt.Errorf("failed to upload image: %w", err)
	}

	return url, objectName, nil
}

func (s *serviceImpl) removeObject(ctx context.Context, objectName string) {
	if objectName == constant.Empty {
		return
	}

	if err := s.s3.DeleteFile(ctx, s.cfg.External.S3.BucketName, model.EntityName, objectName); err != nil {
		log.Warn().Err(err).Str("object", objectName).Msg("failed to remove hotel image object")
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetImagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".gallery.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllImages, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for hotel images")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count hotel images")

		return res, fmt.Errorf("failed to count hotel images: %w", err)
	}

	images, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotel images")

		return res, fmt.Errorf("failed to get hotel images: %w", err)
	}

	res.FromModels(images, total, req.Limit)
	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) GetFeatured(ctx context.Context) (res dto.GetImagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".gallery.GetFeatured")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = s.cache.Get(ctx, cacheFeatured, &res)
	if err == nil {
		return res, nil
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldFeatured, Operator: gDto.FilterOperatorEq, Value: true, Table: model.TableName},
			gDto.Filter{Field: model.FieldActive, Operator: gDto.FilterOperatorEq, Value: true, Table: model.TableName},
		},
	}
	params := gDto.QueryParams{Limit: featuredLimit, SortBy: model.FieldSortOrder, SortDir: gDto.SortDirAsc}

	images, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get featured hotel images")

		return res, fmt.Errorf("failed to get featured hotel images: %w", err)
	}

	res.FromModels(images, len(images), featuredLimit)
	s.save(ctx, cacheFeatured, res)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".gallery.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetImage, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for hotel image")

		return res, nil
	}

	image, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(image)
	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.HotelImage, error) {
	image, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotel image")

		return image, fmt.Errorf("failed to get hotel image: %w", err)
	}

	if image.ID == constant.Empty {
		return image, failure.NotFound("hotel image not found") // nolint:wrapcheck
	}

	return image, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateImageRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".gallery.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.Empty() {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := shared.CurrentUser(ctx)

	current, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	updatedFields := shared.ChangedFields(req, user)
	if req.SortOrder != nil {
		updatedFields[model.FieldSortOrder] = *req.SortOrder
	}

	var objectName string

	if req.Image != nil {
		var url string

		url, objectName, err = s.upload(ctx, req.Image, req.ImageFile)
		if err != nil {
			return err
		}

		updatedFields[model.FieldImageURL] = url
	}

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update hotel image")
		s.removeObject(ctx, objectName)

		return fmt.Errorf("failed to update hotel image: %w", err)
	}

	if objectName != constant.Empty {
		s.removeObject(ctx, s.s3.GetObjectNameFromURL(s.cfg.External.S3.BucketName, current.ImageURL))
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) ToggleFeatured(ctx context.Context, id string) (res dto.ImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".gallery.ToggleFeatured")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.toggle(ctx, id, model.FieldFeatured, func(image *model.HotelImage) bool {
		image.Featured = !image.Featured

		return image.Featured
	})
}

func (s *serviceImpl) ToggleActive(ctx context.Context, id string) (res dto.ImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".gallery.ToggleActive")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.toggle(ctx, id, model.FieldActive, func(image *model.HotelImage) bool {
		image.Active = !image.Active

		return image.Active
	})
}

// toggle flips one boolean column. flip mutates the image and returns the new value.
func (s *serviceImpl) toggle(ctx context.Context, id, field string, flip func(image *model.HotelImage) bool) (res dto.ImageResponse, err error) {
	user, _ := shared.CurrentUser(ctx)

	image, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	now := timezone.Now()
	fields := map[string]any{
		field:                    flip(&image),
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("field", field).Msg("failed to toggle hotel image")

		return res, fmt.Errorf("failed to toggle hotel image: %w", err)
	}

	image.ModifiedAt = now
	image.ModifiedBy = user

	s.invalidate(ctx, id)
	res.FromModel(image)

	return res, nil
}

// Reorder writes every sort order in one transaction so a partial reorder is never visible.
func (s *serviceImpl) Reorder(ctx context.Context, req dto.ReorderRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".gallery.Reorder")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := shared.CurrentUser(ctx)
	now := timezone.Now()

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		for _, item := range req.Images {
			fields := map[string]any{
				model.FieldSortOrder:     item.SortOrder,
				constant.FieldModifiedAt: now,
				constant.FieldModifiedBy: user,
			}

			if err := s.repo.UpdateTx(ctx, tx, fields, shared.FilterByID(item.ID, model.FieldID, model.TableName)); err != nil {
				log.Error().Err(err).Str("image_id", item.ID).Msg("failed to reorder hotel image")

				return fmt.Errorf("failed to reorder hotel image: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return err //nolint:wrapcheck
	}

	go func() {
		c := context.WithoutCancel(ctx)

		for _, item := range req.Images {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetImage, item.ID)); err != nil {
				log.Error().Err(err).Msg("failed to delete hotel image cache")
			}
		}
	}()

	s.invalidate(ctx, constant.Empty)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".gallery.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	image, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete hotel image")

		return fmt.Errorf("failed to delete hotel image: %w", err)
	}

	s.invalidate(ctx, id)

	go func() {
		c := context.WithoutCancel(ctx)

		s.removeObject(c, s.s3.GetObjectNameFromURL(s.cfg.External.S3.BucketName, image.ImageURL))
	}()

	return nil
}

func (s *serviceImpl) save(ctx context.Context, key string, value any) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, key, value, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Str("cacheKey", key).Msg("failed to save hotel images to cache")
		}
	}()
}

// invalidate drops the listing caches, and the single image cache when id is set.
func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetImage, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete hotel image cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllImages)
		shared.InvalidateCaches(c, s.cache, cacheFeatured)
	}()
}
