package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"testing"
	"time"

	"hotel/config"
	"hotel/infras/otel/mocks"
	s3Mocks "hotel/infras/s3/mocks"
	galleryMocks "hotel/internal/domains/gallery/mocks"
	"hotel/internal/domains/gallery/model"
	"hotel/internal/domains/gallery/model/dto"
	"hotel/internal/domains/gallery/service"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/transaction"
	txMocks "hotel/shared/transaction/mocks"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo  *galleryMocks.MockGallery
	tx    *txMocks.MockTransactor
	cache *cacheMocks.MockRedisCache
	s3    *s3Mocks.MockS3
	svc   service.Gallery
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 60
	cfg.External.S3.BucketName = "hotel"

	f := fixture{
		repo:  galleryMocks.NewMockGallery(ctrl),
		tx:    txMocks.NewMockTransactor(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		s3:    s3Mocks.NewMockS3(ctrl),
	}
	f.svc = service.New(f.repo, f.tx, cfg, f.cache, mocks.NewOtel(), f.s3)

	f.tx.EXPECT().WithinTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn transaction.TxFunc) error {
			return fn(ctx, nil)
		}).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func userContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
}

func TestGalleryService_Create(t *testing.T) {
	image := &multipart.FileHeader{Filename: "pool.webp"}

	tests := []struct {
		name     string
		setup    func(f fixture)
		wantCode int
	}{
		{
			name: "uploads then stores the image",
			setup: func(f fixture) {
				f.s3.EXPECT().
					UploadFile(gomock.Any(), "hotel", model.EntityName, gomock.Any(), image, gomock.Any()).
					DoAndReturn(func(_ context.Context, _, _ string, _ multipart.File, _ *multipart.FileHeader, name string) (string, error) {
						assert.Regexp(t, `^[0-9a-f-]{36}\.webp$`, name)

						return "https://cdn.example/gallery/" + name, nil
					})
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, img model.HotelImage) error {
					assert.Contains(t, img.ImageURL, "https://cdn.example/gallery/")
					assert.True(t, img.Active)
					assert.Equal(t, "admin-1", img.CreatedBy)

					return nil
				})
			},
		},
		{
			name: "upload failure stores nothing",
			setup: func(f fixture) {
				f.s3.EXPECT().UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", errors.New("s3 down"))
			},
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "object is removed when insert fails",
			setup: func(f fixture) {
				f.s3.EXPECT().UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("https://cdn.example/gallery/x.webp", nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
				f.s3.EXPECT().DeleteFile(gomock.Any(), "hotel", model.EntityName, gomock.Any()).Return(nil)
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			req := dto.CreateImageRequest{Title: "Infinity Pool", Category: model.CategoryFacilities, Image: image}

			res, err := f.svc.Create(userContext(), req)
			time.Sleep(10 * time.Millisecond)

			if tt.wantCode == 0 {
				require.NoError(t, err)
				assert.Equal(t, "Infinity Pool", res.Title)
				assert.Equal(t, "Infinity Pool", res.AltText)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestGalleryService_GetAll(t *testing.T) {
	params := gDto.QueryParams{Page: 1, Limit: 10}

	t.Run("cache hit skips the repository", func(t *testing.T) {
		f := newFixture(t)
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.svc.GetAll(context.Background(), params, gDto.FilterGroup{})
		require.NoError(t, err)
	})

	t.Run("loads from the repository on miss", func(t *testing.T) {
		f := newFixture(t)
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(11, nil)
		f.repo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).Return([]model.HotelImage{
			{ID: "g1", Title: "Lobby"},
			{ID: "g2", Title: "Spa"},
		}, nil)

		res, err := f.svc.GetAll(context.Background(), params, gDto.FilterGroup{})
		require.NoError(t, err)
		assert.Equal(t, 11, res.TotalData)
		assert.Equal(t, 2, res.TotalPage)
		assert.Len(t, res.Images, 2)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("count error", func(t *testing.T) {
		f := newFixture(t)
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("db down"))

		_, err := f.svc.GetAll(context.Background(), params, gDto.FilterGroup{})
		assert.Error(t, err)
	})
}

func TestGalleryService_GetFeatured(t *testing.T) {
	f := newFixture(t)
	f.cache.EXPECT().Get(gomock.Any(), "gallery:featured", gomock.Any()).Return(errors.New("miss"))
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.HotelImage, error) {
			assert.Equal(t, model.FieldSortOrder, params.SortBy)
			assert.Equal(t, gDto.SortDirAsc, params.SortDir)

			where, args := filter.GetWhereClause()
			assert.Contains(t, where, model.FieldFeatured)
			assert.Contains(t, where, model.FieldActive)
			assert.Equal(t, true, args[model.FieldFeatured])

			return []model.HotelImage{{ID: "g1", Featured: true, Active: true}}, nil
		})

	res, err := f.svc.GetFeatured(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.True(t, res.Images[0].Featured)

	time.Sleep(10 * time.Millisecond)
}

func TestGalleryService_Get(t *testing.T) {
	t.Run("cache hit skips the repository", func(t *testing.T) {
		f := newFixture(t)
		f.cache.EXPECT().Get(gomock.Any(), "gallery:get:g1", gomock.Any()).Return(nil)

		_, err := f.svc.Get(context.Background(), "g1")
		require.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.HotelImage{}, nil)

		_, err := f.svc.Get(context.Background(), "g1")
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestGalleryService_Update(t *testing.T) {
	t.Run("replaces the image and removes the old object", func(t *testing.T) {
		f := newFixture(t)
		image := &multipart.FileHeader{Filename: "new.jpg"}
		order := 0

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.HotelImage{ID: "g1", ImageURL: "https://cdn.example/gallery/old.jpg"}, nil)
		f.s3.EXPECT().UploadFile(gomock.Any(), "hotel", model.EntityName, gomock.Any(), image, gomock.Any()).
			Return("https://cdn.example/gallery/new.jpg", nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, "https://cdn.example/gallery/new.jpg", fields[model.FieldImageURL])
				assert.Equal(t, 0, fields[model.FieldSortOrder])

				return nil
			})
		f.s3.EXPECT().GetObjectNameFromURL("hotel", "https://cdn.example/gallery/old.jpg").Return("old.jpg")
		f.s3.EXPECT().DeleteFile(gomock.Any(), "hotel", model.EntityName, "old.jpg").Return(nil)

		err := f.svc.Update(userContext(), dto.UpdateImageRequest{SortOrder: &order, Image: image}, "g1")
		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("empty request", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.Update(userContext(), dto.UpdateImageRequest{}, "g1")
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.HotelImage{}, nil)

		err := f.svc.Update(userContext(), dto.UpdateImageRequest{Title: "Spa"}, "g1")
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestGalleryService_Toggle(t *testing.T) {
	tests := []struct {
		name   string
		field  string
		toggle func(svc service.Gallery) (dto.ImageResponse, error)
		check  func(res dto.ImageResponse)
	}{
		{
			name:  "featured",
			field: model.FieldFeatured,
			toggle: func(svc service.Gallery) (dto.ImageResponse, error) {
				return svc.ToggleFeatured(userContext(), "g1")
			},
			check: func(res dto.ImageResponse) { assert.True(t, res.Featured) },
		},
		{
			name:  "active",
			field: model.FieldActive,
			toggle: func(svc service.Gallery) (dto.ImageResponse, error) {
				return svc.ToggleActive(userContext(), "g1")
			},
			check: func(res dto.ImageResponse) { assert.False(t, res.Active) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.HotelImage{ID: "g1", Active: true}, nil)
			f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
					assert.Len(t, fields, 3)
					assert.Contains(t, fields, tt.field)
					assert.Equal(t, "admin-1", fields[constant.FieldModifiedBy])

					return nil
				})

			res, err := tt.toggle(f.svc)
			require.NoError(t, err)
			tt.check(res)
			assert.Equal(t, "admin-1", res.ModifiedBy)

			time.Sleep(10 * time.Millisecond)
		})
	}
}

func TestGalleryService_Reorder(t *testing.T) {
	req := dto.ReorderRequest{Images: []dto.ReorderItem{{ID: "g1", SortOrder: 2}, {ID: "g2", SortOrder: 1}}}

	t.Run("updates every image in one transaction", func(t *testing.T) {
		f := newFixture(t)

		var orders []int

		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(2).DoAndReturn(
			func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
				orders = append(orders, fields[model.FieldSortOrder].(int))

				return nil
			})

		require.NoError(t, f.svc.Reorder(userContext(), req))
		assert.Equal(t, []int{2, 1}, orders)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("stops at the first failure", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		assert.Error(t, f.svc.Reorder(userContext(), req))
	})
}

func TestGalleryService_Delete(t *testing.T) {
	t.Run("removes the row and the object", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.HotelImage{ID: "g1", ImageURL: "https://cdn.example/gallery/a.jpg"}, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
		f.s3.EXPECT().GetObjectNameFromURL("hotel", "https://cdn.example/gallery/a.jpg").Return("a.jpg")
		f.s3.EXPECT().DeleteFile(gomock.Any(), "hotel", model.EntityName, "a.jpg").Return(nil)

		require.NoError(t, f.svc.Delete(userContext(), "g1"))

		time.Sleep(20 * time.Millisecond)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.HotelImage{}, nil)

		err := f.svc.Delete(userContext(), "g1")
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
