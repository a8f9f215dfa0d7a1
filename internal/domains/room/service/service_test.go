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
	roomMocks "hotel/internal/domains/room/mocks"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/service"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo  *roomMocks.MockRoom
	cache *cacheMocks.MockRedisCache
	s3    *s3Mocks.MockS3
	svc   service.Room
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 60
	cfg.External.S3.BucketName = "hotel"

	f := fixture{
		repo:  roomMocks.NewMockRoom(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		s3:    s3Mocks.NewMockS3(ctrl),
	}
	f.svc = service.New(f.repo, cfg, f.cache, mocks.NewOtel(), f.s3)

	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func userContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
}

func TestRoomService_Create(t *testing.T) {
	image := &multipart.FileHeader{Filename: "deluxe.png"}

	tests := []struct {
		name     string
		req      dto.CreateRoomRequest
		setup    func(f fixture)
		wantCode int
	}{
		{
			name: "creates an available room by default",
			req: dto.CreateRoomRequest{
				Number:    "101",
				Name:      "Deluxe",
				Type:      "double",
				BasePrice: decimal.RequireFromString("250.005"),
				Capacity:  2,
			},
			setup: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, room model.Room) error {
					assert.Equal(t, model.StatusAvailable, room.Status)
					assert.Equal(t, "250.01", room.BasePrice.StringFixed(2))
					assert.Equal(t, "admin-1", room.CreatedBy)

					return nil
				})
			},
		},
		{
			name: "duplicate number",
			req:  dto.CreateRoomRequest{Number: "101", Name: "Deluxe", Type: "double", Capacity: 2},
			setup: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "uploaded image is removed when insert fails",
			req:  dto.CreateRoomRequest{Number: "102", Name: "Suite", Type: "suite", Capacity: 4, Image: image},
			setup: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.s3.EXPECT().
					UploadFile(gomock.Any(), "hotel", model.EntityName, gomock.Any(), image, gomock.Any()).
					Return("https://cdn.example/room/x.png", nil)
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

			err := f.svc.Create(userContext(), tt.req)
			time.Sleep(10 * time.Millisecond)

			if tt.wantCode == 0 {
				require.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestRoomService_Get(t *testing.T) {
	t.Run("cache hit skips the repository", func(t *testing.T) {
		f := newFixture(t)
		f.cache.EXPECT().Get(gomock.Any(), "room:get:r1", gomock.Any()).Return(nil)

		_, err := f.svc.Get(context.Background(), "r1")
		require.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

		_, err := f.svc.Get(context.Background(), "r1")
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("found", func(t *testing.T) {
		f := newFixture(t)
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{
			ID:        "r1",
			Number:    "101",
			BasePrice: decimal.NewFromInt(100),
			Amenities: []string{"wifi"},
		}, nil)

		res, err := f.svc.Get(context.Background(), "r1")
		require.NoError(t, err)
		assert.Equal(t, "101", res.Number)
		assert.Equal(t, []string{"wifi"}, res.Amenities)

		time.Sleep(10 * time.Millisecond)
	})
}

func TestRoomService_Update(t *testing.T) {
	t.Run("replaces the image and removes the old one", func(t *testing.T) {
		f := newFixture(t)
		image := &multipart.FileHeader{Filename: "new.jpg"}

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{ID: "r1", Image: "https://cdn.example/room/old.jpg"}, nil)
		f.s3.EXPECT().UploadFile(gomock.Any(), "hotel", model.EntityName, gomock.Any(), image, gomock.Any()).
			Return("https://cdn.example/room/new.jpg", nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, "https://cdn.example/room/new.jpg", fields[model.FieldImage])
				assert.Equal(t, model.StatusMaintenance, fields[model.FieldStatus])

				return nil
			})
		f.s3.EXPECT().GetObjectNameFromURL("hotel", "https://cdn.example/room/old.jpg").Return("old.jpg")
		f.s3.EXPECT().DeleteFile(gomock.Any(), "hotel", model.EntityName, "old.jpg").Return(nil)

		err := f.svc.Update(userContext(), dto.UpdateRoomRequest{Status: model.StatusMaintenance, Image: image}, "r1")
		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

		err := f.svc.Update(userContext(), dto.UpdateRoomRequest{Name: "x"}, "r1")
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("empty request", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.Update(userContext(), dto.UpdateRoomRequest{}, "r1")
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestRoomService_Delete(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

		err := f.svc.Delete(userContext(), "missing")
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("room with bookings", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{ID: "r1"}, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeFkViolation})

		err := f.svc.Delete(userContext(), "r1")
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("image removed with the room", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{ID: "r1", Image: "https://cdn.example/room/r1.jpg"}, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
		f.s3.EXPECT().GetObjectNameFromURL("hotel", "https://cdn.example/room/r1.jpg").Return("r1.jpg")
		f.s3.EXPECT().DeleteFile(gomock.Any(), "hotel", model.EntityName, "r1.jpg").Return(nil)

		require.NoError(t, f.svc.Delete(userContext(), "r1"))

		time.Sleep(10 * time.Millisecond)
	})
}

func TestRoom_Bookable(t *testing.T) {
	assert.True(t, model.Room{Status: model.StatusAvailable}.Bookable())
	assert.False(t, model.Room{Status: model.StatusMaintenance}.Bookable())
}
