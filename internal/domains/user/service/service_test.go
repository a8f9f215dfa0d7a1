package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"hotel/config"
	otelMocks "hotel/infras/otel/mocks"
	"hotel/internal/domains/user/mocks"
	"hotel/internal/domains/user/model"
	"hotel/internal/domains/user/model/dto"
	"hotel/internal/domains/user/service"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo  *mocks.MockUser
	cache *cacheMocks.MockRedisCache
	svc   service.User
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := fixture{
		repo:  mocks.NewMockUser(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, cfg, f.cache, otelMocks.NewOtel())

	return f
}

func actingAs(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func TestUser_Create(t *testing.T) {
	req := dto.CreateUserRequest{Name: "Front Desk", Email: " Desk@Hotel.lk", Password: "frontdesk1", Role: constant.RoleStaff}

	tests := []struct {
		name     string
		req      dto.CreateUserRequest
		mock     func(f fixture)
		wantCode int
	}{
		{
			name: "created with normalized email",
			req:  req,
			mock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, user model.User) error {
					assert.Equal(t, "desk@hotel.lk", user.Email)
					assert.Equal(t, constant.RoleStaff, user.Role)
					assert.NotEqual(t, "frontdesk1", user.Password)
					assert.Equal(t, "admin-1", user.CreatedBy)

					return nil
				})
			},
		},
		{
			name:     "weak password",
			req:      dto.CreateUserRequest{Name: "x", Email: "x@hotel.lk", Password: "password"},
			mock:     func(fixture) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "email taken",
			req:  req,
			mock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "lost race on unique index",
			req:  req,
			mock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})
			},
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.mock(f)

			err := f.svc.Create(actingAs("admin-1", constant.RoleAdmin), tt.req)

			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestUser_Get(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), "user:get:u-1", gomock.Any()).Return(errors.New("redis: nil"))
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: "u-1", Name: "Amaya", Role: constant.RoleGuest}, nil)

	got, err := f.svc.Get(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "Amaya", got.Name)

	f.cache.EXPECT().Get(gomock.Any(), "user:get:missing", gomock.Any()).Return(errors.New("redis: nil"))
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)

	_, err = f.svc.Get(context.Background(), "missing")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestUser_Update(t *testing.T) {
	inactive := false

	tests := []struct {
		name     string
		id       string
		req      dto.UpdateUserRequest
		mock     func(f fixture)
		wantCode int
	}{
		{
			name: "staff deactivates a guest",
			id:   "guest-1",
			req:  dto.UpdateUserRequest{Active: &inactive},
			mock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, &inactive, fields[model.FieldActive])
						assert.Equal(t, "admin-1", fields[constant.FieldModifiedBy])

						return nil
					})
			},
		},
		{
			name:     "empty request",
			id:       "guest-1",
			mock:     func(fixture) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "cannot deactivate self",
			id:       "admin-1",
			req:      dto.UpdateUserRequest{Active: &inactive},
			mock:     func(fixture) {},
			wantCode: http.StatusForbidden,
		},
		{
			name:     "cannot demote self",
			id:       "admin-1",
			req:      dto.UpdateUserRequest{Role: constant.RoleGuest},
			mock:     func(fixture) {},
			wantCode: http.StatusForbidden,
		},
		{
			name: "unknown user",
			id:   "ghost",
			req:  dto.UpdateUserRequest{Name: "Ghost"},
			mock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.mock(f)

			err := f.svc.Update(actingAs("admin-1", constant.RoleAdmin), tt.req, tt.id)

			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestUser_Delete(t *testing.T) {
	t.Run("self", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.Delete(actingAs("admin-1", constant.RoleAdmin), "admin-1")
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("guest with bookings", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeFkViolation})

		err := f.svc.Delete(actingAs("admin-1", constant.RoleAdmin), "guest-1")
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("deleted", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, f.svc.Delete(actingAs("admin-1", constant.RoleAdmin), "guest-1"))
	})
}

func TestUser_UpdateProfileRequiresCaller(t *testing.T) {
	f := newFixture(t)

	err := f.svc.UpdateProfile(context.Background(), dto.UpdateProfileRequest{Name: "Amaya"})
	assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
}
