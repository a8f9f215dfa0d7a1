package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"hotel/config"
	"hotel/infras/jwt"
	jwtMocks "hotel/infras/jwt/mocks"
	"hotel/infras/otel/mocks"
	"hotel/internal/domains/auth/model/dto"
	"hotel/internal/domains/auth/service"
	userMocks "hotel/internal/domains/user/mocks"
	userModel "hotel/internal/domains/user/model"
	"hotel/shared/constant"
	"hotel/shared/failure"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// bcrypt of "password"
const storedHash = "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi"

type fixture struct {
	users *userMocks.MockUser
	jwt   *jwtMocks.MockJWT
	svc   service.Auth
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	users := userMocks.NewMockUser(ctrl)
	tokens := jwtMocks.NewMockJWT(ctrl)

	return fixture{
		users: users,
		jwt:   tokens,
		svc:   service.New(users, &config.Config{}, mocks.NewOtel(), tokens),
	}
}

func guest() userModel.User {
	phone := "+94771234567"

	return userModel.User{
		ID:       "9a3c4f7e-2b1d-4e8a-9c6f-1d2e3f4a5b6c",
		Name:     "Amaya Silva",
		Email:    "amaya@example.com",
		Phone:    &phone,
		Password: storedHash,
		Role:     constant.RoleGuest,
		Active:   true,
		Metadata: gModel.NewMetadata("system", timezone.Now()),
	}
}

func TestAuthService_Login(t *testing.T) {
	tokens := &jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"}

	tests := []struct {
		name     string
		password string
		setup    func(f fixture)
		code     int
	}{
		{
			name:     "valid credentials",
			password: "password",
			setup: func(f fixture) {
				u := guest()
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(u, nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), u.ID, u.Email, u.Role).Return(tokens, nil)
				f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:     "last login not recorded",
			password: "password",
			setup: func(f fixture) {
				u := guest()
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(u, nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), u.ID, u.Email, u.Role).Return(tokens, nil)
				f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))
			},
		},
		{
			name:     "unknown email",
			password: "password",
			setup: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			code: http.StatusUnauthorized,
		},
		{
			name:     "wrong password",
			password: "letmein123",
			setup: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(guest(), nil)
			},
			code: http.StatusUnauthorized,
		},
		{
			name:     "deactivated account",
			password: "password",
			setup: func(f fixture) {
				u := guest()
				u.Active = false
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(u, nil)
			},
			code: http.StatusForbidden,
		},
		{
			name:     "token signing fails",
			password: "password",
			setup: func(f fixture) {
				u := guest()
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(u, nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), u.ID, u.Email, u.Role).Return(nil, errors.New("no signing key"))
			},
			code: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			res, err := f.svc.Login(context.Background(), dto.LoginRequest{Email: "Amaya@Example.com ", Password: tt.password})

			if tt.code != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.code, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "access-token", res.AccessToken)
			assert.Equal(t, constant.RoleGuest, res.Role)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	t.Run("rotates the pair", func(t *testing.T) {
		f := newFixture(t)
		f.jwt.EXPECT().RefreshTokens(gomock.Any(), "refresh-1").
			Return(&jwt.TokenPair{AccessToken: "access-2", RefreshToken: "refresh-2"}, nil)

		res, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh-1"})

		require.NoError(t, err)
		assert.Equal(t, "refresh-2", res.RefreshToken)
	})

	t.Run("revoked token", func(t *testing.T) {
		f := newFixture(t)
		f.jwt.EXPECT().RefreshTokens(gomock.Any(), "refresh-1").Return(nil, errors.New("token revoked"))

		_, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh-1"})

		assert.True(t, failure.Is(err, http.StatusUnauthorized))
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	tests := []struct {
		name  string
		req   dto.ChangePasswordRequest
		setup func(f fixture)
		code  int
	}{
		{
			name: "changed",
			req:  dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "seaview2025"},
			setup: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(guest(), nil)
				f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "account gone",
			req:  dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "seaview2025"},
			setup: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			code: http.StatusNotFound,
		},
		{
			name: "wrong current password",
			req:  dto.ChangePasswordRequest{CurrentPassword: "guessed01", NewPassword: "seaview2025"},
			setup: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(guest(), nil)
			},
			code: http.StatusBadRequest,
		},
		{
			name: "weak new password",
			req:  dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "seaviewseaview"},
			setup: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(guest(), nil)
			},
			code: http.StatusBadRequest,
		},
		{
			name: "lookup fails",
			req:  dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "seaview2025"},
			setup: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, errors.New("connection reset"))
			},
			code: http.StatusInternalServerError,
		},
		{
			name: "update fails",
			req:  dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "seaview2025"},
			setup: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(guest(), nil)
				f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))
			},
			code: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			err := f.svc.ChangePassword(context.Background(), tt.req, guest().ID)

			if tt.code == 0 {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, tt.code, failure.GetCode(err))
		})
	}
}

func TestAuthService_Register(t *testing.T) {
	req := dto.RegisterRequest{Name: "Nimal Perera", Email: "Nimal@Example.com", Password: "password123"}

	t.Run("registers a guest", func(t *testing.T) {
		f := newFixture(t)
		f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.users.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user userModel.User) error {
				assert.Equal(t, constant.RoleGuest, user.Role)
				assert.Equal(t, "nimal@example.com", user.Email)
				assert.NotEqual(t, "password123", user.Password)

				return nil
			})

		assert.NoError(t, f.svc.Register(context.Background(), req))
	})

	t.Run("duplicate email", func(t *testing.T) {
		f := newFixture(t)
		f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		assert.Equal(t, http.StatusConflict, failure.GetCode(f.svc.Register(context.Background(), req)))
	})

	t.Run("weak password never reaches the store", func(t *testing.T) {
		f := newFixture(t)
		weak := req
		weak.Password = "onlyletters"

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(f.svc.Register(context.Background(), weak)))
	})
}
