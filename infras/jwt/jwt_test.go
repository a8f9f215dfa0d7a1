package jwt_test

import (
	"context"
	"testing"

	"hotel/config"
	"hotel/infras/jwt"
	"hotel/infras/otel/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() jwt.JWT {
	cfg := &config.Config{}
	cfg.App.Name = "hotel"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	return jwt.New(cfg, mocks.NewOtel())
}

func TestJWT_GenerateAndValidate(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	pair, err := svc.GenerateTokenPair(ctx, "user-1", "guest@example.com", "guest")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(15*60), pair.ExpiresIn)

	claims, err := svc.ValidateToken(ctx, pair.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "guest@example.com", claims.Email)
	assert.Equal(t, "guest", claims.Role)
}

func TestJWT_ValidateRejects(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	pair, err := svc.GenerateTokenPair(ctx, "user-1", "guest@example.com", "guest")
	require.NoError(t, err)

	tests := []struct {
		name      string
		token     string
		tokenType jwt.TokenType
		wantErr   error
	}{
		{
			name:      "refresh token used as access token",
			token:     pair.RefreshToken,
			tokenType: jwt.AccessToken,
			wantErr:   jwt.ErrInvalidToken,
		},
		{
			name:      "garbage",
			token:     "not-a-token",
			tokenType: jwt.AccessToken,
			wantErr:   jwt.ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateToken(ctx, tt.token, tt.tokenType)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestJWT_RefreshTokens(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	pair, err := svc.GenerateTokenPair(ctx, "user-1", "guest@example.com", "admin")
	require.NoError(t, err)

	refreshed, err := svc.RefreshTokens(ctx, pair.RefreshToken)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(ctx, refreshed.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)

	_, err = svc.RefreshTokens(ctx, pair.AccessToken)
	assert.Error(t, err)
}

func TestJWT_ValidateIssuerAndExpiry(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	pair, err := svc.GenerateTokenPair(ctx, "user-1", "guest@example.com", "guest")
	require.NoError(t, err)

	other := &config.Config{}
	other.App.Name = "another-app"
	other.JWT.AccessSecret = "access-secret"
	other.JWT.RefreshSecret = "refresh-secret"

	_, err = jwt.New(other, mocks.NewOtel()).ValidateToken(ctx, pair.AccessToken, jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	expired := &config.Config{}
	expired.App.Name = "hotel"
	expired.JWT.AccessSecret = "access-secret"
	expired.JWT.AccessExpireMin = -5

	stale, err := jwt.New(expired, mocks.NewOtel()).GenerateTokenPair(ctx, "user-1", "guest@example.com", "guest")
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, stale.AccessToken, jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrExpiredToken)
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{header: "Bearer abc.def", want: "abc.def"},
		{header: "bearer  abc.def ", want: "abc.def"},
		{header: "Basic abc", wantErr: true},
		{header: "Bearer", wantErr: true},
		{header: "Bearer   ", wantErr: true},
		{header: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, err := jwt.ExtractTokenFromHeader(tt.header)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
