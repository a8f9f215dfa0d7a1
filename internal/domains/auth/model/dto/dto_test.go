package dto_test

import (
	"testing"

	"hotel/infras/jwt"
	"hotel/internal/domains/auth/model/dto"
	"hotel/shared/constant"

	"github.com/stretchr/testify/assert"
)

func TestLoginResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		ExpiresIn:    900,
	}

	var response dto.LoginResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, int64(900), response.ExpiresIn)
}

func TestRefreshTokenResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "new-access-token",
		RefreshToken: "new-refresh-token",
	}

	var response dto.RefreshTokenResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
}

func TestRegisterRequest_ToUserModel(t *testing.T) {
	phone := "+94771234567"
	req := dto.RegisterRequest{
		Name:     "Nimal Perera",
		Email:    "nimal@example.com",
		Phone:    &phone,
		Password: "ignored",
	}

	user := req.ToUserModel(constant.ContextGuest, "hashed")

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "hashed", user.Password)
	assert.Equal(t, constant.RoleGuest, user.Role)
	assert.True(t, user.Active)
	assert.True(t, user.HasPhone())
	assert.Equal(t, constant.ContextGuest, user.CreatedBy)
}
