package jwt

//go:generate go run go.uber.org/mock/mockgen -source=./jwt.go -destination=./mocks/jwt_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/shared/timezone"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	otelScopeName = "jwt"
	bearerScheme  = "Bearer"
	clockSkew     = 30 * time.Second
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidClaim = errors.New("invalid token claim")
)

// TokenType separates access from refresh tokens. Each type is signed with its own secret.
type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// Claims identify the authenticated user. Subject and ID of the registered
// claims mirror UserID and TokenID.
type Claims struct {
	UserID  string    `json:"user_id"`
	Email   string    `json:"email"`
	Role    string    `json:"role,omitempty"`
	TokenID string    `json:"token_id"`
	Type    TokenType `json:"type"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

type JWT interface {
	GenerateTokenPair(ctx context.Context, userID, email, role string) (*TokenPair, error)
	ValidateToken(ctx context.Context, tokenString string, tokenType TokenType) (*Claims, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*TokenPair, error)
}

type Service struct {
	config *config.Config
	otel   otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) JWT {
	return &Service{
		config: cfg,
		otel:   otel,
	}
}

func (s *Service) secret(tokenType TokenType) ([]byte, error) {
	switch tokenType {
	case AccessToken:
		return []byte(s.config.JWT.AccessSecret), nil
	case RefreshToken:
		return []byte(s.config.JWT.RefreshSecret), nil
	}

	return nil, fmt.Errorf("unknown token type %q", tokenType)
}

func (s *Service) lifetime(tokenType TokenType) time.Duration {
	if tokenType == RefreshToken {
		return time.Duration(s.config.JWT.RefreshExpireMin) * time.Minute
	}

	return time.Duration(s.config.JWT.AccessExpireMin) * time.Minute
}

func (s *Service) GenerateTokenPair(ctx context.Context, userID, email, role string) (_ *TokenPair, err error) {
	_, scope := s.otel.NewScope(ctx, otelScopeName, otelScopeName+".GenerateTokenPair")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	now := timezone.Now()
	pair := &TokenPair{
		TokenType: bearerScheme,
		ExpiresIn: int64(s.lifetime(AccessToken).Seconds()),
	}

	if pair.AccessToken, err = s.sign(userID, email, role, AccessToken, now); err != nil {
		return nil, err
	}

	if pair.RefreshToken, err = s.sign(userID, email, role, RefreshToken, now); err != nil {
		return nil, err
	}

	return pair, nil
}

func (s *Service) sign(userID, email, role string, tokenType TokenType, issuedAt time.Time) (string, error) {
	secret, err := s.secret(tokenType)
	if err != nil {
		return "", err
	}

	tokenID := uuid.NewString()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:  userID,
		Email:   email,
		Role:    role,
		TokenID: tokenID,
		Type:    tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.App.Name,
			Subject:   userID,
			ID:        tokenID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.lifetime(tokenType))),
		},
	})

	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}

	return signed, nil
}

// ValidateToken accepts only HS256 tokens issued by this service for tokenType.
func (s *Service) ValidateToken(ctx context.Context, tokenString string, tokenType TokenType) (_ *Claims, err error) {
	_, scope := s.otel.NewScope(ctx, otelScopeName, otelScopeName+".ValidateToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	secret, err := s.secret(tokenType)
	if err != nil {
		return nil, err
	}

	claims := &Claims{}

	_, err = jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.config.App.Name),
		jwt.WithLeeway(clockSkew),
		jwt.WithTimeFunc(timezone.Now),
	)

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case err != nil:
		return nil, ErrInvalidToken
	case claims.Type != tokenType || claims.UserID == "":
		return nil, ErrInvalidClaim
	}

	return claims, nil
}

func (s *Service) RefreshTokens(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.ValidateToken(ctx, refreshToken, RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	return s.GenerateTokenPair(ctx, claims.UserID, claims.Email, claims.Role)
}

// ExtractTokenFromHeader returns the credentials of a "Bearer <token>" Authorization header.
func ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", errors.New("authorization header is required")
	}

	scheme, token, found := strings.Cut(strings.TrimSpace(authHeader), " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", fmt.Errorf("authorization header must use the %s scheme", bearerScheme)
	}

	if token = strings.TrimSpace(token); token == "" {
		return "", errors.New("bearer token is empty")
	}

	return token, nil
}
