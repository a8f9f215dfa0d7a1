package auth

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/auth/model/dto"
	"hotel/internal/domains/auth/service"
	"hotel/shared"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Auth
	otel    otel.Otel
}

func New(service service.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", handler.Register)
		r.Post("/login", handler.Login)
		r.Post("/refresh-token", handler.RefreshToken)
		r.Post("/change-password", handler.ChangePassword)
	})
}

// reject answers with err. Client mistakes such as a wrong password are expected
// traffic on these routes and only logged at debug.
func reject(w http.ResponseWriter, scope otel.Scope, err error, action string) {
	scope.TraceError(err)

	if failure.Is(err, http.StatusInternalServerError) {
		log.Error().Err(err).Msg(action)
	} else {
		log.Debug().Err(err).Msg(action)
	}

	response.WithError(w, err)
}

// Register creates a guest account.
// @Summary Register a guest account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Guest details"
// @Success 201 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/auth/register [post]
func (handler *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Register")
	defer scope.End()

	var req dto.RegisterRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		reject(w, scope, err, "invalid registration request")

		return
	}

	if err := handler.service.Register(ctx, req); err != nil {
		reject(w, scope, err, "failed to register guest")

		return
	}

	response.WithMessage(w, http.StatusCreated, "Account created")
}

// Login exchanges email and password for a token pair.
// @Summary Login
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} response.Data[dto.LoginResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /v1/auth/login [post]
func (handler *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Login")
	defer scope.End()

	var req dto.LoginRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		reject(w, scope, err, "invalid login request")

		return
	}

	res, err := handler.service.Login(ctx, req)
	if err != nil {
		reject(w, scope, err, "login failed")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// RefreshToken issues a new token pair for a valid refresh token.
// @Summary Refresh tokens
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} response.Data[dto.RefreshTokenResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /v1/auth/refresh-token [post]
func (handler *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RefreshToken")
	defer scope.End()

	var req dto.RefreshTokenRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		reject(w, scope, err, "invalid refresh request")

		return
	}

	res, err := handler.service.RefreshToken(ctx, req)
	if err != nil {
		reject(w, scope, err, "token refresh failed")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// ChangePassword replaces the caller's password after checking the current one.
// @Summary Change password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /v1/auth/change-password [post]
// @Security BearerAuth
func (handler *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ChangePassword")
	defer scope.End()

	var req dto.ChangePasswordRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		reject(w, scope, err, "invalid change password request")

		return
	}

	userID, _ := shared.CurrentUser(ctx)

	if err := handler.service.ChangePassword(ctx, req, userID); err != nil {
		reject(w, scope, err, "failed to change password")

		return
	}

	response.WithMessage(w, http.StatusOK, "Password changed")
}
