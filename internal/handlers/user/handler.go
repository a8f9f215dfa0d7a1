package user

import (
	"net/http"
	"net/url"

	"hotel/infras/otel"
	"hotel/internal/domains/user/model"
	"hotel/internal/domains/user/model/dto"
	"hotel/internal/domains/user/service"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.User
	otel    otel.Otel
}

func New(service service.User, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/users", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateUser)
		routerGroup.Get("/", handler.GetUsers)
		routerGroup.Get("/me", handler.GetProfile)
		routerGroup.Patch("/me", handler.UpdateProfile)
		routerGroup.Get("/{id}", handler.GetUserByID)
		routerGroup.Patch("/{id}", handler.UpdateUser)
		routerGroup.Delete("/{id}", handler.DeleteUser)
	})
}

func fail(w http.ResponseWriter, scope otel.Scope, err error, msg string) {
	scope.TraceError(err)

	if failure.Is(err, http.StatusInternalServerError) {
		log.Error().Err(err).Msg(msg)
	}

	response.WithError(w, err)
}

// filterFromQuery supports ?email=, ?role=, ?name= (partial) and ?active=.
func filterFromQuery(query url.Values) (gDto.FilterGroup, error) {
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	add := func(field, operator string, value any) {
		group.Filters = append(group.Filters, gDto.Filter{Field: field, Operator: operator, Value: value, Table: model.TableName})
	}

	if email := query.Get(model.FieldEmail); email != constant.Empty {
		add(model.FieldEmail, gDto.FilterOperatorEq, model.NormalizeEmail(email))
	}

	if role := query.Get(model.FieldRole); role != constant.Empty {
		if err := validator.ValidateVar(role, "oneof=guest staff admin"); err != nil {
			return group, failure.BadRequestf("unknown role %q", role) // nolint:wrapcheck
		}

		add(model.FieldRole, gDto.FilterOperatorEq, role)
	}

	if name := query.Get(model.FieldName); name != constant.Empty {
		add(model.FieldName, gDto.FilterOperatorLike, name)
	}

	if active := shared.ParseOptionalBool(query.Get(model.FieldActive)); active != nil {
		add(model.FieldActive, gDto.FilterOperatorEq, *active)
	}

	return group, nil
}

// CreateUser adds a staff, admin or guest account.
// @Summary Create a user
// @Tags User
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "Account"
// @Success 201 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/users [post]
// @Security BearerAuth
func (handler *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateUser")
	defer scope.End()

	var req dto.CreateUserRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		fail(w, scope, err, "invalid create user request")

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		fail(w, scope, err, "failed to create user")

		return
	}

	response.WithMessage(w, http.StatusCreated, "User created")
}

// GetUsers lists accounts.
// @Summary List users
// @Tags User
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination"
// @Param email query string false "Exact email"
// @Param role query string false "guest, staff or admin"
// @Param name query string false "Name contains"
// @Param active query bool false "Active accounts only"
// @Success 200 {object} response.Data[dto.GetUsersResponse]
// @Failure 400 {object} response.Error
// @Router /v1/users [get]
// @Security BearerAuth
func (handler *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUsers")
	defer scope.End()

	var params gDto.QueryParams
	params.FromRequest(r, true)

	filter, err := filterFromQuery(r.URL.Query())
	if err != nil {
		fail(w, scope, err, "invalid user filter")

		return
	}

	users, err := handler.service.GetAll(ctx, params, filter)
	if err != nil {
		fail(w, scope, err, "failed to list users")

		return
	}

	response.WithJSON(w, http.StatusOK, users)
}

// GetUserByID returns one account.
// @Summary Get a user
// @Tags User
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Data[dto.UserResponse]
// @Failure 404 {object} response.Error
// @Router /v1/users/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUserByID")
	defer scope.End()

	user, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		fail(w, scope, err, "failed to get user")

		return
	}

	response.WithJSON(w, http.StatusOK, user)
}

// UpdateUser changes name, phone, role or active flag of an account.
// @Summary Update a user
// @Tags User
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.UpdateUserRequest true "Changes"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/users/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateUser")
	defer scope.End()

	var req dto.UpdateUserRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		fail(w, scope, err, "invalid update user request")

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		fail(w, scope, err, "failed to update user")

		return
	}

	response.WithMessage(w, http.StatusOK, "User updated")
}

// DeleteUser removes an account that has no bookings.
// @Summary Delete a user
// @Tags User
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/users/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteUser")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		fail(w, scope, err, "failed to delete user")

		return
	}

	response.WithMessage(w, http.StatusOK, "User deleted")
}

// GetProfile returns the caller's own account.
// @Summary Get my profile
// @Tags User
// @Produce json
// @Success 200 {object} response.Data[dto.UserResponse]
// @Failure 401 {object} response.Error
// @Router /v1/users/me [get]
// @Security BearerAuth
func (handler *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProfile")
	defer scope.End()

	userID, _ := shared.CurrentUser(ctx)

	user, err := handler.service.Get(ctx, userID)
	if err != nil {
		fail(w, scope, err, "failed to get profile")

		return
	}

	response.WithJSON(w, http.StatusOK, user)
}

// UpdateProfile updates the caller's name and phone.
// @Summary Update my profile
// @Tags User
// @Accept json
// @Produce json
// @Param request body dto.UpdateProfileRequest true "Profile"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Router /v1/users/me [patch]
// @Security BearerAuth
func (handler *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateProfile")
	defer scope.End()

	var req dto.UpdateProfileRequest

	if err := validator.Validate(r.Body, &req); err != nil {
		fail(w, scope, err, "invalid profile update")

		return
	}

	if err := handler.service.UpdateProfile(ctx, req); err != nil {
		fail(w, scope, err, "failed to update profile")

		return
	}

	response.WithMessage(w, http.StatusOK, "Profile updated")
}
