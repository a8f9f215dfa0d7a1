package seasonalrate

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/seasonalrate/model/dto"
	"hotel/internal/domains/seasonalrate/service"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const queryRoomID = "room_id"

type Handler struct {
	service service.SeasonalRate
	otel    otel.Otel
}

func New(service service.SeasonalRate, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/seasonal-rates", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateSeasonalRate)
		routerGroup.Get("/", handler.GetSeasonalRates)
		routerGroup.Patch("/{id}", handler.UpdateSeasonalRate)
		routerGroup.Delete("/{id}", handler.DeleteSeasonalRate)
	})
}

// CreateSeasonalRate adds a price multiplier for a date range of a room.
// @Summary Create a seasonal rate
// @Tags SeasonalRate
// @Accept json
// @Produce json
// @Param request body dto.CreateSeasonalRateRequest true "Seasonal rate"
// @Success 201 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/seasonal-rates [post]
// @Security BearerAuth
func (handler *Handler) CreateSeasonalRate(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateSeasonalRate")
	defer scope.End()

	req := dto.CreateSeasonalRateRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create seasonal rate")
		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusCreated, "Seasonal rate created successfully")
}

// GetSeasonalRates lists the rates of a room ordered by start date.
// @Summary List seasonal rates of a room
// @Tags SeasonalRate
// @Produce json
// @Param room_id query string true "Room ID"
// @Success 200 {object} response.Data[dto.GetSeasonalRatesResponse]
// @Failure 400 {object} response.Error
// @Router /v1/seasonal-rates [get]
func (handler *Handler) GetSeasonalRates(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSeasonalRates")
	defer scope.End()

	roomID := r.URL.Query().Get(queryRoomID)
	if roomID == constant.Empty {
		response.WithError(w, failure.BadRequestFromString("room_id is required"))

		return
	}

	rates, err := handler.service.GetByRoom(ctx, roomID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get seasonal rates")
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, rates)
}

// UpdateSeasonalRate changes name, period or multiplier.
// @Summary Update a seasonal rate
// @Tags SeasonalRate
// @Accept json
// @Produce json
// @Param id path string true "Seasonal rate ID"
// @Param request body dto.UpdateSeasonalRateRequest true "Fields to change"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/seasonal-rates/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateSeasonalRate(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateSeasonalRate")
	defer scope.End()

	req := dto.UpdateSeasonalRateRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update seasonal rate")
		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Seasonal rate updated successfully")
}

// DeleteSeasonalRate removes a seasonal rate.
// @Summary Delete a seasonal rate
// @Tags SeasonalRate
// @Produce json
// @Param id path string true "Seasonal rate ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/seasonal-rates/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteSeasonalRate(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteSeasonalRate")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete seasonal rate")
		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Seasonal rate deleted successfully")
}
