package room

import (
	"net/http"

	"hotel/internal/domains/roomavailability/model/dto"
	"hotel/shared/constant"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
)

// GetRoomAvailability lists the dated entries of a room. Public.
// @Summary Get a room's availability calendar
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Data[dto.GetAvailabilitiesResponse]
// @Router /v1/rooms/{id}/availability [get]
func (handler *Handler) GetRoomAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomAvailability")
	defer scope.End()

	res, err := handler.availability.GetByRoom(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		fail(w, scope, err, "failed to get room availability")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// SetRoomAvailability replaces a room's calendar. Blocked dates cannot be booked.
// @Summary Replace a room's availability calendar
// @Tags Room
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body dto.SetAvailabilityRequest true "Dated entries"
// @Success 200 {object} response.Data[dto.GetAvailabilitiesResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/rooms/{id}/availability [put]
// @Security BearerAuth
func (handler *Handler) SetRoomAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetRoomAvailability")
	defer scope.End()

	var req dto.SetAvailabilityRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		fail(w, scope, err, "invalid room availability")

		return
	}

	res, err := handler.availability.Replace(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		fail(w, scope, err, "failed to set room availability")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateRoomAvailability changes the date or status of one entry.
// @Summary Update a room availability entry
// @Tags Room
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param availabilityID path string true "Availability ID"
// @Param request body dto.UpdateAvailabilityRequest true "Entry"
// @Success 200 {object} response.Data[dto.AvailabilityResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/rooms/{id}/availability/{availabilityID} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateRoomAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoomAvailability")
	defer scope.End()

	var req dto.UpdateAvailabilityRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		fail(w, scope, err, "invalid room availability")

		return
	}

	res, err := handler.availability.Update(ctx,
		chi.URLParam(r, constant.RequestParamID), chi.URLParam(r, constant.RequestParamAvailabilityID), req)
	if err != nil {
		fail(w, scope, err, "failed to update room availability")

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// DeleteRoomAvailability removes one entry, which makes that day bookable again.
// @Summary Delete a room availability entry
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Param availabilityID path string true "Availability ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/rooms/{id}/availability/{availabilityID} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteRoomAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRoomAvailability")
	defer scope.End()

	err := handler.availability.Delete(ctx,
		chi.URLParam(r, constant.RequestParamID), chi.URLParam(r, constant.RequestParamAvailabilityID))
	if err != nil {
		fail(w, scope, err, "failed to delete room availability")

		return
	}

	response.WithMessage(w, http.StatusOK, "Room availability deleted")
}
