package notification

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/notification/model"
	"hotel/internal/domains/notification/service"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const queryUserID = "user_id"

type Handler struct {
	service service.Notification
	otel    otel.Otel
}

func New(service service.Notification, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/notifications", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetNotifications)
	})
}

// GetNotifications lists delivery records. Guests only see their own; staff may filter by user_id.
// @Summary List notifications
// @Tags Notification
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param type query string false "Channel (email, sms)"
// @Param status query string false "Status (pending, sent, failed)"
// @Param booking_id query string false "Booking ID"
// @Param user_id query string false "User ID (staff only)"
// @Success 200 {object} response.Data[dto.GetNotificationsResponse]
// @Failure 401 {object} response.Error
// @Router /v1/notifications [get]
// @Security BearerAuth
func (handler *Handler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetNotifications")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	query := r.URL.Query()
	userID, role := shared.CurrentUser(ctx)

	if shared.IsStaff(role) {
		userID = query.Get(queryUserID)
	}

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	for _, pair := range [][2]string{
		{model.FieldUserID, userID},
		{model.FieldChannel, query.Get(model.FieldChannel)},
		{model.FieldStatus, query.Get(model.FieldStatus)},
		{model.FieldBookingID, query.Get(model.FieldBookingID)},
	} {
		field, value := pair[0], pair[1]

		if value == constant.Empty {
			continue
		}

		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    field,
			Operator: gDto.FilterOperatorEq,
			Value:    value,
			Table:    model.TableName,
		})
	}

	notifications, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get notifications")
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, notifications)
}
