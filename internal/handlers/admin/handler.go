package admin

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/admin/model/dto"
	"hotel/internal/domains/admin/service"
	"hotel/shared/constant"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Admin
	otel    otel.Otel
}

func New(service service.Admin, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/admin", func(routerGroup chi.Router) {
		routerGroup.Get("/dashboard", handler.GetDashboard)
		routerGroup.Get("/bookings/export", handler.ExportBookings)
	})
}

// GetDashboard returns occupancy, revenue and booking statistics.
// @Summary Admin dashboard
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Data[dto.DashboardResponse]
// @Failure 500 {object} response.Error
// @Router /v1/admin/dashboard [get]
// @Security BearerAuth
func (handler *Handler) GetDashboard(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDashboard")
	defer scope.End()

	dashboard, err := handler.service.Dashboard(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to build dashboard")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, dashboard)
}

// ExportBookings downloads bookings as a spreadsheet.
// @Summary Export bookings
// @Tags Admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param from query string false "First booking date (YYYY-MM-DD)"
// @Param to query string false "Last booking date (YYYY-MM-DD)"
// @Success 200 {file} file
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/bookings/export [get]
// @Security BearerAuth
func (handler *Handler) ExportBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ExportBookings")
	defer scope.End()

	query := request.URL.Query()
	req := dto.ExportRequest{
		From: query.Get("from"),
		To:   query.Get("to"),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	content, filename, err := handler.service.ExportBookings(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to export bookings")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Bookings exported " + filename)

	response.WithAttachment(writer, constant.ContentTypeXLSX, filename, content)
}
