package emergency

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/emergency/model"
	"hotel/internal/domains/emergency/model/dto"
	"hotel/internal/domains/emergency/service"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Emergency
	otel    otel.Otel
}

func New(service service.Emergency, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/emergencies", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.OpenCase)
		routerGroup.Get("/", handler.GetCases)
		routerGroup.Post("/cancellations", handler.ProcessCancellation)
		routerGroup.Post("/illnesses", handler.ProcessIllness)
		routerGroup.Post("/guest", handler.SubmitGuestEmergency)
		routerGroup.Get("/statistics", handler.GetStatistics)
		routerGroup.Get("/{id}", handler.GetCase)
		routerGroup.Post("/{id}/resolve", handler.ResolveCase)
		routerGroup.Post("/{id}/close", handler.CloseCase)
		routerGroup.Post("/{id}/refund", handler.SettleRefund)
		routerGroup.Post("/{id}/refund/complete", handler.CompleteRefund)
	})
}

// decodeOptional validates a body that callers may leave out entirely.
func decodeOptional[T any](r *http.Request, req *T) error {
	if r.ContentLength == 0 {
		return nil
	}

	return validator.Validate(r.Body, req) //nolint:wrapcheck
}

// OpenCase opens a generic emergency case for a booking.
// @Summary Open an emergency case
// @Tags Emergency
// @Accept json
// @Produce json
// @Param request body dto.OpenCaseRequest true "Case"
// @Success 201 {object} response.Data[dto.CaseResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/emergencies [post]
// @Security BearerAuth
func (handler *Handler) OpenCase(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".OpenCase")
	defer scope.End()

	req := dto.OpenCaseRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.OpenCase(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to open emergency case")
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// ProcessCancellation cancels a booking for an emergency and settles the refund at once.
// @Summary Emergency cancellation
// @Tags Emergency
// @Accept json
// @Produce json
// @Param request body dto.CancellationRequest true "Cancellation"
// @Success 201 {object} response.Data[dto.CaseResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/emergencies/cancellations [post]
// @Security BearerAuth
func (handler *Handler) ProcessCancellation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ProcessCancellation")
	defer scope.End()

	req := dto.CancellationRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.ProcessCancellation(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", req.BookingID).Msg("failed to process emergency cancellation")
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// ProcessIllness records a guest illness, checking the guest out early when requested.
// @Summary Report an illness
// @Tags Emergency
// @Accept json
// @Produce json
// @Param request body dto.IllnessRequest true "Illness"
// @Success 201 {object} response.Data[dto.CaseResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/emergencies/illnesses [post]
// @Security BearerAuth
func (handler *Handler) ProcessIllness(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ProcessIllness")
	defer scope.End()

	req := dto.IllnessRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.ProcessIllness(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", req.BookingID).Msg("failed to process illness")
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// SubmitGuestEmergency is the public emergency form.
// @Summary Guest emergency form
// @Tags Emergency
// @Accept json
// @Produce json
// @Param request body dto.GuestEmergencyRequest true "Submission"
// @Success 201 {object} response.Data[dto.CaseResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/emergencies/guest [post]
func (handler *Handler) SubmitGuestEmergency(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SubmitGuestEmergency")
	defer scope.End()

	req := dto.GuestEmergencyRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.SubmitGuestEmergency(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to submit guest emergency")
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// GetCases lists emergency cases for staff.
// @Summary List emergency cases
// @Tags Emergency
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param status query string false "Status (open, resolved, closed)"
// @Param type query string false "Type (illness, cancellation, early_checkout)"
// @Param booking_id query string false "Booking ID"
// @Success 200 {object} response.Data[dto.GetCasesResponse]
// @Router /v1/emergencies [get]
// @Security BearerAuth
func (handler *Handler) GetCases(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCases")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	query := r.URL.Query()
	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	for _, field := range []string{model.FieldStatus, model.FieldType, model.FieldBookingID} {
		value := query.Get(field)
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

	cases, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get emergency cases")
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, cases)
}

// GetStatistics returns case counts and the completed refund total.
// @Summary Emergency statistics
// @Tags Emergency
// @Produce json
// @Success 200 {object} response.Data[dto.StatisticsResponse]
// @Router /v1/emergencies/statistics [get]
// @Security BearerAuth
func (handler *Handler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEmergencyStatistics")
	defer scope.End()

	res, err := handler.service.Statistics(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get emergency statistics")
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetCase returns one case. Guests can only read cases on their own bookings.
// @Summary Get an emergency case
// @Tags Emergency
// @Produce json
// @Param id path string true "Case ID"
// @Success 200 {object} response.Data[dto.CaseResponse]
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/emergencies/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetCase(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCase")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get emergency case")
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// ResolveCase moves an open case to resolved.
// @Summary Resolve an emergency case
// @Tags Emergency
// @Accept json
// @Produce json
// @Param id path string true "Case ID"
// @Param request body dto.ResolveCaseRequest false "Resolution"
// @Success 200 {object} response.Data[dto.CaseResponse]
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/emergencies/{id}/resolve [post]
// @Security BearerAuth
func (handler *Handler) ResolveCase(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ResolveCase")
	defer scope.End()

	req := dto.ResolveCaseRequest{}

	if err := decodeOptional(r, &req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.Resolve(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to resolve emergency case")
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// CloseCase moves a resolved case to closed.
// @Summary Close an emergency case
// @Tags Emergency
// @Produce json
// @Param id path string true "Case ID"
// @Success 200 {object} response.Data[dto.CaseResponse]
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/emergencies/{id}/close [post]
// @Security BearerAuth
func (handler *Handler) CloseCase(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CloseCase")
	defer scope.End()

	res, err := handler.service.Close(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to close emergency case")
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// SettleRefund settles the case refund. The stamped amount is used unless one is given.
// @Summary Settle a case refund
// @Tags Emergency
// @Accept json
// @Produce json
// @Param id path string true "Case ID"
// @Param request body dto.SettleRefundRequest false "Amount override"
// @Success 200 {object} response.Data[dto.CaseResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/emergencies/{id}/refund [post]
// @Security BearerAuth
func (handler *Handler) SettleRefund(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SettleRefund")
	defer scope.End()

	req := dto.SettleRefundRequest{}

	if err := decodeOptional(r, &req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	if req.Amount != nil && !req.Amount.IsPositive() {
		response.WithError(w, failure.BadRequestFromString("amount must be greater than 0"))

		return
	}

	res, err := handler.service.SettleRefund(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to settle emergency refund")
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// CompleteRefund marks a processed refund as paid out.
// @Summary Complete a case refund
// @Tags Emergency
// @Produce json
// @Param id path string true "Case ID"
// @Success 200 {object} response.Data[dto.CaseResponse]
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/emergencies/{id}/refund/complete [post]
// @Security BearerAuth
func (handler *Handler) CompleteRefund(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CompleteRefund")
	defer scope.End()

	res, err := handler.service.CompleteRefund(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to complete emergency refund")
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
