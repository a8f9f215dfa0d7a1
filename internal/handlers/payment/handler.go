package payment

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/infras/payhere"
	"hotel/internal/domains/payment/model"
	"hotel/internal/domains/payment/model/dto"
	"hotel/internal/domains/payment/service"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	notifyOK     = "OK"
	notifyFailed = "FAILED"
)

type Handler struct {
	service service.Payment
	otel    otel.Otel
}

func New(service service.Payment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/payments", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.InitiatePayment)
		routerGroup.Get("/", handler.GetPayments)
		routerGroup.Post("/notify", handler.Notify)
		routerGroup.Get("/return", handler.Return)
		routerGroup.Get("/{id}", handler.GetPayment)
		routerGroup.Post("/{id}/refund", handler.RefundPayment)
	})
}

// InitiatePayment creates a pending payment and returns the signed gateway form.
// @Summary Initiate a payment
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body dto.InitiatePaymentRequest true "Booking and method"
// @Success 201 {object} response.Data[dto.CheckoutResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/payments [post]
// @Security BearerAuth
func (handler *Handler) InitiatePayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".InitiatePayment")
	defer scope.End()

	req := dto.InitiatePaymentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	checkout, err := handler.service.Initiate(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to initiate payment")
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, checkout)
}

// Notify receives the server-to-server gateway callback.
// @Summary Gateway payment notification
// @Tags Payment
// @Accept x-www-form-urlencoded
// @Produce plain
// @Success 200 {string} string "OK"
// @Failure 400 {string} string "FAILED"
// @Router /v1/payments/notify [post]
func (handler *Handler) Notify(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PaymentNotify")
	defer scope.End()

	if err := r.ParseForm(); err != nil {
		scope.TraceError(err)
		response.WithText(w, http.StatusBadRequest, notifyFailed)

		return
	}

	ok, err := handler.service.HandleNotification(ctx, payhere.CallbackFromForm(r.PostForm))
	if err != nil {
		scope.TraceError(err)

		if failure.Is(err, http.StatusInternalServerError) {
			log.Error().Err(err).Msg("failed to handle payment notification")
		} else {
			log.Warn().Err(err).Msg("rejected payment notification")
		}

		response.WithText(w, failure.GetCode(err), notifyFailed)

		return
	}

	if !ok {
		response.WithText(w, http.StatusBadRequest, notifyFailed)

		return
	}

	response.WithText(w, http.StatusOK, notifyOK)
}

// Return is where the gateway sends the browser back. It reports the stored status only.
// @Summary Payment return landing
// @Tags Payment
// @Produce json
// @Param order_id query string true "Order ID"
// @Success 200 {object} response.Data[dto.PaymentResponse]
// @Failure 404 {object} response.Error
// @Router /v1/payments/return [get]
func (handler *Handler) Return(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PaymentReturn")
	defer scope.End()

	orderID := r.URL.Query().Get(payhere.FieldOrderID)
	if orderID == constant.Empty {
		response.WithError(w, failure.BadRequestFromString("order_id is required"))

		return
	}

	payment, err := handler.service.Return(ctx, orderID)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, payment)
}

// GetPayment returns a payment and its status.
// @Summary Get a payment
// @Tags Payment
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} response.Data[dto.PaymentResponse]
// @Failure 404 {object} response.Error
// @Router /v1/payments/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetPayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPayment")
	defer scope.End()

	payment, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get payment")
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, payment)
}

// GetPayments lists payments for staff.
// @Summary List payments
// @Tags Payment
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param status query string false "Status"
// @Success 200 {object} response.Data[dto.GetPaymentsResponse]
// @Router /v1/payments [get]
// @Security BearerAuth
func (handler *Handler) GetPayments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPayments")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if status := r.URL.Query().Get(model.FieldStatus); status != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	payments, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get payments")
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, payments)
}

// RefundPayment refunds a completed payment. A zero amount refunds everything.
// @Summary Refund a payment
// @Tags Payment
// @Accept json
// @Produce json
// @Param id path string true "Payment ID"
// @Param request body dto.RefundPaymentRequest true "Refund"
// @Success 200 {object} response.Data[dto.PaymentResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/payments/{id}/refund [post]
// @Security BearerAuth
func (handler *Handler) RefundPayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RefundPayment")
	defer scope.End()

	req := dto.RefundPaymentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	if req.RefundAmount.IsNegative() {
		response.WithError(w, failure.BadRequestFromString("refund_amount must not be negative"))

		return
	}

	payment, err := handler.service.Refund(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to refund payment")
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, payment)
}
