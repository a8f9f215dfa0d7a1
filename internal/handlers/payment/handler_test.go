package payment_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"hotel/infras/otel/mocks"
	"hotel/infras/payhere"
	"hotel/internal/domains/payment/model/dto"
	serviceMocks "hotel/internal/domains/payment/service/mocks"
	"hotel/internal/handlers/payment"
	"hotel/shared/constant"
	"hotel/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setup(t *testing.T) (*serviceMocks.MockPayment, http.Handler) {
	t.Helper()

	svc := serviceMocks.NewMockPayment(gomock.NewController(t))
	handler := payment.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return svc, router
}

func notifyRequest(form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/payments/notify", strings.NewReader(form.Encode()))
	req.Header.Set(constant.RequestHeaderContentType, "application/x-www-form-urlencoded")

	return req
}

func TestHandler_Notify(t *testing.T) {
	form := url.Values{
		payhere.FieldOrderID:    {"PAY-7f3a"},
		payhere.FieldPaymentID:  {"320025071278"},
		payhere.FieldStatusCode: {"2"},
	}

	tests := []struct {
		name     string
		ok       bool
		err      error
		wantCode int
		wantBody string
	}{
		{name: "accepted", ok: true, wantCode: http.StatusOK, wantBody: "OK"},
		{name: "not accepted", ok: false, wantCode: http.StatusBadRequest, wantBody: "FAILED"},
		{
			name:     "bad signature",
			err:      failure.BadRequestFromString("invalid signature"),
			wantCode: http.StatusBadRequest,
			wantBody: "FAILED",
		},
		{
			name:     "storage failure",
			err:      errors.New("pq: deadlock detected"),
			wantCode: http.StatusInternalServerError,
			wantBody: "FAILED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, router := setup(t)

			svc.EXPECT().
				HandleNotification(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, callback payhere.Callback) (bool, error) {
					assert.Equal(t, "PAY-7f3a", callback.OrderID)
					assert.Equal(t, "2", callback.StatusCode)

					return tt.ok, tt.err
				})

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, notifyRequest(form))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestHandler_InitiatePaymentRejectsInvalidBody(t *testing.T) {
	_, router := setup(t)

	body := `{"booking_id":"not-a-uuid","payment_method":"cash"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/payments/", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Return(t *testing.T) {
	svc, router := setup(t)

	svc.EXPECT().Return(gomock.Any(), "PAY-7f3a").Return(dto.PaymentResponse{}, failure.NotFound("payment not found"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/payments/return?order_id=PAY-7f3a", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"payment not found"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/payments/return", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
