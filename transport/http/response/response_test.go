package response_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/transport/http/response"

	"github.com/stretchr/testify/assert"
)

func TestWithError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "failure keeps its message",
			err:      failure.Conflict("room is already booked for these dates"),
			wantCode: http.StatusConflict,
			wantBody: `{"error":"room is already booked for these dates"}`,
		},
		{
			name:     "wrapped failure",
			err:      fmt.Errorf("create booking: %w", failure.NotFound("room not found")),
			wantCode: http.StatusNotFound,
			wantBody: `{"error":"create booking: room not found"}`,
		},
		{
			name:     "internal error is hidden",
			err:      errors.New("pq: connection refused"),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			response.WithError(rec, tt.err)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
			assert.Equal(t, constant.ContentTypeJSON, rec.Header().Get(constant.RequestHeaderContentType))
		})
	}
}

func TestWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithJSON(rec, http.StatusCreated, map[string]string{"booking_code": "BK-1001"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"data":{"booking_code":"BK-1001"}}`, rec.Body.String())
}

func TestWithMessage(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithRequestLimitExceeded(rec)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"message":"REQUEST LIMIT EXCEEDED"}`, rec.Body.String())
}

func TestWithAttachment(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithAttachment(rec, constant.ContentTypeXLSX, "bookings.xlsx", []byte("PK"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, constant.ContentTypeXLSX, rec.Header().Get(constant.RequestHeaderContentType))
	assert.Equal(t, `attachment; filename="bookings.xlsx"`, rec.Header().Get(constant.RequestHeaderContentDisposition))
	assert.Equal(t, "PK", rec.Body.String())
}
