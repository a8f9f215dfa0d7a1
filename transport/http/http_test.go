package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hotel/config"
	kafkaMocks "hotel/infras/kafka/mocks"
	otelMocks "hotel/infras/otel/mocks"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestShutdown_FlushesDomainEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)
	client.EXPECT().Close().Return(errors.New("broker unreachable"))

	h := &HTTP{Config: &config.Config{}, otel: otelMocks.NewOtel(), kafka: client, server: &http.Server{}}

	h.shutdown(time.Second)
}

func TestShutdown_BeforeServing(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)

	h := &HTTP{Config: &config.Config{}, otel: otelMocks.NewOtel(), kafka: client}

	// nothing was started, so nothing is closed
	h.shutdown(time.Second)
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name  string
		state ServerState
		want  int
	}{
		{name: "ready", state: ServerStateReady, want: http.StatusOK},
		{name: "grace period", state: ServerStateInGracePeriod, want: http.StatusServiceUnavailable},
		{name: "cleanup period", state: ServerStateInCleanupPeriod, want: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &HTTP{}
			h.state.Store(int32(tt.state))

			rec := httptest.NewRecorder()
			h.health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
