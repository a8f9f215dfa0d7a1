package sms_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"hotel/config"
	"hotel/infras/otel/mocks"
	"hotel/infras/sms"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(endpoint string, enable bool) sms.SMS {
	cfg := &config.Config{}
	cfg.External.SMS.Enable = enable
	cfg.External.SMS.Endpoint = endpoint
	cfg.External.SMS.APIKey = "sms-key"
	cfg.External.SMS.SenderID = "DUMIDU"
	cfg.External.SMS.TimeoutSeconds = 2

	return sms.New(cfg, mocks.NewOtel())
}

func TestSMS_Send(t *testing.T) {
	var received map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "Bearer sms-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"queued","message_id":"m-1"}`))
	}))
	defer server.Close()

	client := newClient(server.URL, true)

	require.True(t, client.Enabled())
	require.NoError(t, client.Send(context.Background(), "+94771234567", "Payment confirmed"))

	assert.Equal(t, "+94771234567", received["to"])
	assert.Equal(t, "Payment confirmed", received["message"])
	assert.Equal(t, "DUMIDU", received["sender_id"])
}

func TestSMS_SendRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"status":"error","error":"invalid number"}`))
	}))
	defer server.Close()

	err := newClient(server.URL, true).Send(context.Background(), "123", "hello")

	assert.ErrorIs(t, err, sms.ErrRejected)
	assert.ErrorContains(t, err, "invalid number")
}

func TestSMS_Enabled(t *testing.T) {
	assert.False(t, newClient("", true).Enabled())
	assert.False(t, newClient("http://localhost", false).Enabled())
	assert.True(t, newClient("http://localhost", true).Enabled())
}
