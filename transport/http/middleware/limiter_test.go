package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"hotel/config"
	"hotel/infras/otel/mocks"
	"hotel/shared/cache"
	"hotel/shared/constant"
	"hotel/transport/http/middleware"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func newLimited(t *testing.T, limit, strict int) (*miniredis.Miniredis, http.Handler) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = limit
	cfg.App.RateLimiter.StrictMaxRequests = strict
	cfg.App.RateLimiter.WindowSeconds = 60

	app := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, cache.NewRedisCache(client, mocks.NewOtel()))
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	return server, app.RateLimit()(ok)
}

func call(handler http.Handler, method, path, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set(constant.RequestHeaderForwardedFor, ip+", 10.0.0.1")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec
}

func TestRateLimit_PerClient(t *testing.T) {
	_, handler := newLimited(t, 2, 0)

	first := call(handler, http.MethodGet, "/v1/rooms", "203.0.113.7")
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "1", first.Header().Get(constant.RequestHeaderRateLimitRemaining))

	assert.Equal(t, http.StatusOK, call(handler, http.MethodGet, "/v1/rooms", "203.0.113.7").Code)

	blocked := call(handler, http.MethodGet, "/v1/rooms", "203.0.113.7")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Equal(t, "60", blocked.Header().Get(constant.RequestHeaderRetryAfter))
	assert.Equal(t, "0", blocked.Header().Get(constant.RequestHeaderRateLimitRemaining))

	assert.Equal(t, http.StatusOK, call(handler, http.MethodGet, "/v1/rooms", "198.51.100.4").Code)
}

func TestRateLimit_StrictRoutes(t *testing.T) {
	_, handler := newLimited(t, 100, 1)

	assert.Equal(t, http.StatusOK, call(handler, http.MethodPost, "/v1/emergencies/guest", "203.0.113.7").Code)
	assert.Equal(t, http.StatusTooManyRequests, call(handler, http.MethodPost, "/v1/emergencies/guest", "203.0.113.7").Code)
	assert.Equal(t, http.StatusTooManyRequests, call(handler, http.MethodPost, "/v1/bookings/guest", "203.0.113.7").Code)
	assert.Equal(t, http.StatusOK, call(handler, http.MethodPost, "/v1/bookings/guest", "198.51.100.4").Code)

	assert.Equal(t, http.StatusOK, call(handler, http.MethodGet, "/v1/rooms", "203.0.113.7").Code)
}

func TestRateLimit_RedisDown(t *testing.T) {
	server, handler := newLimited(t, 1, 0)
	server.Close()

	assert.Equal(t, http.StatusOK, call(handler, http.MethodGet, "/v1/rooms", "203.0.113.7").Code)
	assert.Equal(t, http.StatusOK, call(handler, http.MethodGet, "/v1/rooms", "203.0.113.7").Code)
}
