package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"

	"hotel/shared"
	"hotel/shared/constant"
	"hotel/transport/http/response"

	"github.com/rs/zerolog/log"
)

const cacheKeyRateLimit = "limiter"

// strictRoutes are public endpoints that write on behalf of an anonymous caller.
var strictRoutes = map[string]struct{}{
	http.MethodPost + " /v1/auth/login":        {},
	http.MethodPost + " /v1/auth/register":     {},
	http.MethodPost + " /v1/bookings/guest":    {},
	http.MethodPost + " /v1/emergencies/guest": {},
}

type rateBucket struct {
	name  string
	limit int
}

func (a *appMiddleware) bucket(r *http.Request) rateBucket {
	limits := a.config.App.RateLimiter

	if _, ok := strictRoutes[r.Method+" "+strings.TrimSuffix(r.URL.Path, "/")]; ok && limits.StrictMaxRequests > 0 {
		return rateBucket{name: "strict", limit: limits.StrictMaxRequests}
	}

	return rateBucket{name: "default", limit: limits.MaxRequests}
}

// RateLimit counts requests per client IP in fixed windows stored in Redis.
// A Redis failure lets the request through.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !a.config.App.RateLimiter.Enable {
				next.ServeHTTP(w, r)

				return
			}

			window := a.config.App.RateLimiter.WindowSeconds
			bucket := a.bucket(r)
			key := shared.BuildCacheKey(cacheKeyRateLimit, bucket.name, a.getClientIP(r))

			count, ttl, err := a.cache.Incr(r.Context(), key, window)
			if err != nil {
				log.Warn().Err(err).Str("key", key).Msg("rate limiter unavailable")
				next.ServeHTTP(w, r)

				return
			}

			header := w.Header()
			header.Set(constant.RequestHeaderRateLimit, strconv.Itoa(bucket.limit))
			header.Set(constant.RequestHeaderRateLimitRemaining, strconv.FormatInt(max(0, int64(bucket.limit)-count), 10))
			header.Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(window))

			if count > int64(bucket.limit) {
				header.Set(constant.RequestHeaderRetryAfter, strconv.Itoa(int(math.Ceil(ttl.Seconds()))))
				response.WithRequestLimitExceeded(w)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (a *appMiddleware) getUA(r *http.Request) string {
	if ua := r.Header.Get(constant.RequestHeaderUserAgent); ua != "" {
		return ua
	}

	return "unknown"
}

// getClientIP trusts the first X-Forwarded-For hop, then X-Real-IP, then the socket address.
func (a *appMiddleware) getClientIP(r *http.Request) string {
	if forwarded := r.Header.Get(constant.RequestHeaderForwardedFor); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")

		return strings.TrimSpace(first)
	}

	if realIP := strings.TrimSpace(r.Header.Get(constant.RequestHeaderRealIP)); realIP != "" {
		return realIP
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}

	return r.RemoteAddr
}
