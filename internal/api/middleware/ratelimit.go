package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/dom/petshop-api/internal/api/response"
	"github.com/dom/petshop-api/internal/ratelimit"
)

// RateLimit throttles requests per client IP within bucket. Limiter
// failures let the request through.
func RateLimit(limiter ratelimit.Limiter, bucket string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res, err := limiter.Hit(r.Context(), bucket+":"+clientIP(r))
			if err != nil {
				slog.WarnContext(r.Context(), "rate limiter unavailable", "bucket", bucket, "error", err)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(res.Reset.Unix(), 10))

			if !res.Allowed {
				retry := max(int(time.Until(res.Reset).Seconds()), 1)
				w.Header().Set("Retry-After", strconv.Itoa(retry))
				rateLimitedTotal.WithLabelValues(bucket).Inc()
				response.Error(w, r, response.ErrRateLimited)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP trusts RemoteAddr, which chi's RealIP middleware rewrites from
// proxy headers.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
