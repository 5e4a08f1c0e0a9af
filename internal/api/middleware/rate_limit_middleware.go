package middleware

import (
	"net"
	"net/http"

	"github.com/RoyceAzure/lab/pos/internal/api/response"
	"github.com/RoyceAzure/lab/pos/internal/pkg/ratelimit"
)

// RateLimitMiddleware 每個來源ip一個token bucket
// 需放在 chi middleware.RealIP 之後
func RateLimitMiddleware(limiter ratelimit.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(r.Context(), clientIP(r)) {
				response.JSON(w, http.StatusTooManyRequests, "Too Many Requests", response.ErrorData{Error: "TooManyRequests"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
