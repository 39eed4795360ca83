package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/phrazzld/neet-pulse/internal/api/shared"
	"golang.org/x/time/rate"
)

// RetryAfterSeconds is sent in the Retry-After header of a 429 response.
const RetryAfterSeconds = 10

// NewPerMinuteLimiter returns a limiter allowing perMinute requests a minute
// with the given burst. A perMinute of 0 yields nil, meaning unlimited.
func NewPerMinuteLimiter(perMinute, burst int) *rate.Limiter {
	if perMinute <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), max(burst, 1))
}

// RateLimit rejects requests with 429 once limiter runs out of tokens. A
// nil limiter lets every request through.
func RateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				w.Header().Set("Retry-After", strconv.Itoa(RetryAfterSeconds))
				w.Header().Set("X-RateLimit-Remaining", "0")
				shared.RespondWithError(w, r, http.StatusTooManyRequests, "Too many analysis requests; try again shortly")
				return
			}
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(int(limiter.Tokens()), 0)))
			next.ServeHTTP(w, r)
		})
	}
}
