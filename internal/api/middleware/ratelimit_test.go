package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitRejectsAfterBurst(t *testing.T) {
	t.Parallel()
	h := RateLimit(NewPerMinuteLimiter(1, 2))(okHandler())

	codes := make([]int, 0, 3)
	for range 3 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/analysis", nil))
		codes = append(codes, rec.Code)
		if rec.Code == http.StatusTooManyRequests {
			assert.Equal(t, "10", rec.Header().Get("Retry-After"))
			assert.Contains(t, rec.Body.String(), "Too many analysis requests")
		}
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimitDisabled(t *testing.T) {
	t.Parallel()
	assert.Nil(t, NewPerMinuteLimiter(0, 5))

	h := RateLimit(nil)(okHandler())
	for range 20 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestNewPerMinuteLimiterBurstFloor(t *testing.T) {
	t.Parallel()
	l := NewPerMinuteLimiter(60, 0)
	assert.Equal(t, 1, l.Burst())
}
