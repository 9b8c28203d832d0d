package providers

import (
	"net/http"
	"net/http/httptest"
	"tarotstats/internal/structures"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rateConfig(rps, burst int) *structures.Config {
	return &structures.Config{RateLimit: structures.RateLimitConfig{RPS: rps, Burst: burst}}
}

func doFrom(h http.Handler, addr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/track", nil)
	req.RemoteAddr = addr
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRateLimiter_DisabledPassesThrough(t *testing.T) {
	rl := NewRateLimiter(rateConfig(0, 0), &nopLogger{})
	assert.IsType(t, &noopRateLimiter{}, rl)

	h := rl.Handler(okHandler())
	for i := 0; i < 50; i++ {
		assert.Equal(t, http.StatusOK, doFrom(h, "10.0.0.1:1234").Code)
	}
}

func TestRateLimiter_RejectsOverBurst(t *testing.T) {
	rl := NewRateLimiter(rateConfig(1, 2), &nopLogger{})
	h := rl.Handler(okHandler())

	assert.Equal(t, http.StatusOK, doFrom(h, "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusOK, doFrom(h, "10.0.0.1:4321").Code)

	rr := doFrom(h, "10.0.0.1:5555")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"Too many requests"}`, rr.Body.String())
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	rl := NewRateLimiter(rateConfig(1, 1), &nopLogger{})
	h := rl.Handler(okHandler())

	assert.Equal(t, http.StatusOK, doFrom(h, "10.0.0.1:1").Code)
	assert.Equal(t, http.StatusOK, doFrom(h, "10.0.0.2:1").Code)
	assert.Equal(t, http.StatusTooManyRequests, doFrom(h, "10.0.0.1:1").Code)
}

func TestRateLimiter_CleanupRemovesIdle(t *testing.T) {
	rl := NewRateLimiter(rateConfig(1, 1), &nopLogger{}).(*RateLimiter)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	require.True(t, rl.allow("a"))
	now = now.Add(time.Hour)
	require.True(t, rl.allow("b"))

	assert.Equal(t, 1, rl.Cleanup(30*time.Minute))
	assert.Len(t, rl.limiters, 1)
	assert.Contains(t, rl.limiters, "b")
}
