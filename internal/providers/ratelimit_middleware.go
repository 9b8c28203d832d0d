package providers

import (
	"net"
	"net/http"
	"sync"
	"tarotstats/internal/structures"
	"time"

	"golang.org/x/time/rate"
)

type RateLimiterInterface interface {
	Handler(next http.Handler) http.Handler
	Cleanup(idle time.Duration) int
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles requests per client address.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	rate     rate.Limit
	burst    int
	logger   Logger
	now      func() time.Time
}

// NewRateLimiter returns a pass-through limiter when conf.RateLimit.RPS is 0.
func NewRateLimiter(conf *structures.Config, logger Logger) RateLimiterInterface {
	if conf.RateLimit.RPS <= 0 {
		return &noopRateLimiter{}
	}
	burst := conf.RateLimit.Burst
	if burst <= 0 {
		burst = conf.RateLimit.RPS
	}
	return &RateLimiter{
		limiters: make(map[string]*limiterEntry),
		rate:     rate.Limit(conf.RateLimit.RPS),
		burst:    burst,
		logger:   logger,
		now:      time.Now,
	}
}

func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	e, ok := rl.limiters[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[key] = e
	}
	e.lastSeen = rl.now()
	return e.limiter.Allow()
}

func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientAddr(r)
		if !rl.allow(key) {
			rl.logger.Warnf(GetLogTypeByRequestType(r.Method), "Rate limit exceeded for %s on %s", key, r.URL.Path)
			WriteJSONError(w, http.StatusTooManyRequests, "Too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Cleanup drops limiters unused for longer than idle and returns how many were removed.
func (rl *RateLimiter) Cleanup(idle time.Duration) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-idle)
	removed := 0
	for k, e := range rl.limiters {
		if e.lastSeen.Before(cutoff) {
			delete(rl.limiters, k)
			removed++
		}
	}
	return removed
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type noopRateLimiter struct{}

func (n *noopRateLimiter) Handler(next http.Handler) http.Handler { return next }
func (n *noopRateLimiter) Cleanup(_ time.Duration) int           { return 0 }
