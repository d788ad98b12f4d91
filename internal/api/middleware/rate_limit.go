package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/netpulse/netpulse/internal/pkg/errors"
	"github.com/netpulse/netpulse/internal/pkg/utils"
)

// RateLimiter holds one token bucket per client key
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	limit   rate.Limit
	burst   int
}

// NewRateLimiter creates a limiter allowing requestsPerSecond sustained
// with the given burst per client
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		buckets: make(map[string]*rate.Limiter),
		limit:   rate.Limit(requestsPerSecond),
		burst:   burst,
	}
}

// Allow reports whether the client identified by key may proceed
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	b, ok := rl.buckets[key]
	if !ok {
		b = rate.NewLimiter(rl.limit, rl.burst)
		rl.buckets[key] = b
	}
	rl.mu.Unlock()
	return b.Allow()
}

// Cleanup drops buckets that have fully refilled, so idle clients do
// not accumulate forever
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key, b := range rl.buckets {
		if b.Tokens() == float64(rl.burst) {
			delete(rl.buckets, key)
		}
	}
}

// RateLimit limits requests per client IP
func RateLimit(requestsPerSecond float64, burst int) func(http.Handler) http.Handler {
	limiter := NewRateLimiter(requestsPerSecond, burst)

	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			limiter.Cleanup()
		}
	}()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(r.RemoteAddr) {
				utils.WriteError(w, errors.RateLimited("Too many requests. Please try again later."))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
