package ratelimit

import (
	"sync"

	"golang.org/x/time/rate"
)

// Limiter manages per-client rate limits for the analyze endpoint. OCR
// plus a model round trip is expensive, so each client gets a modest
// sustained rate with a small burst.
type Limiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
}

// NewLimiter creates a limiter allowing requestsPerMinute sustained per
// client key, with the given burst.
func NewLimiter(requestsPerMinute int, burst int) *Limiter {
	return &Limiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(float64(requestsPerMinute) / 60.0),
		burst:    burst,
	}
}

func (l *Limiter) limiterFor(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(l.rate, l.burst)
		l.limiters[key] = limiter
	}
	return limiter
}

// Allow reports whether a request from the given client key may proceed
func (l *Limiter) Allow(key string) bool {
	return l.limiterFor(key).Allow()
}

// Tokens returns the remaining burst capacity for a client key
func (l *Limiter) Tokens(key string) float64 {
	return l.limiterFor(key).Tokens()
}
