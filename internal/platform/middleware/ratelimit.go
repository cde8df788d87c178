// Copyright (c) 2026 Artmarket. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/artmarket/internal/platform/apperr"
	"github.com/taibuivan/artmarket/internal/platform/constants"
	"github.com/taibuivan/artmarket/internal/platform/respond"
)

// RateLimitConfig tunes a [RateLimiter]. Zero fields take the package
// defaults from constants.
type RateLimitConfig struct {
	RPS     float64
	Burst   int
	IdleTTL time.Duration
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter is a per-client token bucket. Each client key (usually
// [RealIP]) gets its own bucket; buckets idle longer than IdleTTL are
// dropped by [RateLimiter.Sweep].
type RateLimiter struct {
	limit   rate.Limit
	burst   int
	idleTTL time.Duration

	mu       sync.Mutex
	visitors map[string]*visitor
}

// NewRateLimiter builds an empty limiter.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.RPS <= 0 {
		cfg.RPS = constants.DefaultRateLimitRPS
	}
	if cfg.Burst <= 0 {
		cfg.Burst = constants.DefaultRateLimitBurst
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = constants.RateLimitClientTTL
	}

	return &RateLimiter{
		limit:    rate.Limit(cfg.RPS),
		burst:    cfg.Burst,
		idleTTL:  cfg.IdleTTL,
		visitors: make(map[string]*visitor),
	}
}

// Allow takes one token from key's bucket. When the bucket is empty it
// returns false and how long until a token is available; no token is spent.
func (limiter *RateLimiter) Allow(key string) (bool, time.Duration) {
	now := time.Now()

	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	client, found := limiter.visitors[key]
	if !found {
		client = &visitor{limiter: rate.NewLimiter(limiter.limit, limiter.burst)}
		limiter.visitors[key] = client
	}
	client.lastSeen = now

	reservation := client.limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return false, time.Second
	}
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// Sweep drops idle buckets and reports how many were removed.
func (limiter *RateLimiter) Sweep() int {
	cutoff := time.Now().Add(-limiter.idleTTL)

	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	removed := 0
	for key, client := range limiter.visitors {
		if client.lastSeen.Before(cutoff) {
			delete(limiter.visitors, key)
			removed++
		}
	}
	return removed
}

// Len is the number of tracked clients.
func (limiter *RateLimiter) Len() int {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	return len(limiter.visitors)
}

// Run sweeps every interval until ctx is cancelled.
func (limiter *RateLimiter) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = constants.RateLimitCleanupInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			limiter.Sweep()
		case <-ctx.Done():
			return
		}
	}
}

// Middleware rejects over-limit clients with 429 RATE_LIMITED and a
// Retry-After header in whole seconds.
func (limiter *RateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			allowed, wait := limiter.Allow(RealIP(request))
			if !allowed {
				seconds := max(1, int(math.Ceil(wait.Seconds())))
				writer.Header().Set("Retry-After", strconv.Itoa(seconds))
				respond.Error(writer, request, apperr.RateLimited(seconds))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
