// Copyright (c) 2026 Artmarket. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/artmarket/internal/platform/constants"
	"github.com/taibuivan/artmarket/internal/platform/middleware"
	"github.com/taibuivan/artmarket/internal/platform/respond"
)

func TestRateLimiter_Allow(t *testing.T) {
	limiter := middleware.NewRateLimiter(middleware.RateLimitConfig{RPS: 1, Burst: 2})

	allowed, _ := limiter.Allow("203.0.113.7")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow("203.0.113.7")
	assert.True(t, allowed)

	allowed, wait := limiter.Allow("203.0.113.7")
	assert.False(t, allowed)
	assert.Positive(t, wait)
	assert.LessOrEqual(t, wait, time.Second)

	allowed, _ = limiter.Allow("198.51.100.1")
	assert.True(t, allowed, "buckets are per client")
	assert.Equal(t, 2, limiter.Len())
}

func TestRateLimiter_Sweep(t *testing.T) {
	limiter := middleware.NewRateLimiter(middleware.RateLimitConfig{IdleTTL: time.Millisecond})
	limiter.Allow("203.0.113.7")
	limiter.Allow("198.51.100.1")

	time.Sleep(5 * time.Millisecond)
	limiter.Allow("192.0.2.1")

	assert.Equal(t, 2, limiter.Sweep())
	assert.Equal(t, 1, limiter.Len())
}

func TestRateLimiter_RunStopsOnCancel(t *testing.T) {
	limiter := middleware.NewRateLimiter(middleware.RateLimitConfig{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		limiter.Run(ctx, time.Millisecond)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRateLimiter_Middleware(t *testing.T) {
	limiter := middleware.NewRateLimiter(middleware.RateLimitConfig{RPS: 1, Burst: 1})
	handler := limiter.Middleware()(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusNoContent)
	}))

	send := func(ip string) *httptest.ResponseRecorder {
		request := httptest.NewRequest(http.MethodGet, "/api/v1/artworks", nil)
		request.Header.Set(constants.HeaderXRealIP, ip)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		return recorder
	}

	assert.Equal(t, http.StatusNoContent, send("203.0.113.7").Code)

	limited := send("203.0.113.7")
	require.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "1", limited.Header().Get("Retry-After"))

	var body respond.ErrorEnvelope
	require.NoError(t, json.NewDecoder(limited.Body).Decode(&body))
	assert.Equal(t, "RATE_LIMITED", body.Code)

	assert.Equal(t, http.StatusNoContent, send("198.51.100.1").Code)
}
