// Copyright (c) 2026 Artmarket. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/artmarket/internal/platform/constants"
)

// RedisCountCache keeps exact totals in Redis with a fixed TTL.
type RedisCountCache struct {
	client redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisCountCache builds a [CountCache] over client.
func NewRedisCountCache(client redis.Cmdable, ttl time.Duration, logger *slog.Logger) *RedisCountCache {
	return &RedisCountCache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached total for key. Misses and errors both report false.
func (cache *RedisCountCache) Get(ctx context.Context, key string) (int, bool) {
	raw, err := cache.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false
	}
	if err != nil {
		cache.logger.WarnContext(ctx, "count_cache_read_failed", slog.String("key", key), slog.Any("error", err))
		return 0, false
	}

	total, err := strconv.Atoi(raw)
	if err != nil {
		cache.logger.WarnContext(ctx, "count_cache_corrupt_entry", slog.String("key", key))
		return 0, false
	}
	return total, true
}

// Set stores total under key; failures are logged only.
func (cache *RedisCountCache) Set(ctx context.Context, key string, total int) {
	if err := cache.client.Set(ctx, key, total, cache.ttl).Err(); err != nil {
		cache.logger.WarnContext(ctx, "count_cache_write_failed", slog.String("key", key), slog.Any("error", err))
	}
}

// # Signatures

// filterCountKey identifies the row set of params regardless of page or order.
func filterCountKey(params FilterParams) (string, error) {
	return signature(constants.RedisPrefixFilterCount, params.Unbounded())
}

// searchCountKey identifies a text search by normalized query and mode.
func searchCountKey(query string, byArtist bool) (string, error) {
	return signature(constants.RedisPrefixSearchCount, struct {
		Query    string `json:"q"`
		ByArtist bool   `json:"by_artist"`
	}{strings.ToLower(strings.TrimSpace(query)), byArtist})
}

// combinedCountKey identifies a search-and-filter row set.
func combinedCountKey(query string, byArtist bool, params FilterParams) (string, error) {
	return signature(constants.RedisPrefixFilterCount, struct {
		Query    string       `json:"q"`
		ByArtist bool         `json:"by_artist"`
		Params   FilterParams `json:"params"`
	}{strings.ToLower(strings.TrimSpace(query)), byArtist, params.Unbounded()})
}

// signature hashes the JSON encoding of v under prefix. Struct fields encode
// in declaration order, so equal values share a key. A value that cannot be
// encoded (a NaN bound) has no key and must not be cached.
func signature(prefix string, v any) (string, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("count signature: %w", err)
	}
	sum := sha256.Sum256(payload)
	return prefix + hex.EncodeToString(sum[:]), nil
}
