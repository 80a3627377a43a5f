// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

package settings

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	cacheKey = "site:settings"
	cacheTTL = 5 * time.Minute
)

// RedisCache implements [Cache] on top of go-redis.
//
// Every method is best effort: a Redis outage degrades reads to the
// database but never fails a request.
type RedisCache struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisCache constructs a [RedisCache].
func NewRedisCache(client *redis.Client, logger *slog.Logger) *RedisCache {
	return &RedisCache{client: client, logger: logger}
}

// Get returns the cached settings, or nil on miss or failure.
func (cache *RedisCache) Get(context context.Context) *SiteSettings {
	payload, err := cache.client.Get(context, cacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			cache.logger.Warn("settings_cache_get_failed", slog.Any("error", err))
		}
		return nil
	}

	settings := &SiteSettings{}
	if err := json.Unmarshal(payload, settings); err != nil {
		cache.logger.Warn("settings_cache_decode_failed", slog.Any("error", err))
		return nil
	}

	return settings
}

// Set stores the settings under the cache TTL.
func (cache *RedisCache) Set(context context.Context, settings *SiteSettings) {
	payload, err := json.Marshal(settings)
	if err != nil {
		cache.logger.Warn("settings_cache_encode_failed", slog.Any("error", err))
		return
	}

	if err := cache.client.Set(context, cacheKey, payload, cacheTTL).Err(); err != nil {
		cache.logger.Warn("settings_cache_set_failed", slog.Any("error", err))
	}
}

// Invalidate drops the cached entry.
func (cache *RedisCache) Invalidate(context context.Context) {
	if err := cache.client.Del(context, cacheKey).Err(); err != nil {
		cache.logger.Warn("settings_cache_invalidate_failed", slog.Any("error", err))
	}
}
