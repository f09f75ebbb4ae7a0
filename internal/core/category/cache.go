// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/storyhub/internal/platform/constants"
)

// Cache holds the category list between requests. A cache is best-effort:
// failures are logged and reported as a miss.
type Cache interface {
	Get(context context.Context) ([]*Category, bool)
	Set(context context.Context, categories []*Category)
	Invalidate(context context.Context)
}

// DefaultCacheTTL is how long the category list stays cached.
const DefaultCacheTTL = 5 * time.Minute

// RedisCache stores the category list as one JSON value.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisCache creates a cache backed by client. A zero ttl uses [DefaultCacheTTL].
func NewRedisCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &RedisCache{client: client, ttl: ttl, logger: logger}
}

func (cache *RedisCache) Get(context context.Context) ([]*Category, bool) {
	raw, err := cache.client.Get(context, constants.RedisKeyCategoryList).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		cache.logger.Warn("category_cache_get_failed", slog.Any("error", err))
		return nil, false
	}

	var categories []*Category
	if err := json.Unmarshal(raw, &categories); err != nil {
		cache.logger.Warn("category_cache_corrupt", slog.Any("error", err))
		return nil, false
	}
	return categories, true
}

func (cache *RedisCache) Set(context context.Context, categories []*Category) {
	raw, err := json.Marshal(categories)
	if err != nil {
		cache.logger.Warn("category_cache_encode_failed", slog.Any("error", err))
		return
	}

	if err := cache.client.Set(context, constants.RedisKeyCategoryList, raw, cache.ttl).Err(); err != nil {
		cache.logger.Warn("category_cache_set_failed", slog.Any("error", err))
	}
}

func (cache *RedisCache) Invalidate(context context.Context) {
	if err := cache.client.Del(context, constants.RedisKeyCategoryList).Err(); err != nil {
		cache.logger.Warn("category_cache_invalidate_failed", slog.Any("error", err))
	}
}
