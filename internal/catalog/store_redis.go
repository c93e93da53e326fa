// Copyright (c) 2026 AnFr. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Ismail26477/an-fr/internal/platform/constants"
)

// RedisSearchCache implements [SearchCache] using Redis with per-key TTL.
//
// Keys are normalized to lowercase. The lookup itself is case-insensitive,
// so "Naruto" and "naruto" can share one cached entry.
type RedisSearchCache struct {
	client *redis.Client
}

// NewRedisSearchCache creates a Redis-backed search result cache.
func NewRedisSearchCache(client *redis.Client) *RedisSearchCache {
	return &RedisSearchCache{client: client}
}

func searchKey(kind Kind, query string) string {
	return fmt.Sprintf("%s%s:%s", constants.RedisPrefixCatalogSearch, kind, strings.ToLower(strings.TrimSpace(query)))
}

func (cache *RedisSearchCache) Get(ctx context.Context, kind Kind, query string) ([]*Title, bool, error) {
	payload, err := cache.client.Get(ctx, searchKey(kind, query)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis_search_cache_get_failed: %w", err)
	}

	var titles []*Title
	if err := json.Unmarshal(payload, &titles); err != nil {
		// A corrupt entry is treated as a miss; it will be overwritten.
		return nil, false, fmt.Errorf("redis_search_cache_decode_failed: %w", err)
	}

	return titles, true, nil
}

func (cache *RedisSearchCache) Set(ctx context.Context, kind Kind, query string, titles []*Title, ttl time.Duration) error {
	payload, err := json.Marshal(titles)
	if err != nil {
		return fmt.Errorf("redis_search_cache_encode_failed: %w", err)
	}

	if err := cache.client.Set(ctx, searchKey(kind, query), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis_search_cache_set_failed: %w", err)
	}

	return nil
}
