// Copyright (c) 2026 Herdbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package barn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/herdbook/internal/platform/constants"
)

// RedisLayoutCache implements [LayoutCache] on Redis with JSON values.
type RedisLayoutCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisLayoutCache creates a Redis-backed layout cache.
func NewRedisLayoutCache(client *redis.Client, ttl time.Duration) *RedisLayoutCache {
	return &RedisLayoutCache{client: client, ttl: ttl}
}

// LayoutKey returns the Redis key of a barn's cached view.
func LayoutKey(barnID int64) string {
	return constants.RedisPrefixBarnLayout + strconv.FormatInt(barnID, 10)
}

/*
Get loads a cached view.

Parameters:
  - context: context.Context
  - barnID: int64

Returns:
  - *LayoutView: nil on a miss
  - bool: true on a hit
  - error: Connectivity or decoding failures
*/
func (cache *RedisLayoutCache) Get(context context.Context, barnID int64) (*LayoutView, bool, error) {
	raw, err := cache.client.Get(context, LayoutKey(barnID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis_layout_get_failed: %w", err)
	}

	view := &LayoutView{}
	if err := json.Unmarshal(raw, view); err != nil {
		return nil, false, fmt.Errorf("redis_layout_decode_failed: %w", err)
	}

	return view, true, nil
}

// Set stores view under its barn key with the configured TTL.
func (cache *RedisLayoutCache) Set(context context.Context, view *LayoutView) error {
	raw, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("redis_layout_encode_failed: %w", err)
	}

	if err := cache.client.Set(context, LayoutKey(view.BarnID), raw, cache.ttl).Err(); err != nil {
		return fmt.Errorf("redis_layout_set_failed: %w", err)
	}

	return nil
}

// Invalidate deletes the cached views of barnIDs.
func (cache *RedisLayoutCache) Invalidate(context context.Context, barnIDs ...int64) error {
	if len(barnIDs) == 0 {
		return nil
	}

	keys := make([]string, len(barnIDs))
	for i, barnID := range barnIDs {
		keys[i] = LayoutKey(barnID)
	}

	if err := cache.client.Del(context, keys...).Err(); err != nil {
		return fmt.Errorf("redis_layout_delete_failed: %w", err)
	}

	return nil
}
