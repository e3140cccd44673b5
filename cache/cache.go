// Package cache provides JSON cache-aside helpers over Redis. A nil
// Cache is valid and disables caching, so callers never branch on
// whether Redis is configured.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL is used when a caller passes no TTL. Plan lists and
// dashboard stats tolerate ten minutes of staleness.
const DefaultTTL = 10 * time.Minute

type Cache struct {
	rdb *redis.Client
}

// New wraps a Redis client; rdb may be nil to disable caching.
func New(rdb *redis.Client) *Cache {
	if rdb == nil {
		return nil
	}
	return &Cache{rdb: rdb}
}

// GetJSON loads the key into dest. Returns false on miss, disabled
// cache, or decode failure (a poisoned entry is treated as a miss and
// deleted).
func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if c == nil {
		return false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.rdb.Del(ctx, key)
		return false
	}
	return true
}

// SetJSON stores value under key. Encoding or Redis errors are returned
// for logging but callers may ignore them: a failed cache write only
// costs a recompute.
func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return c.rdb.Set(ctx, key, raw, ttl).Err()
}

// Delete drops keys after a write so the next read recomputes.
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if c == nil || len(keys) == 0 {
		return nil
	}
	err := c.rdb.Del(ctx, keys...).Err()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}

// DeletePattern drops all keys matching a glob pattern, e.g. everything
// cached for one organization after a bulk import.
func (c *Cache) DeletePattern(ctx context.Context, pattern string) error {
	if c == nil {
		return nil
	}
	iter := c.rdb.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
