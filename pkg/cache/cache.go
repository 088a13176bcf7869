// Package cache is Volt's Redis-backed cache. Values are stored as JSON.
//
// When Redis is unreachable the package degrades to a no-op: Get always
// misses and Set/Del succeed silently, so a missing cache never takes the
// application down.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/voltframework/volt/config"
)

var (
	rdb *redis.Client
	ctx = context.Background()
)

// Connect initialises the Redis client and verifies it with a ping.
func Connect() error {
	rdb = redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb = nil // unavailable; Get/Set/Del become no-ops
		return fmt.Errorf("cache: redis ping: %w", err)
	}
	return nil
}

// Available reports whether a live Redis connection is held.
func Available() bool { return rdb != nil }

// Get unmarshals the cached value under key into dest.
// Returns true on a hit, false on miss or error.
func Get(key string, dest any) bool {
	if rdb == nil {
		return false
	}
	raw, err := rdb.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(raw), dest) == nil
}

// Set stores value under key for ttl. A zero ttl means no expiry.
func Set(key string, value any, ttl time.Duration) error {
	if rdb == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: marshal %s: %w", key, err)
	}
	return rdb.Set(ctx, key, raw, ttl).Err()
}

// Del removes keys.
func Del(keys ...string) error {
	if rdb == nil {
		return nil
	}
	return rdb.Del(ctx, keys...).Err()
}
