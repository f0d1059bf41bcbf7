package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "timetracker:"

// SummaryCache caches per-user aggregation results in Redis.
type SummaryCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewSummaryCache returns a new SummaryCache.
func NewSummaryCache(rdb *redis.Client, ttl time.Duration) *SummaryCache {
	return &SummaryCache{rdb: rdb, ttl: ttl}
}

// Connect parses a redis:// URL and verifies the server answers.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// Get decodes the cached value for key into dst. It reports false on a miss.
func (c *SummaryCache) Get(ctx context.Context, userID, key string, dst any) (bool, error) {
	b, err := c.rdb.Get(ctx, userKey(userID, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores value under key for userID.
func (c *SummaryCache) Set(ctx context.Context, userID, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, userKey(userID, key), b, c.ttl).Err()
}

// Generation returns the invalidation counter for userID, zero if unset.
func (c *SummaryCache) Generation(ctx context.Context, userID string) (int64, error) {
	n, err := c.rdb.Get(ctx, generationKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

// Invalidate bumps the generation for userID and removes its cached results.
func (c *SummaryCache) Invalidate(ctx context.Context, userID string) error {
	if err := c.rdb.Incr(ctx, generationKey(userID)).Err(); err != nil {
		return err
	}
	iter := c.rdb.Scan(ctx, 0, userKey(userID, "*"), 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func userKey(userID, key string) string {
	return keyPrefix + userID + ":" + key
}

// generationKey sits outside the userKey namespace so Invalidate's scan
// never deletes it.
func generationKey(userID string) string {
	return keyPrefix + userID + "#gen"
}
