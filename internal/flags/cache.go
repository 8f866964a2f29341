package flags

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache holds evaluated flags per client.
type Cache interface {
	// Get returns ok=false on a miss.
	Get(ctx context.Context, clientID string) (map[string]bool, bool, error)
	Set(ctx context.Context, clientID string, values map[string]bool) error
	// Invalidate drops every cached evaluation.
	Invalidate(ctx context.Context) error
}

// RedisCache stores evaluations as JSON under "flags:<clientID>".
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &RedisCache{client: client, ttl: ttl}
}

var _ Cache = (*RedisCache)(nil)

const cachePrefix = "flags:"

func (c *RedisCache) Get(ctx context.Context, clientID string) (map[string]bool, bool, error) {
	raw, err := c.client.Get(ctx, cachePrefix+clientID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get flag cache: %w", err)
	}
	var values map[string]bool
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, false, fmt.Errorf("decode flag cache: %w", err)
	}
	return values, true, nil
}

func (c *RedisCache) Set(ctx context.Context, clientID string, values map[string]bool) error {
	b, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("encode flag cache: %w", err)
	}
	if err := c.client.Set(ctx, cachePrefix+clientID, b, c.ttl).Err(); err != nil {
		return fmt.Errorf("set flag cache: %w", err)
	}
	return nil
}

func (c *RedisCache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, cachePrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan flag cache: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("clear flag cache: %w", err)
	}
	return nil
}
