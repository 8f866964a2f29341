package database

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"boardapi/internal/config"
)

// NewRedis connects to the configured redis:// URL and checks it answers PING.
func NewRedis(ctx context.Context, c config.RedisConfig) (*redis.Client, error) {
	if c.URL == "" {
		return nil, fmt.Errorf("%w: redis url required", ErrIncompleteConfig)
	}
	opts, err := redis.ParseURL(c.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	pctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(pctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}
