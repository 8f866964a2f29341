package database

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boardapi/internal/config"
)

func TestNewRedis(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		s := miniredis.RunT(t)

		client, err := NewRedis(ctx, config.RedisConfig{URL: "redis://" + s.Addr()})
		require.NoError(t, err)
		defer client.Close()

		assert.NoError(t, client.Set(ctx, "k", "v", 0).Err())
		got, err := s.DB(0).Get("k")
		require.NoError(t, err)
		assert.Equal(t, "v", got)
	})

	t.Run("missing url", func(t *testing.T) {
		client, err := NewRedis(ctx, config.RedisConfig{})
		assert.ErrorIs(t, err, ErrIncompleteConfig)
		assert.Nil(t, client)
	})

	t.Run("malformed url", func(t *testing.T) {
		client, err := NewRedis(ctx, config.RedisConfig{URL: "http://nope"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse redis url")
		assert.Nil(t, client)
	})

	t.Run("unreachable", func(t *testing.T) {
		s := miniredis.RunT(t)
		addr := s.Addr()
		s.Close()

		client, err := NewRedis(ctx, config.RedisConfig{URL: "redis://" + addr})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ping redis")
		assert.Nil(t, client)
	})
}
