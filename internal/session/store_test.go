package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client), s
}

func TestRedisStore_SaveConsume(t *testing.T) {
	store, s := setupStore(t)
	ctx := context.Background()
	data := Data{UserID: "user-1", ClientID: "client-1", CreatedAt: time.Now().UTC().Truncate(time.Second)}

	require.NoError(t, store.Save(ctx, "hash-1", data, time.Hour))
	assert.True(t, s.Exists("refresh:hash-1"))
	assert.Equal(t, time.Hour, s.TTL("refresh:hash-1"))

	got, err := store.Consume(ctx, "hash-1")
	require.NoError(t, err)
	assert.Equal(t, data.UserID, got.UserID)
	assert.Equal(t, data.ClientID, got.ClientID)
	assert.True(t, data.CreatedAt.Equal(got.CreatedAt))

	_, err = store.Consume(ctx, "hash-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisStore_Expired(t *testing.T) {
	store, s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "hash-2", Data{UserID: "u"}, time.Minute))
	s.FastForward(2 * time.Minute)

	_, err := store.Consume(ctx, "hash-2")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisStore_Revoke(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "a", Data{UserID: "u1"}, time.Hour))
	require.NoError(t, store.Save(ctx, "b", Data{UserID: "u2"}, time.Hour))

	require.NoError(t, store.Revoke(ctx, "a"))
	require.NoError(t, store.Revoke(ctx, "missing"))

	_, err := store.Consume(ctx, "a")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	got, err := store.Consume(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "u2", got.UserID)
}

func TestRedisStore_DefaultTTL(t *testing.T) {
	store, s := setupStore(t)
	require.NoError(t, store.Save(context.Background(), "c", Data{UserID: "u"}, 0))
	assert.Equal(t, 30*24*time.Hour, s.TTL("refresh:c"))
}

func TestRedisStore_Ping(t *testing.T) {
	store, s := setupStore(t)
	assert.NoError(t, store.Ping(context.Background()))

	s.Close()
	assert.Error(t, store.Ping(context.Background()))
}
