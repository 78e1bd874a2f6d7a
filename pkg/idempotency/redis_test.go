package idempotency

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client), mr
}

func TestRedisStoreGetSet(t *testing.T) {
	ctx := context.Background()
	store, mr := newStore(t)

	v, err := store.Get(ctx, "idempotency:missing")
	require.NoError(t, err)
	assert.Empty(t, v)

	require.NoError(t, store.Set(ctx, "idempotency:abc", `{"id":1}`, time.Hour))
	v, err = store.Get(ctx, "idempotency:abc")
	require.NoError(t, err)
	assert.Equal(t, `{"id":1}`, v)

	mr.FastForward(2 * time.Hour)
	v, err = store.Get(ctx, "idempotency:abc")
	require.NoError(t, err)
	assert.Empty(t, v, "entry should expire with its ttl")
}

func TestRedisStoreUnavailable(t *testing.T) {
	store, mr := newStore(t)
	mr.Close()

	_, err := store.Get(context.Background(), "idempotency:abc")
	assert.Error(t, err)
}

func TestDial(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := Dial(context.Background(), "redis://"+mr.Addr(), "", 0)
	require.NoError(t, err)
	defer client.Close()

	_, err = Dial(context.Background(), "not a url", "", 0)
	assert.Error(t, err)
}
