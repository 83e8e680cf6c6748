package dedup

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniRedisClient(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })

	return mr, client
}

func TestRedisGuard(t *testing.T) {
	ctx := context.Background()
	mr, client := newMiniRedisClient(t)
	guard := NewRedis(client, time.Hour)

	seen, err := guard.Seen(ctx, "msg-1")
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, guard.Mark(ctx, "msg-1"))

	seen, err = guard.Seen(ctx, "msg-1")
	require.NoError(t, err)
	assert.True(t, seen)

	seen, err = guard.Seen(ctx, "msg-2")
	require.NoError(t, err)
	assert.False(t, seen, "keys are independent")

	t.Run("marks expire", func(t *testing.T) {
		mr.FastForward(61 * time.Minute)

		seen, err := guard.Seen(ctx, "msg-1")
		require.NoError(t, err)
		assert.False(t, seen)
	})

	t.Run("errors surface when redis is gone", func(t *testing.T) {
		mr.Close()

		_, err := guard.Seen(ctx, "msg-3")
		assert.Error(t, err)
		assert.Error(t, guard.Mark(ctx, "msg-3"))
	})
}

func TestNewClient(t *testing.T) {
	client, err := NewClient("redis://localhost:6379/2")
	require.NoError(t, err)
	assert.Equal(t, 2, client.Options().DB)
	_ = client.Close()

	_, err = NewClient("not a url")
	assert.Error(t, err)
}

func TestNoop(t *testing.T) {
	ctx := context.Background()
	var guard Guard = Noop{}

	require.NoError(t, guard.Mark(ctx, "k"))
	seen, err := guard.Seen(ctx, "k")
	require.NoError(t, err)
	assert.False(t, seen)
}
