package lock

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Debyte404/Obscura/internal/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLocker(t *testing.T) {
	ctx := context.Background()

	t.Run("second acquire fails fast", func(t *testing.T) {
		l := NewLocalLocker()
		release, err := l.Acquire(ctx, "match:lock:u1", time.Minute)
		require.NoError(t, err)

		_, err = l.Acquire(ctx, "match:lock:u1", time.Minute)
		assert.ErrorIs(t, err, domain.ErrMatchInProgress)

		_, err = l.Acquire(ctx, "match:lock:u2", time.Minute)
		assert.NoError(t, err, "keys are independent")

		require.NoError(t, release(ctx))
		_, err = l.Acquire(ctx, "match:lock:u1", time.Minute)
		assert.NoError(t, err)
	})

	t.Run("expired lease can be taken over", func(t *testing.T) {
		now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		l := NewLocalLocker()
		l.now = func() time.Time { return now }

		staleRelease, err := l.Acquire(ctx, "k", time.Second)
		require.NoError(t, err)

		now = now.Add(2 * time.Second)
		_, err = l.Acquire(ctx, "k", time.Minute)
		require.NoError(t, err)

		// The old holder must not free the new lease.
		require.NoError(t, staleRelease(ctx))
		_, err = l.Acquire(ctx, "k", time.Minute)
		assert.ErrorIs(t, err, domain.ErrMatchInProgress)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := NewLocalLocker().Acquire(cctx, "k", time.Minute)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("exactly one concurrent winner", func(t *testing.T) {
		l := NewLocalLocker()
		var wins atomic.Int32
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := l.Acquire(ctx, "k", time.Minute); err == nil {
					wins.Add(1)
				}
			}()
		}
		wg.Wait()
		assert.EqualValues(t, 1, wins.Load())
		assert.Equal(t, 1, l.Held())
	})
}

func TestRedisLocker(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err())

	l := NewRedisLocker(client)
	key := "test:match:lock:" + uuid.NewString()
	t.Cleanup(func() { client.Del(ctx, key) })

	release, err := l.Acquire(ctx, key, 5*time.Second)
	require.NoError(t, err)

	_, err = l.Acquire(ctx, key, 5*time.Second)
	assert.ErrorIs(t, err, domain.ErrMatchInProgress)

	ttl, err := client.PTTL(ctx, key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, release(ctx))
	exists, err := client.Exists(ctx, key).Result()
	require.NoError(t, err)
	assert.Zero(t, exists)

	// Releasing twice is harmless.
	assert.NoError(t, release(ctx))
}
