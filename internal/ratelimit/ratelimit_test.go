package ratelimit

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	m, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(m.Close)

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	t.Cleanup(func() {
		if cerr := client.Close(); cerr != nil {
			t.Logf("redis close: %v", cerr)
		}
	})
	return m, client
}

func TestFixedWindow_BlocksAfterLimit(t *testing.T) {
	// Arrange
	_, client := newTestClient(t)
	limiter := NewFixedWindow(client, "register", 3, time.Minute)
	ctx := context.Background()

	// Act
	for i := 0; i < 3; i++ {
		allowed, _, err := limiter.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		require.True(t, allowed, "request %d should pass", i+1)
	}
	allowed, retryAfter, err := limiter.Allow(ctx, "10.0.0.1")

	// Assert
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Greater(t, retryAfter, time.Duration(0))
	assert.LessOrEqual(t, retryAfter, time.Minute)
}

func TestFixedWindow_KeysAreIndependent(t *testing.T) {
	_, client := newTestClient(t)
	limiter := NewFixedWindow(client, "register", 1, time.Minute)
	ctx := context.Background()

	first, _, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	other, _, err := limiter.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)

	assert.True(t, first)
	assert.True(t, other)
}

func TestFixedWindow_ResetsAfterWindow(t *testing.T) {
	// Arrange
	m, client := newTestClient(t)
	limiter := NewFixedWindow(client, "register", 1, time.Minute)
	ctx := context.Background()

	_, _, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	blocked, _, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	require.False(t, blocked)

	// Act
	m.FastForward(time.Minute + time.Second)
	allowed, _, err := limiter.Allow(ctx, "10.0.0.1")

	// Assert
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestFixedWindow_RedisDown(t *testing.T) {
	m, client := newTestClient(t)
	limiter := NewFixedWindow(client, "register", 1, time.Minute)
	m.Close()

	_, _, err := limiter.Allow(context.Background(), "10.0.0.1")

	assert.Error(t, err)
}
