// Package ratelimit counts requests per key in fixed Redis windows so every
// instance behind a load balancer shares the same budget.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter decides whether one more request under key fits the budget.
type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}

// FixedWindow allows limit requests per key in each window.
type FixedWindow struct {
	client redis.Cmdable
	prefix string
	limit  int64
	window time.Duration
}

func NewFixedWindow(client redis.Cmdable, prefix string, limit int, window time.Duration) *FixedWindow {
	return &FixedWindow{client: client, prefix: prefix, limit: int64(limit), window: window}
}

func (l *FixedWindow) key(key string) string {
	return fmt.Sprintf("ratelimit:%s:%s", l.prefix, key)
}

// Allow opens the window on the first hit and counts every hit inside it.
func (l *FixedWindow) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	k := l.key(key)
	var (
		count *redis.IntCmd
		ttl   *redis.DurationCmd
	)
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, k, 0, l.window)
		count = pipe.Incr(ctx, k)
		ttl = pipe.TTL(ctx, k)
		return nil
	})
	if err != nil {
		return false, 0, fmt.Errorf("rate limit %s: %w", k, err)
	}

	if count.Val() <= l.limit {
		return true, 0, nil
	}
	retryAfter := ttl.Val()
	if retryAfter < 0 {
		retryAfter = l.window
	}
	return false, retryAfter, nil
}

// Unlimited allows everything; used when no Redis is configured.
type Unlimited struct{}

func (Unlimited) Allow(context.Context, string) (bool, time.Duration, error) {
	return true, 0, nil
}
