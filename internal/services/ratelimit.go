package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter enforces fixed-window request limits backed by Redis. The
// first request in a window creates the counter with the window TTL;
// subsequent requests increment it.
type RateLimiter struct {
	client *redis.Client
	window time.Duration
	max    int
}

func NewRateLimiter(client *redis.Client, window time.Duration, max int) *RateLimiter {
	return &RateLimiter{client: client, window: window, max: max}
}

// Allow reports whether the caller identified by key may proceed within the
// current window.
func (l *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.max <= 0 {
		return true, nil
	}

	acquired, err := l.client.SetNX(ctx, key, 1, l.window).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit check failed: %w", err)
	}
	if acquired {
		return l.max >= 1, nil
	}

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit check failed: %w", err)
	}

	// SetNX and Incr can race with expiry; make sure the counter never
	// lives without a TTL.
	ttl, err := l.client.TTL(ctx, key).Result()
	if err == nil && ttl < 0 {
		_ = l.client.Expire(ctx, key, l.window).Err()
	}

	return count <= int64(l.max), nil
}
