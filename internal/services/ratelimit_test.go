package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"codeclimb/internal/services"
)

func newTestLimiter(t *testing.T, window time.Duration, max int) (*services.RateLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return services.NewRateLimiter(client, window, max), mr
}

func TestRateLimiterAllowsUpToMax(t *testing.T) {
	limiter, _ := newTestLimiter(t, time.Minute, 3)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		allowed, err := limiter.Allow(ctx, "rate:ip:10.0.0.1")
		if err != nil {
			t.Fatalf("Allow #%d failed: %v", i, err)
		}
		if !allowed {
			t.Fatalf("request #%d rejected, limit is 3", i)
		}
	}

	allowed, err := limiter.Allow(ctx, "rate:ip:10.0.0.1")
	if err != nil {
		t.Fatalf("Allow failed: %v", err)
	}
	if allowed {
		t.Fatalf("request #4 allowed past the limit")
	}
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	limiter, _ := newTestLimiter(t, time.Minute, 1)
	ctx := context.Background()

	if allowed, _ := limiter.Allow(ctx, "rate:ip:10.0.0.1"); !allowed {
		t.Fatalf("first key rejected on first request")
	}
	if allowed, _ := limiter.Allow(ctx, "rate:ip:10.0.0.2"); !allowed {
		t.Fatalf("second key rejected, counters should be per-key")
	}
	if allowed, _ := limiter.Allow(ctx, "rate:ip:10.0.0.1"); allowed {
		t.Fatalf("first key allowed past its limit")
	}
}

func TestRateLimiterResetsAfterWindow(t *testing.T) {
	limiter, mr := newTestLimiter(t, time.Minute, 1)
	ctx := context.Background()

	if allowed, _ := limiter.Allow(ctx, "rate:ip:10.0.0.1"); !allowed {
		t.Fatalf("first request rejected")
	}
	if allowed, _ := limiter.Allow(ctx, "rate:ip:10.0.0.1"); allowed {
		t.Fatalf("second request allowed within the window")
	}

	mr.FastForward(time.Minute + time.Second)

	allowed, err := limiter.Allow(ctx, "rate:ip:10.0.0.1")
	if err != nil {
		t.Fatalf("Allow after window failed: %v", err)
	}
	if !allowed {
		t.Fatalf("request rejected after window expired")
	}
}
