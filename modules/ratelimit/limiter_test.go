package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		t.Skip("Redis not available, skipping integration test")
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestSlidingWindowLimiter_Allow(t *testing.T) {
	client := setupRedis(t)
	ctx := context.Background()

	prefix := "test:taskify:ratelimit:"
	t.Cleanup(func() { client.Del(ctx, prefix+"k", prefix+"k:counter") })

	limiter := NewSlidingWindowLimiter(client, Config{Requests: 3, Window: time.Minute}, prefix)

	for i := 0; i < 3; i++ {
		res, err := limiter.Allow(ctx, "k")
		if err != nil {
			t.Fatalf("Allow() error = %v", err)
		}
		if !res.Allowed || res.Remaining != 3-i-1 || res.Limit != 3 {
			t.Errorf("request %d: %+v", i+1, res)
		}
	}

	res, err := limiter.Allow(ctx, "k")
	if err != nil {
		t.Fatalf("Allow() error = %v", err)
	}
	if res.Allowed || res.Remaining != 0 || res.RetryAfter <= 0 {
		t.Errorf("4th request = %+v, want denied with RetryAfter", res)
	}
}

func TestSlidingWindowLimiter_WindowSlides(t *testing.T) {
	client := setupRedis(t)
	ctx := context.Background()

	prefix := "test:taskify:ratelimit:slide:"
	t.Cleanup(func() { client.Del(ctx, prefix+"k", prefix+"k:counter") })

	limiter := NewSlidingWindowLimiter(client, Config{Requests: 1, Window: time.Minute}, prefix)
	start := time.Now()
	limiter.now = func() time.Time { return start }

	if res, err := limiter.Allow(ctx, "k"); err != nil || !res.Allowed {
		t.Fatalf("first Allow() = %+v, %v", res, err)
	}
	if res, err := limiter.Allow(ctx, "k"); err != nil || res.Allowed {
		t.Fatalf("second Allow() = %+v, %v, want denied", res, err)
	}

	limiter.now = func() time.Time { return start.Add(61 * time.Second) }
	if res, err := limiter.Allow(ctx, "k"); err != nil || !res.Allowed {
		t.Errorf("Allow() after window = %+v, %v, want allowed", res, err)
	}
}
