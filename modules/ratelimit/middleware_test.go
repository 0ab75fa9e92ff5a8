package ratelimit

import (
	"context"
	"errors"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

// countingLimiter allows the first n requests per key.
type countingLimiter struct {
	mu    sync.Mutex
	n     int
	seen  map[string]int
	err   error
	calls []string
}

func newCountingLimiter(n int) *countingLimiter {
	return &countingLimiter{n: n, seen: make(map[string]int)}
}

func (l *countingLimiter) Allow(_ context.Context, key string) (*Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.calls = append(l.calls, key)
	if l.err != nil {
		return nil, l.err
	}
	l.seen[key]++
	count := l.seen[key]
	res := &Result{Limit: l.n, ResetAt: time.Unix(1700000000, 0)}
	if count <= l.n {
		res.Allowed = true
		res.Remaining = l.n - count
		return res, nil
	}
	res.RetryAfter = 1500 * time.Millisecond
	return res, nil
}

func TestMiddleware_IPRateLimit(t *testing.T) {
	ip := newCountingLimiter(2)
	mw := NewMiddleware(ip, newCountingLimiter(10))

	app := fiber.New()
	app.Get("/login", mw.IPRateLimit(), func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/login", nil), -1)
		if err != nil {
			t.Fatalf("app.Test() error = %v", err)
		}
		if resp.StatusCode != fiber.StatusOK {
			t.Errorf("request %d status = %d, want 200", i+1, resp.StatusCode)
		}
		if got := resp.Header.Get("X-RateLimit-Limit"); got != "2" {
			t.Errorf("X-RateLimit-Limit = %q, want 2", got)
		}
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/login", nil), -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", resp.StatusCode)
	}
	if got := resp.Header.Get("Retry-After"); got != "1" {
		t.Errorf("Retry-After = %q, want 1", got)
	}
}

func TestMiddleware_UserRateLimitKeysByUser(t *testing.T) {
	ip := newCountingLimiter(100)
	user := newCountingLimiter(1)
	mw := NewMiddleware(ip, user)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if id := c.Get("X-Test-User"); id != "" {
			c.Locals("user_id", id)
		}
		return c.Next()
	})
	app.Get("/todos", mw.UserRateLimit(), func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	send := func(userID string) int {
		req := httptest.NewRequest("GET", "/todos", nil)
		if userID != "" {
			req.Header.Set("X-Test-User", userID)
		}
		resp, err := app.Test(req, -1)
		if err != nil {
			t.Fatalf("app.Test() error = %v", err)
		}
		return resp.StatusCode
	}

	if got := send("alice"); got != fiber.StatusOK {
		t.Errorf("alice first = %d, want 200", got)
	}
	if got := send("alice"); got != fiber.StatusTooManyRequests {
		t.Errorf("alice second = %d, want 429", got)
	}
	if got := send("bob"); got != fiber.StatusOK {
		t.Errorf("bob first = %d, want 200", got)
	}
	if got := send(""); got != fiber.StatusOK {
		t.Errorf("anonymous = %d, want 200 via IP limit", got)
	}
	if len(ip.calls) != 1 {
		t.Errorf("ip limiter calls = %v, want one fallback call", ip.calls)
	}
}

func TestMiddleware_FailsOpen(t *testing.T) {
	ip := newCountingLimiter(1)
	ip.err = errors.New("redis down")
	mw := NewMiddleware(ip, ip)

	app := fiber.New()
	app.Get("/login", mw.IPRateLimit(), func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/login", nil), -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if got := resp.Header.Get("X-RateLimit-Error"); got != "redis down" {
		t.Errorf("X-RateLimit-Error = %q, want redis down", got)
	}
}
