package ratelimit

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Middleware applies per-IP and per-user limits to Fiber routes.
type Middleware struct {
	ipLimiter   Limiter
	userLimiter Limiter
}

// NewMiddleware creates a Middleware from two limiters.
func NewMiddleware(ipLimiter, userLimiter Limiter) *Middleware {
	return &Middleware{ipLimiter: ipLimiter, userLimiter: userLimiter}
}

// IPRateLimit limits requests by client IP.
func (m *Middleware) IPRateLimit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ip := c.IP()
		if ip == "" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":   "forbidden",
				"message": "Unable to determine client IP address",
			})
		}
		return m.check(c, m.ipLimiter, "ip:"+ip)
	}
}

// UserRateLimit limits requests by the user id the auth middleware stored
// in c.Locals("user_id"). Requests without one are limited by IP.
func (m *Middleware) UserRateLimit() fiber.Handler {
	ipLimit := m.IPRateLimit()
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("user_id").(string)
		if !ok || userID == "" {
			return ipLimit(c)
		}
		return m.check(c, m.userLimiter, "user:"+userID)
	}
}

func (m *Middleware) check(c *fiber.Ctx, limiter Limiter, key string) error {
	result, err := limiter.Allow(c.UserContext(), key)
	if err != nil {
		c.Set("X-RateLimit-Error", err.Error())
		return c.Next()
	}

	c.Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	c.Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	c.Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

	if !result.Allowed {
		return tooManyRequests(c, result)
	}
	return c.Next()
}

func tooManyRequests(c *fiber.Ctx, result *Result) error {
	retryAfter := int(result.RetryAfter.Seconds())
	if retryAfter < 1 {
		retryAfter = 1
	}
	c.Set("Retry-After", strconv.Itoa(retryAfter))

	return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
		"error":   "rate_limited",
		"message": fmt.Sprintf("Rate limit exceeded. Please retry after %d seconds.", retryAfter),
	})
}
