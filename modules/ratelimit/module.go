package ratelimit

import (
	"context"
	"fmt"
	"log"

	"github.com/example/taskify/config"
	"github.com/go-monolith/mono"
	"github.com/redis/go-redis/v9"
)

// Module owns the Redis client and the rate limiting middleware.
type Module struct {
	redisCfg   config.Redis
	limitCfg   config.RateLimit
	client     *redis.Client
	middleware *Middleware
}

var _ mono.Module = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates the module and its middleware. Redis is contacted in Start.
func NewModule(redisCfg config.Redis, limitCfg config.RateLimit) *Module {
	client := redis.NewClient(&redis.Options{
		Addr:     redisCfg.Addr,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	})
	return &Module{
		redisCfg: redisCfg,
		limitCfg: limitCfg,
		client:   client,
		middleware: NewMiddleware(
			NewSlidingWindowLimiter(client, Config{Requests: limitCfg.AuthRequests, Window: limitCfg.AuthWindow}, limitCfg.KeyPrefix),
			NewSlidingWindowLimiter(client, Config{Requests: limitCfg.UserRequests, Window: limitCfg.UserWindow}, limitCfg.KeyPrefix),
		),
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "ratelimit"
}

// Start verifies the Redis connection.
func (m *Module) Start(ctx context.Context) error {
	if err := m.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Printf("[ratelimit] Connected to Redis at %s", m.redisCfg.Addr)
	return nil
}

// Stop closes the Redis connection.
func (m *Module) Stop(_ context.Context) error {
	if err := m.client.Close(); err != nil {
		log.Printf("[ratelimit] Error closing Redis connection: %v", err)
	}
	log.Println("[ratelimit] Module stopped")
	return nil
}

// Health pings Redis.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if err := m.client.Ping(ctx).Err(); err != nil {
		return mono.HealthStatus{Healthy: false, Message: fmt.Sprintf("redis ping failed: %v", err)}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{"redis": m.redisCfg.Addr},
	}
}

// Middleware returns the Fiber middleware backed by this module's limiters.
func (m *Module) Middleware() *Middleware {
	return m.middleware
}
