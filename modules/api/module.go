package api

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/example/taskify/config"
	"github.com/example/taskify/modules/activity"
	"github.com/example/taskify/modules/auth"
	"github.com/example/taskify/modules/ratelimit"
	"github.com/example/taskify/modules/todo"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Deps are the ports the HTTP surface is built on. Activity and Limiter
// are optional.
type Deps struct {
	Auth     auth.AuthPort
	Todos    todo.TodoPort
	Activity activity.ActivityPort
	Limiter  *ratelimit.Middleware
	Now      func() time.Time
}

// Handlers contains HTTP handlers for the API.
type Handlers struct {
	auth     auth.AuthPort
	todos    todo.TodoPort
	activity activity.ActivityPort
	now      func() time.Time
}

// NewRouter builds the Fiber app with every route wired to deps.
func NewRouter(deps Deps) *fiber.App {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	h := &Handlers{
		auth:     deps.Auth,
		todos:    deps.Todos,
		activity: deps.Activity,
		now:      now,
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"module": "api",
		})
	})

	api := app.Group("/api")

	authRoutes := api.Group("/auth")
	if deps.Limiter != nil {
		authRoutes.Use(deps.Limiter.IPRateLimit())
	}
	authRoutes.Post("/register", h.Register)
	authRoutes.Post("/login", h.Login)
	authRoutes.Post("/refresh", h.Refresh)

	user := api.Group("/user", AuthMiddleware(deps.Auth))
	if deps.Limiter != nil {
		user.Use(deps.Limiter.UserRateLimit())
	}
	user.Get("/profile", h.Profile)
	user.Get("/todos", h.ListTodos)
	user.Post("/todos", h.CreateTodo)
	user.Get("/todos/stats", h.TodoStats)
	user.Get("/todos/timeline", h.TodoTimeline)
	user.Put("/todos/:id", h.UpdateTodo)
	user.Delete("/todos/:id", h.DeleteTodo)
	if deps.Activity != nil {
		user.Get("/activity", h.Activity)
	}

	return app
}

// APIModule serves the HTTP API.
type APIModule struct {
	cfg      config.HTTP
	app      *fiber.App
	auth     auth.AuthPort
	todos    todo.TodoPort
	activity activity.ActivityPort
	limiter  *ratelimit.Middleware
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// Option configures an APIModule.
type Option func(*APIModule)

// WithRateLimiter protects the routes with limiter.
func WithRateLimiter(limiter *ratelimit.Middleware) Option {
	return func(m *APIModule) {
		m.limiter = limiter
	}
}

// NewModule creates a new APIModule.
func NewModule(cfg config.HTTP, opts ...Option) *APIModule {
	m := &APIModule{cfg: cfg}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"auth", "todo", "activity"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "auth":
		m.auth = auth.NewAuthAdapter(container)
	case "todo":
		m.todos = todo.NewTodoAdapter(container)
	case "activity":
		m.activity = activity.NewActivityAdapter(container)
	}
}

// Start builds the router and starts listening.
func (m *APIModule) Start(_ context.Context) error {
	if m.auth == nil {
		return fmt.Errorf("auth dependency not set")
	}
	if m.todos == nil {
		return fmt.Errorf("todo dependency not set")
	}

	m.app = NewRouter(Deps{
		Auth:     m.auth,
		Todos:    m.todos,
		Activity: m.activity,
		Limiter:  m.limiter,
	})

	go func() {
		if err := m.app.Listen(m.cfg.Addr); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	log.Printf("[api] HTTP server started on %s", m.cfg.Addr)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *APIModule) Stop(ctx context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	return m.app.ShutdownWithContext(ctx)
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"addr":       m.cfg.Addr,
			"rate_limit": m.limiter != nil,
		},
	}
}
