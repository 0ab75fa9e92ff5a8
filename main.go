package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/example/taskify/config"
	"github.com/example/taskify/modules/activity"
	"github.com/example/taskify/modules/api"
	"github.com/example/taskify/modules/auth"
	"github.com/example/taskify/modules/ratelimit"
	"github.com/example/taskify/modules/todo"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

func main() {
	configPath := flag.String("config", os.Getenv("TASKIFY_CONFIG"), "path to a YAML config file")
	flag.Parse()

	cfg := config.MustLoad(*configPath)

	log.Println("=== Taskify ===")

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(cfg.ShutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Independent modules first, then the API that depends on them.
	app.Register(auth.NewModule(cfg.Auth))
	app.Register(todo.NewModule(cfg.Todo))
	app.Register(activity.NewModule(cfg.Activity))

	var apiOpts []api.Option
	if cfg.RedisEnabled() {
		rl := ratelimit.NewModule(cfg.Redis, cfg.RateLimit)
		app.Register(rl)
		apiOpts = append(apiOpts, api.WithRateLimiter(rl.Middleware()))
	} else {
		log.Println("[main] TASKIFY_REDIS_ADDR not set, rate limiting disabled")
	}
	app.Register(api.NewModule(cfg.HTTP, apiOpts...))

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo(cfg)

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(cfg config.Config) {
	log.Println("")
	log.Printf("Listening on %s", cfg.HTTP.Addr)
	log.Println("")
	log.Println("  Public Endpoints:")
	log.Println("  POST   /api/auth/register        - Create an account")
	log.Println("  POST   /api/auth/login           - Sign in and get tokens")
	log.Println("  POST   /api/auth/refresh         - Exchange a refresh token")
	log.Println("  GET    /health                   - Health check")
	log.Println("")
	log.Println("  Protected Endpoints (require Bearer token):")
	log.Println("  GET    /api/user/profile         - Profile with task statistics")
	log.Println("  GET    /api/user/todos           - List tasks (?status=&q=)")
	log.Println("  POST   /api/user/todos           - Create a task")
	log.Println("  PUT    /api/user/todos/:id       - Update a task")
	log.Println("  DELETE /api/user/todos/:id       - Delete a task")
	log.Println("  GET    /api/user/todos/stats     - Task statistics")
	log.Println("  GET    /api/user/todos/timeline  - Tasks grouped by day (?tz=)")
	log.Println("  GET    /api/user/activity        - Recent activity (?limit=)")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
