// Package config loads the server configuration from an optional YAML file
// and the environment.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the complete server configuration.
type Config struct {
	HTTP            HTTP          `yaml:"http"`
	Auth            Auth          `yaml:"auth"`
	Todo            Todo          `yaml:"todo"`
	Activity        Activity      `yaml:"activity"`
	Redis           Redis         `yaml:"redis"`
	RateLimit       RateLimit     `yaml:"rate_limit"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"TASKIFY_SHUTDOWN_TIMEOUT" env-default:"30s"`
}

// HTTP configures the API listener.
type HTTP struct {
	Addr string `yaml:"addr" env:"TASKIFY_HTTP_ADDR" env-default:":3000"`
}

// Auth configures user storage and token issuing.
type Auth struct {
	DBPath          string        `yaml:"db_path" env:"TASKIFY_AUTH_DB_PATH" env-default:"taskify_users.db"`
	JWTSecret       string        `yaml:"jwt_secret" env:"TASKIFY_JWT_SECRET" env-default:"change-me-in-production"`
	JWTIssuer       string        `yaml:"jwt_issuer" env:"TASKIFY_JWT_ISSUER" env-default:"taskify"`
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl" env:"TASKIFY_ACCESS_TOKEN_TTL" env-default:"15m"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl" env:"TASKIFY_REFRESH_TOKEN_TTL" env-default:"720h"`
	BcryptCost      int           `yaml:"bcrypt_cost" env:"TASKIFY_BCRYPT_COST" env-default:"10"`
}

// Todo configures todo storage.
type Todo struct {
	DBPath string `yaml:"db_path" env:"TASKIFY_TODO_DB_PATH" env-default:"taskify_todos.db"`
}

// Activity configures the per-user activity feed.
type Activity struct {
	FeedSize int `yaml:"feed_size" env:"TASKIFY_ACTIVITY_FEED_SIZE" env-default:"100"`
}

// Redis configures the optional Redis connection. An empty Addr disables
// rate limiting.
type Redis struct {
	Addr     string `yaml:"addr" env:"TASKIFY_REDIS_ADDR"`
	Password string `yaml:"password" env:"TASKIFY_REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"TASKIFY_REDIS_DB" env-default:"0"`
}

// RateLimit configures the sliding-window limits.
type RateLimit struct {
	AuthRequests int           `yaml:"auth_requests" env:"TASKIFY_RATELIMIT_AUTH_REQUESTS" env-default:"10"`
	AuthWindow   time.Duration `yaml:"auth_window" env:"TASKIFY_RATELIMIT_AUTH_WINDOW" env-default:"1m"`
	UserRequests int           `yaml:"user_requests" env:"TASKIFY_RATELIMIT_USER_REQUESTS" env-default:"300"`
	UserWindow   time.Duration `yaml:"user_window" env:"TASKIFY_RATELIMIT_USER_WINDOW" env-default:"1m"`
	KeyPrefix    string        `yaml:"key_prefix" env:"TASKIFY_RATELIMIT_PREFIX" env-default:"taskify:ratelimit:"`
}

// RedisEnabled reports whether a Redis address is configured.
func (c Config) RedisEnabled() bool {
	return c.Redis.Addr != ""
}

// Load reads the config file at path, falling back to the environment
// alone when path is empty or the file does not exist.
func Load(path string) (Config, error) {
	var cfg Config

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return Config{}, fmt.Errorf("cannot read env: %w", err)
		}
		return cfg, cfg.validate()
	}

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		var pe *os.PathError
		if !errors.As(err, &pe) {
			return Config{}, fmt.Errorf("cannot read config %q: %w", path, err)
		}
		cfg = Config{}
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return Config{}, fmt.Errorf("cannot read env: %w", err)
		}
	}

	return cfg, cfg.validate()
}

// MustLoad is Load that exits on error.
func MustLoad(path string) Config {
	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("[config] %v", err)
	}
	return cfg
}

func (c Config) validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("jwt secret must not be empty")
	}
	if c.Auth.AccessTokenTTL <= 0 || c.Auth.RefreshTokenTTL <= 0 {
		return errors.New("token lifetimes must be positive")
	}
	if c.Activity.FeedSize <= 0 {
		return errors.New("activity feed size must be positive")
	}
	if c.RedisEnabled() && (c.RateLimit.AuthRequests <= 0 || c.RateLimit.UserRequests <= 0) {
		return errors.New("rate limits must be positive when redis is configured")
	}
	return nil
}
