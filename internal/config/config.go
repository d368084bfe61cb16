// Package config loads the server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Store kinds accepted by REWIND_STORE.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// ErrUnknownStore is returned when REWIND_STORE names an unsupported backend.
var ErrUnknownStore = errors.New("unknown store")

// ServerConfig holds the settings of `rewind serve`.
type ServerConfig struct {
	Addr       string `env:"ADDR" envDefault:":8080"`
	Store      string `env:"STORE" envDefault:"memory"`
	SessionDir string `env:"SESSION_DIR" envDefault:".rewind/sessions"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	Metrics    bool   `env:"METRICS" envDefault:"true"`

	Redis RedisConfig `envPrefix:"REDIS_"`

	// LockTTL bounds how long a distributed session lock is held.
	LockTTL time.Duration `env:"LOCK_TTL" envDefault:"30s"`
}

// RedisConfig configures the redis store and locker.
type RedisConfig struct {
	Addr     string        `env:"ADDR" envDefault:"localhost:6379"`
	Password string        `env:"PASSWORD"`
	DB       int           `env:"DB" envDefault:"0"`
	Prefix   string        `env:"PREFIX" envDefault:"rewind:session:"`
	TTL      time.Duration `env:"TTL" envDefault:"0s"`
}

// Prefix is prepended to every variable name.
const Prefix = "REWIND_"

// Load reads a .env file if one exists and parses REWIND_* variables.
func Load() (ServerConfig, error) {
	// The .env file is optional.
	_ = godotenv.Load()
	return parse(env.Options{Prefix: Prefix})
}

// LoadFrom parses the configuration from the given variables only.
func LoadFrom(environment map[string]string) (ServerConfig, error) {
	return parse(env.Options{Prefix: Prefix, Environment: environment})
}

func parse(opts env.Options) (ServerConfig, error) {
	var cfg ServerConfig
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return ServerConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return ServerConfig{}, err
	}
	return cfg, nil
}

// Validate checks values the environment parser cannot.
func (c ServerConfig) Validate() error {
	switch c.Store {
	case StoreMemory, StoreFile, StoreRedis:
	default:
		return fmt.Errorf("%w: %q (expected memory, file or redis)", ErrUnknownStore, c.Store)
	}
	if c.LockTTL <= 0 {
		return fmt.Errorf("lock ttl must be positive, got %s", c.LockTTL)
	}
	if c.Redis.TTL < 0 {
		return fmt.Errorf("redis ttl must not be negative, got %s", c.Redis.TTL)
	}
	return nil
}
