// Package config provides configuration loading for focusd.
package config

import "fmt"

// Dismissal store backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config is the root focusd configuration.
type Config struct {
	Logging   LoggingConfig   `koanf:"logging"`
	Focus     FocusConfig     `koanf:"focus"`
	Dismissal DismissalConfig `koanf:"dismissal"`
	Redis     RedisConfig     `koanf:"redis"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	// Level is the minimum level to emit: debug, info, warn, error.
	Level string `koanf:"level"`

	// Format selects the encoder: json or console.
	Format string `koanf:"format"`
}

// FocusConfig bounds the recommendation output.
type FocusConfig struct {
	// Limit bounds the focus list.
	Limit int `koanf:"limit"`

	// UpcomingWindowDays is the rolling window for person events.
	UpcomingWindowDays int `koanf:"upcoming_window_days"`

	// UpcomingLimit bounds the person-event list.
	UpcomingLimit int `koanf:"upcoming_limit"`
}

// DismissalConfig selects and tunes the dismissal store.
type DismissalConfig struct {
	// Backend is the store implementation: memory or redis.
	Backend string `koanf:"backend"`

	// User scopes the dismissal set.
	User string `koanf:"user"`

	// Retention is how long dismissals stay effective. Zero keeps them
	// forever.
	Retention Duration `koanf:"retention"`
}

// RedisConfig configures the Redis connection for the redis backend.
type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password Secret `koanf:"password"`
	DB       int    `koanf:"db"`
}

// applyDefaults sets default values for missing configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	if cfg.Focus.Limit == 0 {
		cfg.Focus.Limit = 5
	}
	if cfg.Focus.UpcomingWindowDays == 0 {
		cfg.Focus.UpcomingWindowDays = 14
	}
	if cfg.Focus.UpcomingLimit == 0 {
		cfg.Focus.UpcomingLimit = 5
	}

	if cfg.Dismissal.Backend == "" {
		cfg.Dismissal.Backend = BackendMemory
	}
	if cfg.Dismissal.User == "" {
		cfg.Dismissal.User = "default"
	}

	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
}

// Validate checks the configuration for inconsistencies.
func (c *Config) Validate() error {
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid logging format: %q (expected json or console)", c.Logging.Format)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level: %q", c.Logging.Level)
	}

	if c.Focus.Limit < 1 {
		return fmt.Errorf("focus limit must be positive, got %d", c.Focus.Limit)
	}
	if c.Focus.UpcomingWindowDays < 1 {
		return fmt.Errorf("upcoming window must be positive, got %d", c.Focus.UpcomingWindowDays)
	}
	if c.Focus.UpcomingLimit < 1 {
		return fmt.Errorf("upcoming limit must be positive, got %d", c.Focus.UpcomingLimit)
	}

	switch c.Dismissal.Backend {
	case BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("invalid dismissal backend: %q (expected memory or redis)", c.Dismissal.Backend)
	}

	if c.Dismissal.Backend == BackendRedis && c.Redis.Addr == "" {
		return fmt.Errorf("redis backend requires redis.addr")
	}

	return nil
}
