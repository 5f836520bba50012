package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/focusd/internal/config"
	"github.com/fyrsmithlabs/focusd/internal/dismissal"
	"github.com/fyrsmithlabs/focusd/internal/focus"
	"github.com/fyrsmithlabs/focusd/internal/logging"
)

// app bundles the wired dependencies a subcommand needs.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	store  dismissal.Store
	svc    focus.Service
}

// initApp loads config, builds the logger, and wires the dismissal store
// and focus service.
func initApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(&logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Fields: map[string]string{"service": "focusd"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	store, err := newStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	svc, err := focus.NewService(&focus.Config{
		Limit:              cfg.Focus.Limit,
		UpcomingWindowDays: cfg.Focus.UpcomingWindowDays,
		UpcomingLimit:      cfg.Focus.UpcomingLimit,
	}, store, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create focus service: %w", err)
	}

	return &app{
		cfg:    cfg,
		logger: logger,
		store:  store,
		svc:    svc,
	}, nil
}

// Close releases the store connection and flushes the logger.
func (a *app) Close() {
	if c, ok := a.store.(io.Closer); ok {
		if err := c.Close(); err != nil {
			a.logger.Warn("failed to close dismissal store", zap.Error(err))
		}
	}
	_ = logging.Sync(a.logger)
}

// newStore builds the configured dismissal store backend.
func newStore(cfg *config.Config, logger *zap.Logger) (dismissal.Store, error) {
	storeCfg := &dismissal.Config{Retention: cfg.Dismissal.Retention.Duration()}

	switch cfg.Dismissal.Backend {
	case config.BackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password.Value(),
			DB:       cfg.Redis.DB,
		})
		store, err := dismissal.NewRedisStore(rdb, cfg.Dismissal.User, storeCfg, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create redis dismissal store: %w", err)
		}
		return store, nil
	case config.BackendMemory:
		return dismissal.NewMemoryStore(storeCfg), nil
	default:
		return nil, fmt.Errorf("unknown dismissal backend: %q", cfg.Dismissal.Backend)
	}
}

// readSnapshot decodes a snapshot from a file, or stdin for "-" or no
// argument.
func readSnapshot(args []string) (*focus.Snapshot, error) {
	var content []byte
	var err error

	if len(args) == 0 || args[0] == "-" {
		content, err = io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read from stdin: %w", err)
		}
	} else {
		content, err = os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
	}

	if len(content) == 0 {
		return nil, fmt.Errorf("no snapshot content")
	}

	var snap focus.Snapshot
	if err := json.Unmarshal(content, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	return &snap, nil
}
