package dismissal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisStore keeps dismissals in a per-user Redis hash at
// focusd:{user}:dismissals. Fields are "kind|id", values the RFC 3339
// dismissal time. Writes use HSETNX so re-dismissing keeps the original
// timestamp.
type RedisStore struct {
	rdb    *redis.Client
	user   string
	config *Config
	logger *zap.Logger
	now    func() time.Time
}

// NewRedisStore creates a Redis-backed store scoped to one user.
func NewRedisStore(rdb *redis.Client, user string, cfg *Config, logger *zap.Logger) (*RedisStore, error) {
	if rdb == nil {
		return nil, errors.New("redis client is required")
	}
	if user == "" {
		return nil, errors.New("user cannot be empty")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &RedisStore{
		rdb:    rdb,
		user:   user,
		config: cfg,
		logger: logger,
		now:    time.Now,
	}, nil
}

// Close closes the underlying Redis connection. Implements io.Closer.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

// Ping verifies Redis connectivity. Useful for health checks.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *RedisStore) hashKey() string {
	return fmt.Sprintf("focusd:%s:dismissals", s.user)
}

// Record marks a signal identity as dismissed.
func (s *RedisStore) Record(ctx context.Context, kind, id string) error {
	field := key(kind, id)
	set, err := s.rdb.HSetNX(ctx, s.hashKey(), field, s.now().Format(time.RFC3339Nano)).Result()
	if err != nil {
		return fmt.Errorf("failed to record dismissal: %w", err)
	}

	if set {
		s.logger.Debug("recorded dismissal",
			zap.String("user", s.user),
			zap.String("kind", kind),
			zap.String("signal_id", id),
		)
	}
	return nil
}

// IsDismissed reports whether the identity is currently dismissed. Expired
// entries are deleted lazily on read.
func (s *RedisStore) IsDismissed(ctx context.Context, kind, id string) (bool, error) {
	field := key(kind, id)
	raw, err := s.rdb.HGet(ctx, s.hashKey(), field).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read dismissal: %w", err)
	}

	ts, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		// Unparseable entries are treated as never dismissed.
		return false, nil
	}

	if !s.config.active(ts, s.now()) {
		if err := s.rdb.HDel(ctx, s.hashKey(), field).Err(); err != nil {
			s.logger.Warn("failed to delete expired dismissal", zap.Error(err))
		}
		return false, nil
	}
	return true, nil
}

// Predicate snapshots the active dismissal set with a single HGETALL.
func (s *RedisStore) Predicate(ctx context.Context) (Predicate, error) {
	entries, err := s.rdb.HGetAll(ctx, s.hashKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load dismissals: %w", err)
	}

	now := s.now()
	set := make(map[string]struct{}, len(entries))
	for field, raw := range entries {
		ts, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			continue
		}
		if s.config.active(ts, now) {
			set[field] = struct{}{}
		}
	}

	return func(kind, id string) bool {
		_, ok := set[key(kind, id)]
		return ok
	}, nil
}
