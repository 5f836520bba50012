package dismissal

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T, user string, cfg *Config) *RedisStore {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	store, err := NewRedisStore(rdb, user, cfg, nil)
	require.NoError(t, err)
	return store
}

func TestNewRedisStore_RequiresClient(t *testing.T) {
	_, err := NewRedisStore(nil, "user-1", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis client is required")
}

func TestNewRedisStore_RequiresUser(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	_, err := NewRedisStore(rdb, "", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user cannot be empty")
}

func TestRedisStore_RecordAndCheck(t *testing.T) {
	ctx := context.Background()
	store := newTestRedisStore(t, "user-1", nil)

	dismissed, err := store.IsDismissed(ctx, "cadence-due", "r1")
	require.NoError(t, err)
	assert.False(t, dismissed)

	require.NoError(t, store.Record(ctx, "cadence-due", "r1"))

	dismissed, err = store.IsDismissed(ctx, "cadence-due", "r1")
	require.NoError(t, err)
	assert.True(t, dismissed)
}

func TestRedisStore_RecordIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newTestRedisStore(t, "user-1", nil)

	first := time.Date(2025, time.August, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return first }
	require.NoError(t, store.Record(ctx, "cadence-due", "r1"))

	store.now = func() time.Time { return first.Add(2 * time.Hour) }
	require.NoError(t, store.Record(ctx, "cadence-due", "r1"))

	raw, err := store.rdb.HGet(ctx, store.hashKey(), key("cadence-due", "r1")).Result()
	require.NoError(t, err)
	assert.Equal(t, first.Format(time.RFC3339Nano), raw)
}

func TestRedisStore_UserScoping(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	alice, err := NewRedisStore(rdb, "alice", nil, nil)
	require.NoError(t, err)
	bob, err := NewRedisStore(rdb, "bob", nil, nil)
	require.NoError(t, err)

	require.NoError(t, alice.Record(ctx, "cadence-due", "r1"))

	dismissed, err := bob.IsDismissed(ctx, "cadence-due", "r1")
	require.NoError(t, err)
	assert.False(t, dismissed)
}

func TestRedisStore_RetentionExpires(t *testing.T) {
	ctx := context.Background()
	store := newTestRedisStore(t, "user-1", &Config{Retention: 24 * time.Hour})

	start := time.Date(2025, time.August, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return start }
	require.NoError(t, store.Record(ctx, "stale-1:1", "r7"))

	store.now = func() time.Time { return start.Add(25 * time.Hour) }
	dismissed, err := store.IsDismissed(ctx, "stale-1:1", "r7")
	require.NoError(t, err)
	assert.False(t, dismissed)

	// The expired entry was lazily deleted.
	exists, err := store.rdb.HExists(ctx, store.hashKey(), key("stale-1:1", "r7")).Result()
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRedisStore_Predicate(t *testing.T) {
	ctx := context.Background()
	store := newTestRedisStore(t, "user-1", nil)

	require.NoError(t, store.Record(ctx, "cadence-due", "r1"))
	require.NoError(t, store.Record(ctx, "offboarding-employee", "emp-1,emp-2"))

	pred, err := store.Predicate(ctx)
	require.NoError(t, err)

	assert.True(t, pred("cadence-due", "r1"))
	assert.True(t, pred("offboarding-employee", "emp-1,emp-2"))
	assert.False(t, pred("offboarding-employee", "emp-1"))
	assert.False(t, pred("cadence-due", "r2"))
}

func TestRedisStore_PredicateSkipsExpired(t *testing.T) {
	ctx := context.Background()
	store := newTestRedisStore(t, "user-1", &Config{Retention: time.Hour})

	start := time.Date(2025, time.August, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return start }
	require.NoError(t, store.Record(ctx, "cadence-due", "old"))

	store.now = func() time.Time { return start.Add(30 * time.Minute) }
	require.NoError(t, store.Record(ctx, "cadence-due", "fresh"))

	store.now = func() time.Time { return start.Add(90 * time.Minute) }
	pred, err := store.Predicate(ctx)
	require.NoError(t, err)

	assert.False(t, pred("cadence-due", "old"))
	assert.True(t, pred("cadence-due", "fresh"))
}
