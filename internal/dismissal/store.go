package dismissal

import (
	"context"
	"time"
)

// Dismissal records one suppressed signal identity.
type Dismissal struct {
	Kind        string    `json:"kind"`
	ID          string    `json:"id"`
	DismissedAt time.Time `json:"dismissed_at"`
}

// Predicate reports whether a signal identity is dismissed. Collectors call
// it freely during a cycle; implementations snapshot their state up front so
// the predicate itself performs no I/O.
type Predicate func(kind, id string) bool

// Store persists dismissals for a single user.
type Store interface {
	// Record marks a signal identity as dismissed. Recording the same
	// identity twice is idempotent: the original dismissal time is kept.
	Record(ctx context.Context, kind, id string) error

	// IsDismissed reports whether the identity is currently dismissed.
	IsDismissed(ctx context.Context, kind, id string) (bool, error)

	// Predicate snapshots the active dismissal set for one evaluation
	// cycle.
	Predicate(ctx context.Context) (Predicate, error)
}

// Config configures a store.
type Config struct {
	// Retention is how long a dismissal stays effective. Zero keeps
	// dismissals forever.
	Retention time.Duration
}

// DefaultConfig returns the base retention policy: dismissals never expire.
func DefaultConfig() *Config {
	return &Config{Retention: 0}
}

// NeverDismissed is a predicate that suppresses nothing. Used when the
// store is unavailable: a missing dismissal set degrades to showing every
// signal, never to a failed cycle.
func NeverDismissed(kind, id string) bool { return false }

// key joins kind and id into a single map/hash field. Signal ids are
// comma-joined entity ids and never contain '|'.
func key(kind, id string) string {
	return kind + "|" + id
}

// active reports whether a dismissal recorded at ts still holds under the
// retention policy.
func (c *Config) active(ts, now time.Time) bool {
	if c == nil || c.Retention <= 0 {
		return true
	}
	return now.Sub(ts) < c.Retention
}
