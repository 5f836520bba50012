package dismissal

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps dismissals in process memory. Safe for concurrent use.
type MemoryStore struct {
	config *Config
	now    func() time.Time

	mu      sync.RWMutex
	entries map[string]time.Time
}

// NewMemoryStore creates an in-memory store.
func NewMemoryStore(cfg *Config) *MemoryStore {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &MemoryStore{
		config:  cfg,
		now:     time.Now,
		entries: make(map[string]time.Time),
	}
}

// Record marks a signal identity as dismissed.
func (s *MemoryStore) Record(ctx context.Context, kind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := key(kind, id)
	if _, ok := s.entries[k]; !ok {
		s.entries[k] = s.now()
	}
	return nil
}

// IsDismissed reports whether the identity is currently dismissed.
func (s *MemoryStore) IsDismissed(ctx context.Context, kind, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ts, ok := s.entries[key(kind, id)]
	if !ok {
		return false, nil
	}
	return s.config.active(ts, s.now()), nil
}

// Predicate snapshots the active dismissal set.
func (s *MemoryStore) Predicate(ctx context.Context) (Predicate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	set := make(map[string]struct{}, len(s.entries))
	for k, ts := range s.entries {
		if s.config.active(ts, now) {
			set[k] = struct{}{}
		}
	}

	return func(kind, id string) bool {
		_, ok := set[key(kind, id)]
		return ok
	}, nil
}
