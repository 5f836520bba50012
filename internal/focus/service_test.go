package focus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/focusd/internal/cadence"
	"github.com/fyrsmithlabs/focusd/internal/dismissal"
)

func newTestService(t *testing.T) (Service, *dismissal.MemoryStore) {
	t.Helper()
	store := dismissal.NewMemoryStore(nil)
	svc, err := NewService(nil, store, nil)
	require.NoError(t, err)
	return svc, store
}

func TestDefaultServiceConfig(t *testing.T) {
	cfg := DefaultServiceConfig()

	assert.Equal(t, 5, cfg.Limit)
	assert.Equal(t, 14, cfg.UpcomingWindowDays)
	assert.Equal(t, 5, cfg.UpcomingLimit)
}

func TestNewService_RequiresStore(t *testing.T) {
	_, err := NewService(nil, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dismissal store is required")
}

func TestEvaluate_OneOnOneScenario(t *testing.T) {
	svc, _ := newTestService(t)
	snap := &Snapshot{Cadences: []CadenceStatus{oneOnOneStatus("r1", "Alice", 20)}}

	signals, err := svc.Evaluate(context.Background(), snap, testNow)
	require.NoError(t, err)

	require.Len(t, signals, 1)
	assert.Equal(t, KindCadenceDue, signals[0].Kind)
	assert.Equal(t, "r1", signals[0].ID)
	assert.InDelta(t, 1.5, signals[0].Priority, 1e-9)
}

func TestEvaluate_MergesAcrossCollectorsInPriorityOrder(t *testing.T) {
	svc, _ := newTestService(t)
	snap := &Snapshot{
		Cadences: []CadenceStatus{oneOnOneStatus("r1", "Alice", 20)},
		Events:   []Event{{ID: "e1", Kind: cadence.KindOneOnOne, Notes: ""}},
		People:   []Person{{ID: "p1", Name: "Bob", Status: PersonOffboarding}},
		Skills:   []Skill{{ID: "s1", Name: "Coaching", AvailableXP: 500}},
	}

	signals, err := svc.Evaluate(context.Background(), snap, testNow)
	require.NoError(t, err)

	require.Len(t, signals, 4)
	assert.Equal(t, KindEventsWithoutPrep, signals[0].Kind)
	assert.Equal(t, KindCadenceDue, signals[1].Kind)
	assert.Equal(t, KindOffboardingEmployee, signals[2].Kind)
	assert.Equal(t, KindAvailableSkillXP, signals[3].Kind)
}

func TestEvaluate_TruncatesToLimit(t *testing.T) {
	store := dismissal.NewMemoryStore(nil)
	svc, err := NewService(&Config{Limit: 2, UpcomingWindowDays: 14, UpcomingLimit: 5}, store, nil)
	require.NoError(t, err)

	snap := &Snapshot{
		Cadences: []CadenceStatus{
			oneOnOneStatus("r1", "Alice", 20),
			oneOnOneStatus("r2", "Bob", 18),
			oneOnOneStatus("r3", "Cara", 16),
		},
	}

	signals, err := svc.Evaluate(context.Background(), snap, testNow)
	require.NoError(t, err)

	assert.Len(t, signals, 2)
}

func TestEvaluate_Deterministic(t *testing.T) {
	svc, _ := newTestService(t)
	snap := &Snapshot{
		Cadences: []CadenceStatus{
			oneOnOneStatus("r1", "Alice", 20),
			oneOnOneStatus("r2", "Bob", 20),
		},
		People: []Person{
			{ID: "p1", Name: "Cara", Status: PersonOffboarding},
			{ID: "p2", Name: "Dan", Status: PersonActive},
		},
		Challenges: []Challenge{{ID: "c1", Name: "Ship", Progress: 9, Target: 10}},
	}

	first, err := svc.Evaluate(context.Background(), snap, testNow)
	require.NoError(t, err)
	second, err := svc.Evaluate(context.Background(), snap, testNow)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEvaluate_DismissalSuppressesThroughService(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	snap := &Snapshot{Cadences: []CadenceStatus{oneOnOneStatus("r1", "Alice", 20)}}

	signals, err := svc.Evaluate(ctx, snap, testNow)
	require.NoError(t, err)
	require.Len(t, signals, 1)

	require.NoError(t, store.Record(ctx, KindCadenceDue, "r1"))

	signals, err = svc.Evaluate(ctx, snap, testNow)
	require.NoError(t, err)
	assert.Empty(t, signals)
}

func TestEvaluate_EmptySnapshot(t *testing.T) {
	svc, _ := newTestService(t)

	signals, err := svc.Evaluate(context.Background(), &Snapshot{}, testNow)
	require.NoError(t, err)
	assert.Empty(t, signals)

	signals, err = svc.Evaluate(context.Background(), nil, testNow)
	require.NoError(t, err)
	assert.Empty(t, signals)
}

// failingStore simulates an unreachable dismissal backend.
type failingStore struct{}

func (failingStore) Record(ctx context.Context, kind, id string) error { return errors.New("down") }
func (failingStore) IsDismissed(ctx context.Context, kind, id string) (bool, error) {
	return false, errors.New("down")
}
func (failingStore) Predicate(ctx context.Context) (dismissal.Predicate, error) {
	return nil, errors.New("down")
}

func TestEvaluate_StoreFailureDegradesToAllSignals(t *testing.T) {
	svc, err := NewService(nil, failingStore{}, nil)
	require.NoError(t, err)

	snap := &Snapshot{Cadences: []CadenceStatus{oneOnOneStatus("r1", "Alice", 20)}}

	signals, err := svc.Evaluate(context.Background(), snap, testNow)
	require.NoError(t, err)
	assert.Len(t, signals, 1)
}

func TestUpcoming_UsesConfiguredWindow(t *testing.T) {
	store := dismissal.NewMemoryStore(nil)
	svc, err := NewService(&Config{Limit: 5, UpcomingWindowDays: 30, UpcomingLimit: 5}, store, nil)
	require.NoError(t, err)

	now := time.Date(2025, time.June, 1, 8, 0, 0, 0, time.UTC)
	people := []Person{
		{ID: "p1", Name: "Alice", Status: PersonActive, BirthDate: mustDate(1990, time.June, 25)},
	}

	events, err := svc.Upcoming(context.Background(), people, now)
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, 24, events[0].DaysUntil)
}
