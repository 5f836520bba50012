package focus

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/focusd/internal/dismissal"
)

const instrumentationName = "github.com/fyrsmithlabs/focusd/internal/focus"

// Service runs evaluation cycles over caller-supplied snapshots.
type Service interface {
	// Evaluate runs one cycle against the snapshot and returns the
	// bounded, stably ordered focus list.
	Evaluate(ctx context.Context, snap *Snapshot, now time.Time) ([]Signal, error)

	// Upcoming projects birthdays and work anniversaries onto the
	// configured rolling window.
	Upcoming(ctx context.Context, people []Person, now time.Time) ([]UpcomingPersonEvent, error)
}

// Config configures the focus service.
type Config struct {
	// Limit bounds the focus list (default: 5).
	Limit int

	// UpcomingWindowDays is the rolling window for person events
	// (default: 14).
	UpcomingWindowDays int

	// UpcomingLimit bounds the person-event list (default: 5).
	UpcomingLimit int
}

// DefaultServiceConfig returns sensible defaults.
func DefaultServiceConfig() *Config {
	return &Config{
		Limit:              DefaultLimit,
		UpcomingWindowDays: DefaultUpcomingWindowDays,
		UpcomingLimit:      DefaultUpcomingLimit,
	}
}

// service implements the Service interface.
type service struct {
	config     *Config
	dismissals dismissal.Store
	logger     *zap.Logger

	// Telemetry
	tracer        trace.Tracer
	meter         metric.Meter
	evalCounter   metric.Int64Counter
	signalCounter metric.Int64Counter
}

// NewService creates a new focus service.
func NewService(cfg *Config, store dismissal.Store, logger *zap.Logger) (Service, error) {
	if cfg == nil {
		cfg = DefaultServiceConfig()
	}
	if store == nil {
		return nil, errors.New("dismissal store is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &service{
		config:     cfg,
		dismissals: store,
		logger:     logger,
		tracer:     otel.Tracer(instrumentationName),
		meter:      otel.Meter(instrumentationName),
	}

	s.initMetrics()

	return s, nil
}

// initMetrics initializes OpenTelemetry metrics.
func (s *service) initMetrics() {
	var err error

	s.evalCounter, err = s.meter.Int64Counter(
		"focusd.focus.evaluations_total",
		metric.WithDescription("Total number of evaluation cycles"),
		metric.WithUnit("{evaluation}"),
	)
	if err != nil {
		s.logger.Warn("failed to create evaluation counter", zap.Error(err))
	}

	s.signalCounter, err = s.meter.Int64Counter(
		"focusd.focus.signals_total",
		metric.WithDescription("Total number of signals emitted, by kind"),
		metric.WithUnit("{signal}"),
	)
	if err != nil {
		s.logger.Warn("failed to create signal counter", zap.Error(err))
	}
}

// Evaluate runs one cycle against the snapshot.
//
// Collectors are independent and side-effect-free, so they fan out in
// parallel; each writes to its own slot and the merge happens in the fixed
// collector order, which keeps equal-priority ordering deterministic.
func (s *service) Evaluate(ctx context.Context, snap *Snapshot, now time.Time) ([]Signal, error) {
	ctx, span := s.tracer.Start(ctx, "focus.evaluate")
	defer span.End()

	cycleID := uuid.New().String()
	span.SetAttributes(attribute.String("cycle_id", cycleID))

	dismissed, err := s.dismissals.Predicate(ctx)
	if err != nil {
		// A broken dismissal store must not fail the cycle; the list
		// just shows everything until the store recovers.
		s.logger.Warn("dismissal store unavailable, showing all signals",
			zap.String("cycle_id", cycleID),
			zap.Error(err),
		)
		dismissed = dismissal.NeverDismissed
	}

	c := newCycle(snap, now, dismissed)

	results := make([][]Signal, len(collectors))
	var wg sync.WaitGroup
	for i, collect := range collectors {
		wg.Add(1)
		go func(i int, collect collectorFunc) {
			defer wg.Done()
			results[i] = collect(c)
		}(i, collect)
	}
	wg.Wait()

	var merged []Signal
	for _, r := range results {
		for _, sig := range r {
			// Collectors already consult the predicate; this second
			// pass covers collectors added without the check.
			if dismissed(sig.Kind, sig.ID) {
				continue
			}
			merged = append(merged, sig)
		}
	}

	focusList := BuildFocus(merged, s.config.Limit)

	if s.evalCounter != nil {
		s.evalCounter.Add(ctx, 1)
	}
	if s.signalCounter != nil {
		for _, sig := range focusList {
			s.signalCounter.Add(ctx, 1, metric.WithAttributes(
				attribute.String("kind", sig.Kind),
			))
		}
	}

	s.logger.Info("evaluation cycle complete",
		zap.String("cycle_id", cycleID),
		zap.Int("collected", len(merged)),
		zap.Int("returned", len(focusList)),
	)

	span.SetAttributes(
		attribute.Int("collected", len(merged)),
		attribute.Int("returned", len(focusList)),
	)
	return focusList, nil
}

// Upcoming projects birthdays and work anniversaries for the given people.
func (s *service) Upcoming(ctx context.Context, people []Person, now time.Time) ([]UpcomingPersonEvent, error) {
	_, span := s.tracer.Start(ctx, "focus.upcoming")
	defer span.End()

	events := UpcomingEvents(people, now, s.config.UpcomingWindowDays, s.config.UpcomingLimit)

	span.SetAttributes(
		attribute.Int("people", len(people)),
		attribute.Int("events", len(events)),
	)
	return events, nil
}
