// Package catalog builds and publishes the in-memory meeting catalog.
//
// A build runs fetch → validate → geocode → publish as one unit. Consumers
// only ever see complete snapshots: there is no state in which a published
// catalog is missing its coordinates.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/meeting-locator/internal/domain"
	"github.com/couchcryptid/meeting-locator/internal/observability"
)

// State is the catalog build lifecycle: Idle → Loading → Ready | Failed.
// Reload moves Ready or Failed back through Loading.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// RowSource fetches the raw CSV rows for one build.
type RowSource interface {
	Load(ctx context.Context) ([]map[string]string, error)
}

// AddressResolver batch-resolves addresses to coordinates. Implementations
// never fail; an unresolvable address maps to nil.
type AddressResolver interface {
	ResolveAll(ctx context.Context, addresses []string) map[string]*domain.Coordinates
}

// Snapshot is one fully built catalog. Immutable once published.
type Snapshot struct {
	LoadID   string
	Meetings []domain.Meeting
	LoadedAt time.Time
}

// Builder owns the catalog lifecycle. Loads may be triggered concurrently
// (startup, cron, the reload endpoint); the generation counter guarantees
// only the most recently started load publishes.
type Builder struct {
	source   RowSource
	resolver AddressResolver
	metrics  *observability.Metrics
	logger   *slog.Logger
	sink     domain.DiagnosticSink
	clock    clockwork.Clock

	mu         sync.Mutex
	state      State
	loadErr    error
	snapshot   *Snapshot
	generation int64
}

// New creates a Builder in the Idle state. A nil clock uses real time; a nil
// sink disables diagnostics.
func New(source RowSource, resolver AddressResolver, metrics *observability.Metrics, logger *slog.Logger, sink domain.DiagnosticSink, clock clockwork.Clock) *Builder {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Builder{
		source:   source,
		resolver: resolver,
		metrics:  metrics,
		logger:   logger,
		sink:     sink,
		clock:    clock,
	}
}

// Load runs one complete build. Row- and address-level failures are contained
// and recorded; only a failure to obtain the source document is returned, and
// it leaves the catalog empty in the Failed state.
func (b *Builder) Load(ctx context.Context) error {
	gen := b.beginLoad()
	loadID := uuid.NewString()
	start := b.clock.Now()

	b.logger.Info("catalog load started", "load_id", loadID)

	rows, err := b.source.Load(ctx)
	if err != nil {
		return b.failLoad(ctx, gen, loadID, err)
	}

	meetings := b.validateRows(ctx, loadID, rows)

	addresses := distinctAddresses(meetings)
	resolved := b.resolver.ResolveAll(ctx, addresses)
	attachCoordinates(meetings, resolved)

	if !b.publish(gen, &Snapshot{LoadID: loadID, Meetings: meetings, LoadedAt: b.clock.Now()}) {
		b.logger.Info("discarding stale catalog load", "load_id", loadID)
		b.metrics.CatalogLoads.WithLabelValues("stale").Inc()
		return nil
	}

	b.metrics.CatalogLoads.WithLabelValues("success").Inc()
	b.metrics.CatalogSize.Set(float64(len(meetings)))
	b.metrics.CatalogLoadDuration.Observe(b.clock.Since(start).Seconds())
	b.record(ctx, domain.Diagnostic{
		Kind:   domain.DiagLoadComplete,
		LoadID: loadID,
		Count:  len(meetings),
	})
	b.logger.Info("catalog load complete",
		"load_id", loadID,
		"meetings", len(meetings),
		"addresses", len(addresses),
	)
	return nil
}

// validateRows runs the row validator over every raw row, dropping rejects.
func (b *Builder) validateRows(ctx context.Context, loadID string, rows []map[string]string) []domain.Meeting {
	meetings := make([]domain.Meeting, 0, len(rows))
	for i, row := range rows {
		m, err := domain.ParseRow(row)
		if err != nil {
			b.metrics.RowsRejected.Inc()
			b.record(ctx, domain.Diagnostic{
				Kind:   domain.DiagRowRejected,
				LoadID: loadID,
				Detail: fmt.Sprintf("row %d: %v", i+1, err),
			})
			continue
		}
		b.metrics.RowsValidated.Inc()
		meetings = append(meetings, m)
	}
	return meetings
}

// State reports the current lifecycle state.
func (b *Builder) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Err returns the source-load error of the last failed build, if any.
func (b *Builder) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loadErr
}

// Snapshot returns the published catalog. ok is false in every state but
// Ready; consumers must not derive views from anything else.
func (b *Builder) Snapshot() (*Snapshot, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != StateReady {
		return nil, false
	}
	return b.snapshot, true
}

// CheckReadiness returns nil once a catalog has been published.
func (b *Builder) CheckReadiness(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == StateReady {
		return nil
	}
	if b.loadErr != nil {
		return fmt.Errorf("catalog %s: %w", b.state, b.loadErr)
	}
	return errors.New("catalog " + b.state.String())
}

func (b *Builder) beginLoad() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.generation++
	b.setStateLocked(StateLoading)
	return b.generation
}

// publish installs the snapshot unless a newer load has started since.
func (b *Builder) publish(gen int64, snap *Snapshot) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if gen != b.generation {
		return false
	}
	b.snapshot = snap
	b.loadErr = nil
	b.setStateLocked(StateReady)
	return true
}

// failLoad moves the builder to Failed and clears any previous snapshot, so a
// broken source is visible instead of silently serving stale data. A stale
// failure is discarded like a stale success.
func (b *Builder) failLoad(ctx context.Context, gen int64, loadID string, err error) error {
	b.mu.Lock()
	if gen != b.generation {
		b.mu.Unlock()
		b.metrics.CatalogLoads.WithLabelValues("stale").Inc()
		return nil
	}
	b.snapshot = nil
	b.loadErr = err
	b.setStateLocked(StateFailed)
	b.mu.Unlock()

	b.metrics.CatalogLoads.WithLabelValues("failure").Inc()
	b.metrics.CatalogSize.Set(0)
	b.record(ctx, domain.Diagnostic{
		Kind:   domain.DiagLoadFailed,
		LoadID: loadID,
		Detail: err.Error(),
	})
	b.logger.Error("catalog load failed", "load_id", loadID, "error", err)
	return err
}

func (b *Builder) setStateLocked(s State) {
	b.state = s
	b.metrics.CatalogState.Set(float64(s))
}

func (b *Builder) record(ctx context.Context, d domain.Diagnostic) {
	if b.sink == nil {
		return
	}
	d.Time = b.clock.Now()
	b.sink.Record(ctx, d)
}

// distinctAddresses collects the unique non-empty addresses of a validated
// batch, preserving first-appearance order.
func distinctAddresses(meetings []domain.Meeting) []string {
	seen := make(map[string]struct{}, len(meetings))
	var out []string
	for _, m := range meetings {
		if m.Address == "" {
			continue
		}
		if _, ok := seen[m.Address]; ok {
			continue
		}
		seen[m.Address] = struct{}{}
		out = append(out, m.Address)
	}
	return out
}

// attachCoordinates writes the resolved coordinates back onto the meetings.
// Addressless meetings keep a nil coordinate.
func attachCoordinates(meetings []domain.Meeting, resolved map[string]*domain.Coordinates) {
	for i := range meetings {
		if meetings[i].Address == "" {
			continue
		}
		meetings[i].Coordinates = resolved[meetings[i].Address]
	}
}
