package geocode

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/meeting-locator/internal/domain"
	"github.com/couchcryptid/meeting-locator/internal/observability"
)

// --- mocks ---

type countingGeocoder struct {
	mu      sync.Mutex
	calls   map[string]int
	results map[string]domain.Coordinates
	err     error
}

func newCountingGeocoder() *countingGeocoder {
	return &countingGeocoder{
		calls:   make(map[string]int),
		results: make(map[string]domain.Coordinates),
	}
}

func (g *countingGeocoder) Geocode(_ context.Context, address string) (domain.Coordinates, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.calls[address]++
	if g.err != nil {
		return domain.Coordinates{}, false, g.err
	}
	coords, ok := g.results[address]
	return coords, ok, nil
}

func (g *countingGeocoder) callCount(address string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[address]
}

type collectingSink struct {
	mu    sync.Mutex
	diags []domain.Diagnostic
}

func (s *collectingSink) Record(_ context.Context, d domain.Diagnostic) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.diags = append(s.diags, d)
}

func (s *collectingSink) count(kind string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, d := range s.diags {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestResolver(g domain.Geocoder, cache *Cache, policy Policy, sink domain.DiagnosticSink) *Resolver {
	return NewResolver(g, cache, policy, observability.NewMetricsForTesting(), testLogger(), sink)
}

// --- tests ---

func TestResolver_Resolve(t *testing.T) {
	springfield := domain.Coordinates{Lat: 42.0, Lon: -71.0}

	t.Run("successful lookup is cached", func(t *testing.T) {
		g := newCountingGeocoder()
		g.results["100 Main St"] = springfield
		r := newTestResolver(g, NewCache(), Policy{}, nil)

		coords := r.Resolve(context.Background(), "100 Main St")
		require.NotNil(t, coords)
		assert.Equal(t, springfield, *coords)

		r.Resolve(context.Background(), "100 Main St")
		assert.Equal(t, 1, g.callCount("100 Main St"), "second resolve must hit the cache")
	})

	t.Run("empty address", func(t *testing.T) {
		g := newCountingGeocoder()
		r := newTestResolver(g, NewCache(), Policy{}, nil)

		assert.Nil(t, r.Resolve(context.Background(), ""))
		assert.Empty(t, g.calls)
	})

	t.Run("failed lookup is cached as negative", func(t *testing.T) {
		g := newCountingGeocoder()
		g.err = errors.New("connection refused")
		sink := &collectingSink{}
		r := newTestResolver(g, NewCache(), Policy{}, sink)

		assert.Nil(t, r.Resolve(context.Background(), "nowhere"))
		assert.Nil(t, r.Resolve(context.Background(), "nowhere"))
		assert.Equal(t, 1, g.callCount("nowhere"), "failure must not be retried")
		assert.Equal(t, 1, sink.count(domain.DiagGeocodeFailed))
	})

	t.Run("no results is cached as negative", func(t *testing.T) {
		g := newCountingGeocoder()
		sink := &collectingSink{}
		r := newTestResolver(g, NewCache(), Policy{}, sink)

		assert.Nil(t, r.Resolve(context.Background(), "unknown place"))
		assert.Nil(t, r.Resolve(context.Background(), "unknown place"))
		assert.Equal(t, 1, g.callCount("unknown place"))
		assert.Equal(t, 1, sink.count(domain.DiagGeocodeFailed))
	})
}

func TestResolver_ResolveAll(t *testing.T) {
	springfield := domain.Coordinates{Lat: 42.0, Lon: -71.0}
	boston := domain.Coordinates{Lat: 42.36, Lon: -71.06}

	t.Run("deduplicates addresses", func(t *testing.T) {
		g := newCountingGeocoder()
		g.results["100 Main St"] = springfield
		r := newTestResolver(g, NewCache(), Policy{}, nil)

		results := r.ResolveAll(context.Background(), []string{"100 Main St", "100 Main St", "100 Main St"})
		require.Len(t, results, 1)
		assert.Equal(t, springfield, *results["100 Main St"])
		assert.Equal(t, 1, g.callCount("100 Main St"))
	})

	t.Run("mixed outcomes", func(t *testing.T) {
		g := newCountingGeocoder()
		g.results["100 Main St"] = springfield
		g.results["1 City Hall Sq"] = boston
		r := newTestResolver(g, NewCache(), Policy{}, nil)

		results := r.ResolveAll(context.Background(), []string{"100 Main St", "1 City Hall Sq", "unresolvable", ""})
		require.Len(t, results, 3, "empty addresses are dropped")
		assert.Equal(t, springfield, *results["100 Main St"])
		assert.Equal(t, boston, *results["1 City Hall Sq"])
		assert.Nil(t, results["unresolvable"])
	})

	t.Run("seeded cache short-circuits lookups", func(t *testing.T) {
		g := newCountingGeocoder()
		cache := NewCache()
		cache.Seed(map[string]domain.Coordinates{"100 Main St": springfield})
		r := newTestResolver(g, cache, Policy{}, nil)

		results := r.ResolveAll(context.Background(), []string{"100 Main St"})
		assert.Equal(t, springfield, *results["100 Main St"])
		assert.Empty(t, g.calls, "seeded address must not reach the service")
	})

	t.Run("second call reuses the session cache", func(t *testing.T) {
		g := newCountingGeocoder()
		g.results["100 Main St"] = springfield
		r := newTestResolver(g, NewCache(), Policy{}, nil)

		r.ResolveAll(context.Background(), []string{"100 Main St", "missing"})
		r.ResolveAll(context.Background(), []string{"100 Main St", "missing"})

		assert.Equal(t, 1, g.callCount("100 Main St"))
		assert.Equal(t, 1, g.callCount("missing"), "negative results are cached across calls")
	})

	t.Run("cancelled context stops resolution", func(t *testing.T) {
		g := newCountingGeocoder()
		r := newTestResolver(g, NewCache(), Policy{BatchSize: 1}, nil)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		results := r.ResolveAll(ctx, []string{"a", "b"})
		assert.Nil(t, results["a"])
		assert.Nil(t, results["b"])
	})
}

func TestResolver_ResolveAll_CooldownBetweenBatches(t *testing.T) {
	springfield := domain.Coordinates{Lat: 42.0, Lon: -71.0}

	g := newCountingGeocoder()
	g.results["a"] = springfield
	g.results["b"] = springfield

	clock := clockwork.NewFakeClock()
	r := newTestResolver(g, NewCache(), Policy{
		BatchSize: 1,
		Cooldown:  500 * time.Millisecond,
		Clock:     clock,
	}, nil)

	done := make(chan map[string]*domain.Coordinates, 1)
	go func() {
		done <- r.ResolveAll(context.Background(), []string{"a", "b"})
	}()

	// The resolver must be sleeping the cooldown between the two batches.
	require.NoError(t, clock.BlockUntilContext(context.Background(), 1))
	assert.Equal(t, 1, g.callCount("a"))
	assert.Equal(t, 0, g.callCount("b"), "second batch must wait for the cooldown")

	clock.Advance(500 * time.Millisecond)

	select {
	case results := <-done:
		assert.Equal(t, 1, g.callCount("b"))
		assert.Equal(t, springfield, *results["a"])
		assert.Equal(t, springfield, *results["b"])
	case <-time.After(5 * time.Second):
		t.Fatal("ResolveAll did not finish after cooldown")
	}
}

func TestCache(t *testing.T) {
	springfield := domain.Coordinates{Lat: 42.0, Lon: -71.0}

	t.Run("miss then hit", func(t *testing.T) {
		c := NewCache()
		_, ok := c.Get("addr")
		assert.False(t, ok)

		c.Put("addr", &springfield)
		coords, ok := c.Get("addr")
		require.True(t, ok)
		assert.Equal(t, springfield, *coords)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("negative entry", func(t *testing.T) {
		c := NewCache()
		c.Put("bad addr", nil)

		coords, ok := c.Get("bad addr")
		assert.True(t, ok, "negative result counts as cached")
		assert.Nil(t, coords)
	})

	t.Run("returned pointer does not alias the cache", func(t *testing.T) {
		c := NewCache()
		c.Put("addr", &springfield)

		coords, _ := c.Get("addr")
		coords.Lat = 0

		again, _ := c.Get("addr")
		assert.Equal(t, 42.0, again.Lat)
	})
}
