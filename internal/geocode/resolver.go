package geocode

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/meeting-locator/internal/domain"
	"github.com/couchcryptid/meeting-locator/internal/observability"
)

// Policy holds the batching knobs for external lookups. Batch size bounds the
// number of in-flight requests; the cooldown is slept between batches to stay
// inside the geocoding service's informal rate limits. Neither affects
// correctness, only pacing.
type Policy struct {
	BatchSize int           // 1..all-at-once
	Cooldown  time.Duration // 0..~1s
	Clock     clockwork.Clock
}

func (p Policy) withDefaults() Policy {
	if p.BatchSize <= 0 {
		p.BatchSize = 5
	}
	if p.Clock == nil {
		p.Clock = clockwork.NewRealClock()
	}
	return p
}

// Resolver maps addresses to coordinates through a Geocoder, cache-first.
// It never returns an error to its caller: every failure mode resolves to nil
// and is recorded on the diagnostic sink.
type Resolver struct {
	geocoder domain.Geocoder
	cache    *Cache
	policy   Policy
	metrics  *observability.Metrics
	logger   *slog.Logger
	sink     domain.DiagnosticSink
}

// NewResolver creates a Resolver around an injected cache. A nil sink
// disables diagnostics (logging still happens).
func NewResolver(geocoder domain.Geocoder, cache *Cache, policy Policy, metrics *observability.Metrics, logger *slog.Logger, sink domain.DiagnosticSink) *Resolver {
	return &Resolver{
		geocoder: geocoder,
		cache:    cache,
		policy:   policy.withDefaults(),
		metrics:  metrics,
		logger:   logger,
		sink:     sink,
	}
}

// Resolve maps one address to coordinates, or nil when the address is empty
// or cannot be resolved.
func (r *Resolver) Resolve(ctx context.Context, address string) *domain.Coordinates {
	if address == "" {
		return nil
	}
	if coords, ok := r.cache.Get(address); ok {
		r.metrics.GeocodeCache.WithLabelValues("hit").Inc()
		return coords
	}
	r.metrics.GeocodeCache.WithLabelValues("miss").Inc()
	return r.lookup(ctx, address)
}

// ResolveAll resolves a set of addresses, deduplicated, in bounded concurrent
// batches. The result maps every distinct input address to its coordinates or
// nil. Addresses never attempted because the context was cancelled map to nil
// without being cached, so a later load retries them.
func (r *Resolver) ResolveAll(ctx context.Context, addresses []string) map[string]*domain.Coordinates {
	results := make(map[string]*domain.Coordinates, len(addresses))

	// Cache pass first; only distinct misses go to the service.
	var uncached []string
	for _, addr := range addresses {
		if addr == "" {
			continue
		}
		if _, seen := results[addr]; seen {
			continue
		}
		results[addr] = nil

		if coords, ok := r.cache.Get(addr); ok {
			r.metrics.GeocodeCache.WithLabelValues("hit").Inc()
			results[addr] = coords
			continue
		}
		r.metrics.GeocodeCache.WithLabelValues("miss").Inc()
		uncached = append(uncached, addr)
	}

	var mu sync.Mutex
	for start := 0; start < len(uncached); start += r.policy.BatchSize {
		if ctx.Err() != nil {
			break
		}
		if start > 0 && !r.cooldown(ctx) {
			break
		}

		end := min(start+r.policy.BatchSize, len(uncached))
		var wg sync.WaitGroup
		for _, addr := range uncached[start:end] {
			wg.Add(1)
			go func() {
				defer wg.Done()
				coords := r.lookup(ctx, addr)
				mu.Lock()
				results[addr] = coords
				mu.Unlock()
			}()
		}
		wg.Wait()
	}

	return results
}

// lookup performs one external geocoding call and caches the outcome,
// negative results included. Errors are contained here.
func (r *Resolver) lookup(ctx context.Context, address string) *domain.Coordinates {
	coords, found, err := r.geocoder.Geocode(ctx, address)
	if err != nil {
		if ctx.Err() != nil {
			// Cancelled mid-flight: not an answer, leave uncached.
			return nil
		}
		r.logger.Warn("geocode failed", "address", address, "error", err)
		r.record(ctx, domain.Diagnostic{
			Kind:    domain.DiagGeocodeFailed,
			Address: address,
			Detail:  err.Error(),
		})
		r.cache.Put(address, nil)
		return nil
	}
	if !found {
		r.logger.Debug("geocode returned no results", "address", address)
		r.record(ctx, domain.Diagnostic{
			Kind:    domain.DiagGeocodeFailed,
			Address: address,
			Detail:  "no results",
		})
		r.cache.Put(address, nil)
		return nil
	}

	r.cache.Put(address, &coords)
	return &coords
}

// cooldown sleeps the inter-batch delay, abandoning it when the context is
// cancelled. Reports whether resolution should continue.
func (r *Resolver) cooldown(ctx context.Context) bool {
	if r.policy.Cooldown <= 0 {
		return ctx.Err() == nil
	}
	select {
	case <-ctx.Done():
		return false
	case <-r.policy.Clock.After(r.policy.Cooldown):
		return true
	}
}

func (r *Resolver) record(ctx context.Context, d domain.Diagnostic) {
	if r.sink == nil {
		return
	}
	d.Time = r.policy.Clock.Now()
	r.sink.Record(ctx, d)
}
