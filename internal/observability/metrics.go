package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// catalog pipeline.
type Metrics struct {
	RowsValidated prometheus.Counter
	RowsRejected  prometheus.Counter

	// Catalog lifecycle metrics.
	CatalogLoads        *prometheus.CounterVec // labels: outcome={success,failure,stale}
	CatalogSize         prometheus.Gauge
	CatalogState        prometheus.Gauge // 0=idle 1=loading 2=ready 3=failed
	CatalogLoadDuration prometheus.Histogram

	// Geocoding metrics.
	GeocodeRequests    *prometheus.CounterVec // labels: outcome={success,empty,error}
	GeocodeCache       *prometheus.CounterVec // labels: result={hit,miss}
	GeocodeAPIDuration prometheus.Histogram
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.RowsValidated,
		m.RowsRejected,
		m.CatalogLoads,
		m.CatalogSize,
		m.CatalogState,
		m.CatalogLoadDuration,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.GeocodeAPIDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RowsValidated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "meeting_locator",
			Name:      "rows_validated_total",
			Help:      "Total CSV rows accepted by the row validator.",
		}),
		RowsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "meeting_locator",
			Name:      "rows_rejected_total",
			Help:      "Total CSV rows rejected by the row validator.",
		}),
		CatalogLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "meeting_locator",
			Name:      "catalog_loads_total",
			Help:      "Catalog load attempts by outcome.",
		}, []string{"outcome"}),
		CatalogSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "meeting_locator",
			Name:      "catalog_size",
			Help:      "Meetings in the currently published catalog.",
		}),
		CatalogState: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "meeting_locator",
			Name:      "catalog_state",
			Help:      "Catalog builder state: 0 idle, 1 loading, 2 ready, 3 failed.",
		}),
		CatalogLoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "meeting_locator",
			Name:      "catalog_load_duration_seconds",
			Help:      "Duration of a complete fetch-validate-geocode-publish cycle.",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "meeting_locator",
			Name:      "geocode_requests_total",
			Help:      "Geocoding API requests by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "meeting_locator",
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by result.",
		}, []string{"result"}),
		GeocodeAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "meeting_locator",
			Name:      "geocode_api_duration_seconds",
			Help:      "Geocoding API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}
}
