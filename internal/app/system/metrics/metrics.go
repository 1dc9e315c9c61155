// Package metrics exposes Prometheus instrumentation for directory searches
// and the resource catalog.
//
// Metrics:
//   - recursos_searches_total: searches served, by profile and surface (page, snippet, api)
//   - recursos_search_results: histogram of result counts per search
//   - recursos_empty_searches_total: searches that returned no rows, by profile
//   - recursos_catalog_rows: rows in the loaded table
//   - recursos_catalog_loaded_timestamp_seconds: Unix time of the last successful load
//   - recursos_catalog_load_failures_total: failed loads
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "recursos"

// Surfaces a search can be served from.
const (
	SurfacePage    = "page"
	SurfaceSnippet = "snippet"
	SurfaceAPI     = "api"
)

// Metrics holds every collector. A nil *Metrics records nothing.
type Metrics struct {
	SearchesTotal      *prometheus.CounterVec
	SearchResults      prometheus.Histogram
	EmptySearchesTotal *prometheus.CounterVec

	CatalogRows         prometheus.Gauge
	CatalogLoadedAt     prometheus.Gauge
	CatalogLoadFailures prometheus.Counter
}

// New creates the collectors and registers them with reg. Pass
// prometheus.DefaultRegisterer in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		SearchesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Directory searches served.",
		}, []string{"profile", "surface"}),
		SearchResults: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_results",
			Help:      "Number of resources returned per search.",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
		}),
		EmptySearchesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "empty_searches_total",
			Help:      "Searches that returned no resources.",
		}, []string{"profile"}),
		CatalogRows: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_rows",
			Help:      "Rows in the loaded resource table.",
		}),
		CatalogLoadedAt: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_loaded_timestamp_seconds",
			Help:      "Unix timestamp of the last successful table load.",
		}),
		CatalogLoadFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_load_failures_total",
			Help:      "Failed resource table loads.",
		}),
	}
}

// RecordSearch counts one search and its result size.
func (m *Metrics) RecordSearch(profile, surface string, results int) {
	if m == nil {
		return
	}
	m.SearchesTotal.WithLabelValues(profile, surface).Inc()
	m.SearchResults.Observe(float64(results))
	if results == 0 {
		m.EmptySearchesTotal.WithLabelValues(profile).Inc()
	}
}

// RecordCatalogLoad records a successful load.
func (m *Metrics) RecordCatalogLoad(rows int, at time.Time) {
	if m == nil {
		return
	}
	m.CatalogRows.Set(float64(rows))
	m.CatalogLoadedAt.Set(float64(at.Unix()))
}

// RecordCatalogFailure records a failed load.
func (m *Metrics) RecordCatalogFailure() {
	if m == nil {
		return
	}
	m.CatalogLoadFailures.Inc()
}
