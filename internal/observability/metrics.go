package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "impact"

// Metrics holds the Prometheus counters, histograms, and gauges for the
// simulation service.
type Metrics struct {
	// Simulation metrics.
	Simulations        *prometheus.CounterVec   // labels: source={catalog,custom}
	SimulationDuration *prometheus.HistogramVec // labels: source={catalog,custom}
	ImpactEnergy       prometheus.Histogram
	LookupFailures     *prometheus.CounterVec // labels: reason={not_found,unavailable,invalid}

	// Catalog metrics.
	CatalogRequests    *prometheus.CounterVec   // labels: method={fetch,search}, outcome={found,not_found,error}
	CatalogCache       *prometheus.CounterVec   // labels: method={fetch,search}, result={hit,miss}
	CatalogAPIDuration *prometheus.HistogramVec // labels: method={fetch,browse}
	SearchPagesScanned prometheus.Histogram

	// Result publishing metrics.
	PublishedResults prometheus.Counter
	PublishErrors    prometheus.Counter
	PublisherEnabled prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsWith creates all service metrics and registers them with reg.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	m := newMetrics()
	reg.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Simulations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "simulations_total",
			Help:      "Completed impact simulations by input source.",
		}, []string{"source"}),
		SimulationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "simulation_duration_seconds",
			Help:      "End-to-end simulation duration including catalog lookup.",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 15, 30, 60},
		}, []string{"source"}),
		ImpactEnergy: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "kinetic_energy_megatons",
			Help:      "Kinetic energy of simulated impacts in megatons of TNT.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 10, 12),
		}),
		LookupFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookup_failures_total",
			Help:      "Catalog-driven requests that produced no simulation, by reason.",
		}, []string{"reason"}),
		CatalogRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_requests_total",
			Help:      "NeoWs lookups by method and outcome.",
		}, []string{"method", "outcome"}),
		CatalogCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_cache_total",
			Help:      "Catalog cache lookups by method and result.",
		}, []string{"method", "result"}),
		CatalogAPIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "catalog_api_duration_seconds",
			Help:      "NeoWs HTTP request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"method"}),
		SearchPagesScanned: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "catalog_search_pages",
			Help:      "Browse pages fetched per name search.",
			Buckets:   []float64{1, 2, 5, 10, 25, 50, 100},
		}),
		PublishedResults: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "published_results_total",
			Help:      "Simulation records written to the results topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_errors_total",
			Help:      "Simulation records that failed to publish.",
		}),
		PublisherEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "publisher_enabled",
			Help:      "1 when result publishing is enabled, 0 otherwise.",
		}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.Simulations,
		m.SimulationDuration,
		m.ImpactEnergy,
		m.LookupFailures,
		m.CatalogRequests,
		m.CatalogCache,
		m.CatalogAPIDuration,
		m.SearchPagesScanned,
		m.PublishedResults,
		m.PublishErrors,
		m.PublisherEnabled,
	}
}
