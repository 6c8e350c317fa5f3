package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the weather pipeline.
type Metrics struct {
	Queries        *prometheus.CounterVec // labels: outcome={success,not_found,malformed,transport}
	FetchDuration  prometheus.Histogram
	BusyRejections prometheus.Counter
	DisplayState   prometheus.Gauge // 0 idle, 1 result shown

	// Asset service metrics.
	AssetLoads *prometheus.CounterVec // labels: asset, result={ok,error}

	// Report event metrics.
	ReportsPublished prometheus.Counter
	PublishErrors    prometheus.Counter
	ReportsEnabled   prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "city_weather",
			Name:      "queries_total",
			Help:      "Weather lookups by outcome.",
		}, []string{"outcome"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "city_weather",
			Name:      "fetch_duration_seconds",
			Help:      "OpenWeatherMap request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		BusyRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "city_weather",
			Name:      "busy_rejections_total",
			Help:      "Searches refused because another search was in flight.",
		}),
		DisplayState: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "city_weather",
			Name:      "display_state",
			Help:      "0 while no report is shown, 1 once a report is displayed.",
		}),
		AssetLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "city_weather",
			Name:      "asset_loads_total",
			Help:      "Background image loads by asset and result.",
		}, []string{"asset", "result"}),
		ReportsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "city_weather",
			Name:      "reports_published_total",
			Help:      "Report events written to the report topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "city_weather",
			Name:      "publish_errors_total",
			Help:      "Report events that failed to publish.",
		}),
		ReportsEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "city_weather",
			Name:      "reports_enabled",
			Help:      "1 when report events are published, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.Queries,
		m.FetchDuration,
		m.BusyRejections,
		m.DisplayState,
		m.AssetLoads,
		m.ReportsPublished,
		m.PublishErrors,
		m.ReportsEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		Queries:          prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "city_weather", Name: "queries_total"}, []string{"outcome"}),
		FetchDuration:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "city_weather", Name: "fetch_duration_seconds"}),
		BusyRejections:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "city_weather", Name: "busy_rejections_total"}),
		DisplayState:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "city_weather", Name: "display_state"}),
		AssetLoads:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "city_weather", Name: "asset_loads_total"}, []string{"asset", "result"}),
		ReportsPublished: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "city_weather", Name: "reports_published_total"}),
		PublishErrors:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "city_weather", Name: "publish_errors_total"}),
		ReportsEnabled:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "city_weather", Name: "reports_enabled"}),
	}
}
