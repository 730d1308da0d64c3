// Package observability defines the Prometheus metrics exported by orderlens.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "orderlens"

const dashboardSubsystem = "dashboard"

// Metrics groups every collector the dashboard pipeline and HTTP layer update.
type Metrics struct {
	// BuildsTotal counts dashboard builds.
	// Labels: source (http, cli), status (success, error)
	BuildsTotal *prometheus.CounterVec

	// BuildDurationSeconds measures Execute latency.
	// Labels: source
	BuildDurationSeconds *prometheus.HistogramVec

	// FilteredRows observes how many rows survive the Filter Stage.
	FilteredRows prometheus.Histogram

	// EmptyDashboardsTotal counts builds where no row survived filtering.
	EmptyDashboardsTotal prometheus.Counter

	// DatasetRows is the size of the loaded Record Store.
	DatasetRows prometheus.Gauge

	// HTTPRequestsTotal counts API requests.
	// Labels: route, code
	HTTPRequestsTotal *prometheus.CounterVec

	// ChartRendersTotal counts PNG renders.
	// Labels: chart, status (success, no_data, error)
	ChartRendersTotal *prometheus.CounterVec
}

// NewMetrics registers the collectors on reg. Pass prometheus.DefaultRegisterer
// in production and a fresh prometheus.NewRegistry() in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		BuildsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: dashboardSubsystem,
				Name:      "builds_total",
				Help:      "Total dashboard builds by source and status",
			},
			[]string{"source", "status"},
		),

		BuildDurationSeconds: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: dashboardSubsystem,
				Name:      "build_duration_seconds",
				Help:      "Time to filter and aggregate one dashboard",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"source"},
		),

		FilteredRows: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: dashboardSubsystem,
			Name:      "filtered_rows",
			Help:      "Rows remaining after the filter stage",
			Buckets:   prometheus.ExponentialBuckets(1, 10, 7),
		}),

		EmptyDashboardsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: dashboardSubsystem,
			Name:      "empty_total",
			Help:      "Dashboard builds where no row matched the filters",
		}),

		DatasetRows: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "dataset",
			Name:      "rows",
			Help:      "Rows in the loaded order dataset",
		}),

		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "API requests by route and status code",
			},
			[]string{"route", "code"},
		),

		ChartRendersTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "chart",
				Name:      "renders_total",
				Help:      "PNG chart renders by chart and status",
			},
			[]string{"chart", "status"},
		),
	}
}

// ObserveBuild records one Execute call.
func (m *Metrics) ObserveBuild(source string, filteredRows int, elapsed time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.BuildsTotal.WithLabelValues(source, status).Inc()
	m.BuildDurationSeconds.WithLabelValues(source).Observe(elapsed.Seconds())
	if err != nil {
		return
	}
	m.FilteredRows.Observe(float64(filteredRows))
	if filteredRows == 0 {
		m.EmptyDashboardsTotal.Inc()
	}
}
