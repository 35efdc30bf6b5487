// Package metrics provides Prometheus metrics collection for attrgate.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for PassesTotal.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Collector holds all Prometheus metrics for attrgate.
type Collector struct {
	// Validation metrics
	PassesTotal      *prometheus.CounterVec
	PassDuration     *prometheus.HistogramVec
	DiagnosticsTotal *prometheus.CounterVec

	// Schema registry metrics
	SchemasLoaded      prometheus.Gauge
	SchemaReloads      prometheus.Counter
	SchemaReloadErrors prometheus.Counter
	SchemaLastReload   prometheus.Gauge
}

// New creates a new metrics collector registered on the default registry.
func New() *Collector {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a new metrics collector with a custom registry.
// Useful for testing to avoid global state.
func NewWithRegistry(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		PassesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "attrgate",
				Name:      "passes_total",
				Help:      "Total number of validation passes",
			},
			[]string{"schema", "outcome"},
		),
		PassDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "attrgate",
				Name:      "pass_duration_seconds",
				Help:      "Validation pass duration in seconds",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
			},
			[]string{"schema"},
		),
		DiagnosticsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "attrgate",
				Name:      "diagnostics_total",
				Help:      "Total diagnostics emitted, by severity",
			},
			[]string{"severity"},
		),

		SchemasLoaded: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "attrgate",
				Name:      "schemas_loaded",
				Help:      "Number of schema declarations currently registered",
			},
		),
		SchemaReloads: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "attrgate",
				Name:      "schema_reloads_total",
				Help:      "Total number of successful schema reloads",
			},
		),
		SchemaReloadErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "attrgate",
				Name:      "schema_reload_errors_total",
				Help:      "Total number of schema reload errors",
			},
		),
		SchemaLastReload: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "attrgate",
				Name:      "schema_last_reload_timestamp",
				Help:      "Unix timestamp of last successful schema reload",
			},
		),
	}
}
