package metrics

import (
	"llmprice-hq/pricebook/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// ProjectionMetrics tracks catalogue projections into display currencies.
//
// Metrics:
//   - pricebook_projections_total: projections by display currency
//   - pricebook_projection_rows: rows in the latest projection per currency
type ProjectionMetrics struct {
	projectionsTotal *prometheus.CounterVec
	rows             *prometheus.GaugeVec
}

// NewProjectionMetrics creates and registers projection metrics with the provided registry.
func NewProjectionMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ProjectionMetrics {
	pm := &ProjectionMetrics{
		projectionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "projections_total",
				Help:      "Total number of catalogue projections by display currency",
			},
			[]string{"currency"},
		),

		rows: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "projection_rows",
				Help:      "Rows shown and rejected by the latest projection",
			},
			[]string{"currency", "state"},
		),
	}

	registry.MustRegister(
		pm.projectionsTotal,
		pm.rows,
	)

	return pm
}

// RecordProjection records one projection.
func (pm *ProjectionMetrics) RecordProjection(currency string, shown, rejected int) {
	pm.projectionsTotal.WithLabelValues(currency).Inc()
	pm.rows.WithLabelValues(currency, "shown").Set(float64(shown))
	pm.rows.WithLabelValues(currency, "rejected").Set(float64(rejected))
}
