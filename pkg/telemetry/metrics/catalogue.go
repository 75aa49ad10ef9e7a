package metrics

import (
	"llmprice-hq/pricebook/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// CatalogueMetrics tracks the loaded price catalogue.
//
// Metrics:
//   - pricebook_catalogue_records: records per provider and source currency
//   - pricebook_catalogue_rejected_total: records the core refused, by reason
//   - pricebook_catalogue_reloads_total: reload attempts by result
type CatalogueMetrics struct {
	records  *prometheus.GaugeVec
	rejected *prometheus.CounterVec
	reloads  *prometheus.CounterVec
}

// NewCatalogueMetrics creates and registers catalogue metrics with the provided registry.
func NewCatalogueMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *CatalogueMetrics {
	cm := &CatalogueMetrics{
		records: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "catalogue_records",
				Help:      "Number of price records in the current catalogue snapshot",
			},
			[]string{"provider", "currency"},
		),

		rejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "catalogue_rejected_total",
				Help:      "Total number of catalogue records rejected during normalisation",
			},
			[]string{"reason"},
		),

		reloads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "catalogue_reloads_total",
				Help:      "Total number of catalogue reload attempts",
			},
			[]string{"result"},
		),
	}

	registry.MustRegister(
		cm.records,
		cm.rejected,
		cm.reloads,
	)

	return cm
}

// SetRecords replaces every record gauge with counts keyed by
// {provider, currency}.
func (cm *CatalogueMetrics) SetRecords(counts map[[2]string]int) {
	cm.records.Reset()
	for key, n := range counts {
		cm.records.WithLabelValues(key[0], key[1]).Set(float64(n))
	}
}

// RecordRejected counts one rejected record.
func (cm *CatalogueMetrics) RecordRejected(reason string) {
	cm.rejected.WithLabelValues(reason).Inc()
}

// RecordReload counts one reload attempt ("success" or "error").
func (cm *CatalogueMetrics) RecordReload(result string) {
	cm.reloads.WithLabelValues(result).Inc()
}
