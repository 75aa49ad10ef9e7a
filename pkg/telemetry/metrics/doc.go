// Package metrics provides Prometheus metrics collection for pricebook.
//
// # Metrics Categories
//
//   - Catalogue metrics: records per provider/currency, rejected records,
//     reload attempts
//   - HTTP metrics: request count and duration by route
//   - Projection metrics: projections per display currency
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	store.SetObserver(collector.CatalogueObserver(normalizer))
//	router.Handle("/metrics", collector.Handler())
//
// All metric names are prefixed with the configured namespace
// ("pricebook" by default).
package metrics
