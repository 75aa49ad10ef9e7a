package metrics

import (
	"sync"
	"time"

	"llmprice-hq/pricebook/pkg/catalogue"
	"llmprice-hq/pricebook/pkg/config"
	"llmprice-hq/pricebook/pkg/pricing"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector owns every Prometheus metric exported by pricebook and the
// registry they are registered with.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	// Catalogue metrics
	catalogueMetrics *CatalogueMetrics

	// HTTP metrics
	httpMetrics *HTTPMetrics

	// Projection metrics
	projectionMetrics *ProjectionMetrics

	// Provider names come from data files, so they are capped.
	cardinalityLimiter *CardinalityLimiter
}

// NewCollector creates a new metrics collector with the specified
// configuration and Prometheus registry. If registry is nil, a fresh
// registry is created.
//
// Example:
//
//	cfg := &config.MetricsConfig{Enabled: true, Namespace: "pricebook"}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNS
	}
	if len(cfg.RequestDurationBuckets) == 0 {
		cfg.RequestDurationBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1}
	}

	return &Collector{
		config:             cfg,
		registry:           registry,
		catalogueMetrics:   NewCatalogueMetrics(cfg, registry),
		httpMetrics:        NewHTTPMetrics(cfg, registry),
		projectionMetrics:  NewProjectionMetrics(cfg, registry),
		cardinalityLimiter: NewCardinalityLimiter(1000),
	}
}

// RecordHTTPRequest records one served HTTP request.
//
// Parameters:
//   - route: route template (e.g., "/api/prices"), never the raw path
//   - method: HTTP method
//   - status: response status code
//   - duration: time spent serving the request
func (c *Collector) RecordHTTPRequest(route, method string, status int, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	c.httpMetrics.RecordRequest(route, method, status, duration)
}

// RecordProjection records a catalogue projection into a display currency
// and the rows it rejected.
func (c *Collector) RecordProjection(proj pricing.Projection) {
	if !c.config.Enabled {
		return
	}

	c.projectionMetrics.RecordProjection(string(proj.Currency), len(proj.Rows), len(proj.Rejected))
}

// RecordCatalogue replaces the per-provider record gauges and counts the
// rejected records by reason.
func (c *Collector) RecordCatalogue(records []pricing.PriceRecord, rejected []pricing.Rejection) {
	if !c.config.Enabled {
		return
	}

	counts := make(map[[2]string]int)
	for _, r := range records {
		provider := r.Provider
		if !c.cardinalityLimiter.Allow(provider) {
			provider = "other"
		}
		counts[[2]string{provider, string(r.SourceCurrency)}]++
	}
	c.catalogueMetrics.SetRecords(counts)

	for _, rej := range rejected {
		c.catalogueMetrics.RecordRejected(pricing.RejectReason(rej.Err))
	}
}

// RecordReload counts a catalogue reload attempt.
func (c *Collector) RecordReload(err error) {
	if !c.config.Enabled {
		return
	}

	result := "success"
	if err != nil {
		result = "error"
	}
	c.catalogueMetrics.RecordReload(result)
}

// CatalogueObserver returns a catalogue.ReloadObserver that records every
// reload. Successful snapshots are checked with n, in its reference
// currency, to count rejected records.
func (c *Collector) CatalogueObserver(n *pricing.Normalizer) catalogue.ReloadObserver {
	return &catalogueObserver{collector: c, normalizer: n}
}

type catalogueObserver struct {
	collector  *Collector
	normalizer *pricing.Normalizer
}

func (o *catalogueObserver) CatalogueReloaded(snap *catalogue.Snapshot, err error) {
	o.collector.RecordReload(err)
	if err != nil || snap == nil {
		return
	}

	proj, perr := o.normalizer.Project(snap.Records, o.normalizer.Table().Reference())
	if perr != nil {
		return
	}
	o.collector.RecordCatalogue(snap.Records, proj.Rejected)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// CardinalityLimiter prevents metric cardinality explosion by limiting
// the number of unique label values.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a new cardinality limiter with the specified
// maximum cardinality.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow reports whether labelSet is already tracked or can still be added
// without exceeding the limit.
func (cl *CardinalityLimiter) Allow(labelSet string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[labelSet]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	if _, exists := cl.current[labelSet]; exists {
		return true
	}
	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[labelSet] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
