package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"llmprice-hq/pricebook/pkg/catalogue"
	"llmprice-hq/pricebook/pkg/config"
	"llmprice-hq/pricebook/pkg/currency"
	"llmprice-hq/pricebook/pkg/pricing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// Helper function to create test config
func testConfig() *config.MetricsConfig {
	return &config.MetricsConfig{
		Enabled:                true,
		Namespace:              "test",
		RequestDurationBuckets: []float64{0.01, 0.1, 1.0},
	}
}

func testRecords() []pricing.PriceRecord {
	return []pricing.PriceRecord{
		{Provider: "OpenAI", Model: "gpt-4o", OneMInputTokenPrice: 2.5, OneMOutputPrice: 10, SourceCurrency: currency.USD},
		{Provider: "OpenAI", Model: "gpt-4o-mini", OneMInputTokenPrice: 0.15, OneMOutputPrice: 0.6, SourceCurrency: currency.USD},
		{Provider: "DeepSeek", Model: "deepseek-chat", OneMInputTokenPrice: 2, OneMOutputPrice: 8, SourceCurrency: currency.CNY},
		{Provider: "Mistral", Model: "large", OneMInputTokenPrice: 2, OneMOutputPrice: 6, SourceCurrency: "EUR"},
		{Provider: "Broken", Model: "neg", OneMInputTokenPrice: -1, OneMOutputPrice: 1, SourceCurrency: currency.USD},
	}
}

func TestCollector_NewCollector(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()

	collector := NewCollector(cfg, registry)

	if collector == nil {
		t.Fatal("Expected non-nil collector")
	}
	if collector.Registry() != registry {
		t.Error("Collector registry not set correctly")
	}
}

func TestCollector_NewCollector_Defaults(t *testing.T) {
	cfg := &config.MetricsConfig{Enabled: true}
	NewCollector(cfg, nil)

	if cfg.Namespace != "pricebook" {
		t.Errorf("namespace = %q, want pricebook", cfg.Namespace)
	}
	if len(cfg.RequestDurationBuckets) == 0 {
		t.Error("expected default buckets")
	}
}

func TestCollector_RecordHTTPRequest(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	collector.RecordHTTPRequest("/api/prices", "GET", 200, 5*time.Millisecond)
	collector.RecordHTTPRequest("/api/prices", "GET", 200, 7*time.Millisecond)
	collector.RecordHTTPRequest("/api/prices", "GET", 400, time.Millisecond)

	if got := testutil.ToFloat64(collector.httpMetrics.requestsTotal.WithLabelValues("/api/prices", "GET", "200")); got != 2 {
		t.Errorf("200 count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(collector.httpMetrics.requestsTotal.WithLabelValues("/api/prices", "GET", "400")); got != 1 {
		t.Errorf("400 count = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(collector.httpMetrics.requestDuration); got != 1 {
		t.Errorf("duration series = %d, want 1", got)
	}
}

func TestCollector_RecordProjection(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	collector.RecordProjection(pricing.Projection{
		Currency: currency.CNY,
		Rows:     make([]pricing.DisplayRecord, 3),
		Rejected: make([]pricing.Rejection, 1),
	})

	if got := testutil.ToFloat64(collector.projectionMetrics.projectionsTotal.WithLabelValues("CNY")); got != 1 {
		t.Errorf("projections = %v, want 1", got)
	}
	if got := testutil.ToFloat64(collector.projectionMetrics.rows.WithLabelValues("CNY", "shown")); got != 3 {
		t.Errorf("shown rows = %v, want 3", got)
	}
	if got := testutil.ToFloat64(collector.projectionMetrics.rows.WithLabelValues("CNY", "rejected")); got != 1 {
		t.Errorf("rejected rows = %v, want 1", got)
	}
}

func TestCollector_CatalogueObserver(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())
	observer := collector.CatalogueObserver(pricing.NewNormalizer(currency.DefaultTable(), pricing.DefaultWeights))

	observer.CatalogueReloaded(&catalogue.Snapshot{Records: testRecords()}, nil)
	observer.CatalogueReloaded(nil, errors.New("bad json"))

	cm := collector.catalogueMetrics
	if got := testutil.ToFloat64(cm.reloads.WithLabelValues("success")); got != 1 {
		t.Errorf("successful reloads = %v, want 1", got)
	}
	if got := testutil.ToFloat64(cm.reloads.WithLabelValues("error")); got != 1 {
		t.Errorf("failed reloads = %v, want 1", got)
	}
	if got := testutil.ToFloat64(cm.records.WithLabelValues("OpenAI", "USD")); got != 2 {
		t.Errorf("OpenAI USD records = %v, want 2", got)
	}
	if got := testutil.ToFloat64(cm.records.WithLabelValues("DeepSeek", "CNY")); got != 1 {
		t.Errorf("DeepSeek CNY records = %v, want 1", got)
	}
	if got := testutil.ToFloat64(cm.rejected.WithLabelValues("unsupported_currency")); got != 1 {
		t.Errorf("unsupported rejections = %v, want 1", got)
	}
	if got := testutil.ToFloat64(cm.rejected.WithLabelValues("malformed")); got != 1 {
		t.Errorf("malformed rejections = %v, want 1", got)
	}
}

func TestCollector_RecordCatalogue_ResetsGauges(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	collector.RecordCatalogue(testRecords(), nil)
	collector.RecordCatalogue(testRecords()[:1], nil)

	if got := testutil.CollectAndCount(collector.catalogueMetrics.records); got != 1 {
		t.Errorf("record series = %d, want 1 after shrinking catalogue", got)
	}
}

func TestCollector_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	collector := NewCollector(cfg, prometheus.NewRegistry())

	collector.RecordHTTPRequest("/", "GET", 200, time.Millisecond)
	collector.RecordReload(nil)

	if got := testutil.CollectAndCount(collector.httpMetrics.requestsTotal); got != 0 {
		t.Errorf("expected no HTTP series when disabled, got %d", got)
	}
	if got := testutil.CollectAndCount(collector.catalogueMetrics.reloads); got != 0 {
		t.Errorf("expected no reload series when disabled, got %d", got)
	}
}

func TestCardinalityLimiter(t *testing.T) {
	cl := NewCardinalityLimiter(2)

	if !cl.Allow("a") || !cl.Allow("b") {
		t.Fatal("first two label sets should be allowed")
	}
	if cl.Allow("c") {
		t.Error("third label set should be rejected")
	}
	if !cl.Allow("a") {
		t.Error("existing label set should still be allowed")
	}
	if cl.Count() != 2 {
		t.Errorf("Count() = %d, want 2", cl.Count())
	}
}

func TestCollector_Handler(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())
	collector.RecordReload(nil)

	rec := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "test_catalogue_reloads_total") {
		t.Errorf("metrics output missing reload counter:\n%s", rec.Body.String())
	}
}
