package config

import (
	"net/url"
	"strings"
	"time"

	"llmprice-hq/pricebook/pkg/currency"
	"llmprice-hq/pricebook/pkg/pricing"
)

// Config is the root configuration structure for pricebook.
type Config struct {
	// Server contains HTTP server configuration.
	Server ServerConfig `yaml:"server"`

	// Catalogue controls where provider price files are read from.
	Catalogue CatalogueConfig `yaml:"catalogue"`

	// Currency declares the supported currencies and their fixed rates.
	Currency CurrencyConfig `yaml:"currency"`

	// Pricing controls blending and default table ordering.
	Pricing PricingConfig `yaml:"pricing"`

	// Telemetry contains logging and metrics configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig contains configuration for the HTTP server.
type ServerConfig struct {
	// ListenAddress is the "host:port" to listen on.
	// Default: "127.0.0.1:3000"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading a request.
	// Default: 10s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes.
	// Default: 10s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the keep-alive idle timeout.
	// Default: 60s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 10s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxHeaderBytes limits request header size.
	// Default: 1048576 (1MB)
	MaxHeaderBytes int `yaml:"max_header_bytes"`

	// PreferenceCookie is the cookie that remembers the selected currency.
	// Default: "currency"
	PreferenceCookie string `yaml:"preference_cookie"`

	// PreferenceMaxAge is how long the currency cookie lives.
	// Default: 8760h (one year)
	PreferenceMaxAge time.Duration `yaml:"preference_max_age"`

	// EditURLTemplate is the per-row "Edit" link. "{model}" is replaced by
	// the query-escaped model name.
	// Default: a pre-filled "update model price" issue form
	EditURLTemplate string `yaml:"edit_url_template"`

	// ProviderURLTemplate is the per-row "View provider" link, with the
	// same "{model}" placeholder.
	// Default: a web search for the model
	ProviderURLTemplate string `yaml:"provider_url_template"`
}

// EditURL renders EditURLTemplate for model.
func (c ServerConfig) EditURL(model string) string {
	return modelURL(c.EditURLTemplate, model)
}

// ProviderURL renders ProviderURLTemplate for model.
func (c ServerConfig) ProviderURL(model string) string {
	return modelURL(c.ProviderURLTemplate, model)
}

func modelURL(tmpl, model string) string {
	return strings.ReplaceAll(tmpl, ModelPlaceholder, url.QueryEscape(model))
}

// CatalogueConfig contains configuration for the price catalogue.
type CatalogueConfig struct {
	// Dir is the directory holding one JSON file per provider.
	// Default: "./data"
	Dir string `yaml:"dir"`

	// Watch reloads the catalogue when files in Dir change.
	// Default: false
	Watch bool `yaml:"watch"`

	// DebounceInterval is the quiet period before a watched reload.
	// Default: 250ms
	DebounceInterval time.Duration `yaml:"debounce_interval"`
}

// CurrencyConfig declares the conversion table.
type CurrencyConfig struct {
	// Reference is the currency every rate is expressed against.
	// Default: "USD"
	Reference string `yaml:"reference"`

	// Default is the display currency when no preference or query applies.
	// Default: "USD"
	Default string `yaml:"default"`

	// Rates lists supported currencies in selector order.
	// Default: USD 1, CNY 7.2
	Rates []RateConfig `yaml:"rates"`
}

// RateConfig is one supported currency.
type RateConfig struct {
	// Code is the ISO 4217 code.
	Code string `yaml:"code"`

	// PerReference is how many units of Code buy one reference unit.
	PerReference float64 `yaml:"per_reference"`
}

// Table builds the conversion table from the configured rates.
func (c CurrencyConfig) Table() (*currency.Table, error) {
	rates := make([]currency.Rate, len(c.Rates))
	for i, r := range c.Rates {
		rates[i] = currency.Rate{Code: currency.Parse(r.Code), PerReference: r.PerReference}
	}
	return currency.NewTable(currency.Parse(c.Reference), rates)
}

// DefaultCode returns the configured default display currency.
func (c CurrencyConfig) DefaultCode() currency.Code {
	return currency.Parse(c.Default)
}

// PricingConfig controls the blended price and default ordering.
type PricingConfig struct {
	// Blend sets the input/output weighting of the blended price.
	// Default: input 3, output 1
	Blend BlendConfig `yaml:"blend"`

	// DefaultSort is the field rows are ordered by ("blend", "input", "output").
	// Default: "blend"
	DefaultSort string `yaml:"default_sort"`

	// DefaultOrder is "asc" or "desc".
	// Default: "asc"
	DefaultOrder string `yaml:"default_order"`
}

// BlendConfig holds the blend weights.
type BlendConfig struct {
	InputWeight  float64 `yaml:"input_weight"`
	OutputWeight float64 `yaml:"output_weight"`
}

// Weights converts the blend configuration.
func (b BlendConfig) Weights() pricing.Weights {
	return pricing.Weights{Input: b.InputWeight, Output: b.OutputWeight}
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging contains structured logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum level: "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is "json" or "text".
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file:line in log records.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled exposes the metrics endpoint.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the HTTP path of the metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace prefixes every metric name.
	// Default: "pricebook"
	Namespace string `yaml:"namespace"`

	// Subsystem is the optional second name component.
	Subsystem string `yaml:"subsystem"`

	// RequestDurationBuckets are histogram buckets in seconds.
	RequestDurationBuckets []float64 `yaml:"request_duration_buckets"`
}
