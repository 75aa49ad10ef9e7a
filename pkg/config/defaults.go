package config

import "time"

// Default values for configuration fields.
const (
	// Server defaults
	DefaultListenAddress    = "127.0.0.1:3000"
	DefaultReadTimeout      = 10 * time.Second
	DefaultWriteTimeout     = 10 * time.Second
	DefaultIdleTimeout      = 60 * time.Second
	DefaultShutdownTimeout  = 10 * time.Second
	DefaultMaxHeaderBytes   = 1048576 // 1MB
	DefaultPreferenceCookie = "currency"
	DefaultPreferenceMaxAge = 365 * 24 * time.Hour

	// ModelPlaceholder is substituted in the row link templates.
	ModelPlaceholder           = "{model}"
	DefaultEditURLTemplate     = "https://github.com/isaced/llm-price/issues/new?template=update-model-price.yaml&title=Update+model+price&model-name={model}"
	DefaultProviderURLTemplate = "https://www.google.com/search?q={model}"

	// Catalogue defaults
	DefaultCatalogueDir      = "./data"
	DefaultCatalogueWatch    = false
	DefaultCatalogueDebounce = 250 * time.Millisecond

	// Currency defaults
	DefaultReferenceCurrency = "USD"
	DefaultDisplayCurrency   = "USD"
	DefaultCNYPerUSD         = 7.2

	// Pricing defaults
	DefaultBlendInputWeight  = 3.0
	DefaultBlendOutputWeight = 1.0
	DefaultSortField         = "blend"
	DefaultSortOrder         = "asc"

	// Telemetry defaults
	DefaultLoggingLevel   = "info"
	DefaultLoggingFormat  = "json"
	DefaultMetricsEnabled = true
	DefaultMetricsPath    = "/metrics"
	DefaultMetricsNS      = "pricebook"
)

// DefaultRates returns the built-in currency list.
func DefaultRates() []RateConfig {
	return []RateConfig{
		{Code: "USD", PerReference: 1},
		{Code: "CNY", PerReference: DefaultCNYPerUSD},
	}
}

// Default returns a configuration with every field at its default. File
// values are decoded on top of it, so booleans that default to true can
// still be switched off explicitly.
func Default() *Config {
	cfg := &Config{
		Catalogue: CatalogueConfig{Watch: DefaultCatalogueWatch},
		Telemetry: TelemetryConfig{
			Metrics: MetricsConfig{Enabled: DefaultMetricsEnabled},
		},
	}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults sets defaults for fields that hold zero values. It is
// idempotent.
func ApplyDefaults(cfg *Config) {
	// Server defaults
	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = DefaultListenAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Server.MaxHeaderBytes == 0 {
		cfg.Server.MaxHeaderBytes = DefaultMaxHeaderBytes
	}
	if cfg.Server.PreferenceCookie == "" {
		cfg.Server.PreferenceCookie = DefaultPreferenceCookie
	}
	if cfg.Server.PreferenceMaxAge == 0 {
		cfg.Server.PreferenceMaxAge = DefaultPreferenceMaxAge
	}
	if cfg.Server.EditURLTemplate == "" {
		cfg.Server.EditURLTemplate = DefaultEditURLTemplate
	}
	if cfg.Server.ProviderURLTemplate == "" {
		cfg.Server.ProviderURLTemplate = DefaultProviderURLTemplate
	}

	// Catalogue defaults
	if cfg.Catalogue.Dir == "" {
		cfg.Catalogue.Dir = DefaultCatalogueDir
	}
	if cfg.Catalogue.DebounceInterval == 0 {
		cfg.Catalogue.DebounceInterval = DefaultCatalogueDebounce
	}

	// Currency defaults
	if cfg.Currency.Reference == "" {
		cfg.Currency.Reference = DefaultReferenceCurrency
	}
	if cfg.Currency.Default == "" {
		cfg.Currency.Default = DefaultDisplayCurrency
	}
	if len(cfg.Currency.Rates) == 0 {
		cfg.Currency.Rates = DefaultRates()
	}

	// Pricing defaults; zero weights on both sides means "not set".
	if cfg.Pricing.Blend.InputWeight == 0 && cfg.Pricing.Blend.OutputWeight == 0 {
		cfg.Pricing.Blend.InputWeight = DefaultBlendInputWeight
		cfg.Pricing.Blend.OutputWeight = DefaultBlendOutputWeight
	}
	if cfg.Pricing.DefaultSort == "" {
		cfg.Pricing.DefaultSort = DefaultSortField
	}
	if cfg.Pricing.DefaultOrder == "" {
		cfg.Pricing.DefaultOrder = DefaultSortOrder
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNS
	}
	if len(cfg.Telemetry.Metrics.RequestDurationBuckets) == 0 {
		cfg.Telemetry.Metrics.RequestDurationBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1}
	}
}
