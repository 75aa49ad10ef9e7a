package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	"llmprice-hq/pricebook/pkg/pricing"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the field (e.g., "server.listen_address").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError collects every field error found in a configuration.
type ValidationError struct {
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the configuration and returns a ValidationError
// listing every problem, or nil.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateServer(&cfg.Server)...)
	errs = append(errs, validateCatalogue(&cfg.Catalogue)...)
	errs = append(errs, validateCurrency(&cfg.Currency)...)
	errs = append(errs, validatePricing(&cfg.Pricing)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

func validateServer(cfg *ServerConfig) []FieldError {
	var errs []FieldError

	if _, _, err := net.SplitHostPort(cfg.ListenAddress); err != nil {
		errs = append(errs, FieldError{
			Field:   "server.listen_address",
			Message: fmt.Sprintf("invalid address %q: %v", cfg.ListenAddress, err),
		})
	}
	if cfg.ReadTimeout < 0 {
		errs = append(errs, FieldError{Field: "server.read_timeout", Message: "must not be negative"})
	}
	if cfg.WriteTimeout < 0 {
		errs = append(errs, FieldError{Field: "server.write_timeout", Message: "must not be negative"})
	}
	if cfg.IdleTimeout < 0 {
		errs = append(errs, FieldError{Field: "server.idle_timeout", Message: "must not be negative"})
	}
	if cfg.ShutdownTimeout <= 0 {
		errs = append(errs, FieldError{Field: "server.shutdown_timeout", Message: "must be positive"})
	}
	if cfg.MaxHeaderBytes < 0 {
		errs = append(errs, FieldError{Field: "server.max_header_bytes", Message: "must not be negative"})
	}
	if strings.ContainsAny(cfg.PreferenceCookie, " ;,=\t") {
		errs = append(errs, FieldError{Field: "server.preference_cookie", Message: "not a valid cookie name"})
	}
	if cfg.PreferenceMaxAge < 0 {
		errs = append(errs, FieldError{Field: "server.preference_max_age", Message: "must not be negative"})
	}
	if msg := checkLinkTemplate(cfg.EditURLTemplate); msg != "" {
		errs = append(errs, FieldError{Field: "server.edit_url_template", Message: msg})
	}
	if msg := checkLinkTemplate(cfg.ProviderURLTemplate); msg != "" {
		errs = append(errs, FieldError{Field: "server.provider_url_template", Message: msg})
	}

	return errs
}

func checkLinkTemplate(tmpl string) string {
	u, err := url.Parse(modelURL(tmpl, "model"))
	if err != nil {
		return fmt.Sprintf("invalid URL: %v", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "must be an absolute http(s) URL"
	}
	return ""
}

func validateCatalogue(cfg *CatalogueConfig) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(cfg.Dir) == "" {
		errs = append(errs, FieldError{Field: "catalogue.dir", Message: "is required"})
	}
	if cfg.DebounceInterval < 0 {
		errs = append(errs, FieldError{Field: "catalogue.debounce_interval", Message: "must not be negative"})
	}

	return errs
}

func validateCurrency(cfg *CurrencyConfig) []FieldError {
	var errs []FieldError

	table, err := cfg.Table()
	if err != nil {
		errs = append(errs, FieldError{Field: "currency.rates", Message: err.Error()})
		return errs
	}
	if !table.Supports(cfg.DefaultCode()) {
		errs = append(errs, FieldError{
			Field:   "currency.default",
			Message: fmt.Sprintf("%q is not declared in currency.rates", cfg.Default),
		})
	}

	return errs
}

func validatePricing(cfg *PricingConfig) []FieldError {
	var errs []FieldError

	if err := cfg.Blend.Weights().Validate(); err != nil {
		errs = append(errs, FieldError{Field: "pricing.blend", Message: err.Error()})
	}
	if _, err := pricing.ParseField(cfg.DefaultSort); err != nil {
		errs = append(errs, FieldError{Field: "pricing.default_sort", Message: err.Error()})
	}
	if _, err := pricing.ParseOrder(cfg.DefaultOrder); err != nil {
		errs = append(errs, FieldError{Field: "pricing.default_order", Message: err.Error()})
	}

	return errs
}

func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	switch strings.ToLower(cfg.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("must be one of debug, info, warn, error; got %q", cfg.Logging.Level),
		})
	}
	switch strings.ToLower(cfg.Logging.Format) {
	case "json", "text":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("must be json or text; got %q", cfg.Logging.Format),
		})
	}
	if cfg.Metrics.Enabled && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		errs = append(errs, FieldError{Field: "telemetry.metrics.path", Message: "must start with /"})
	}

	return errs
}
