package cli

import (
	"errors"
	"fmt"
	"testing"

	"llmprice-hq/pricebook/pkg/config"
)

func TestConfigError(t *testing.T) {
	err := NewConfigError("currency.default", "not declared")

	expected := "config error in currency.default: not declared"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestCommandError(t *testing.T) {
	inner := errors.New("boom")
	err := NewCommandError("validate", inner)

	if err.Error() != "command validate failed: boom" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("CommandError should unwrap to the inner error")
	}
}

func TestConfigErrorFrom(t *testing.T) {
	verr := config.ValidationError{Errors: []config.FieldError{
		{Field: "catalogue.dir", Message: "is required"},
		{Field: "pricing.default_sort", Message: "unknown"},
	}}

	var cerr *ConfigError
	if !errors.As(ConfigErrorFrom(fmt.Errorf("load: %w", verr)), &cerr) {
		t.Fatal("expected a ConfigError")
	}
	if cerr.Field != "catalogue.dir" || cerr.Message != "is required (and 1 more)" {
		t.Errorf("ConfigError = %+v", cerr)
	}

	plain := errors.New("plain")
	if got := ConfigErrorFrom(plain); got != plain {
		t.Errorf("non-validation error changed: %v", got)
	}
}
