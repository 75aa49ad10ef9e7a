package currency

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := map[string]Code{
		"usd":   USD,
		" CNY ": CNY,
		"":      "",
		"eur":   "EUR",
	}
	for in, want := range tests {
		if got := Parse(in); got != want {
			t.Errorf("Parse(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestResolve(t *testing.T) {
	table := DefaultTable()

	tests := []struct {
		name       string
		preference string
		query      string
		want       Code
	}{
		{"nothing set", "", "", USD},
		{"query only", "", "CNY", CNY},
		{"lower-case query", "", "cny", CNY},
		{"preference wins over query", "USD", "CNY", USD},
		{"preference only", "CNY", "", CNY},
		{"invalid preference falls through to query", "EUR", "CNY", CNY},
		{"invalid query falls back", "", "EUR", USD},
		{"both invalid", "GBP", "EUR", USD},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(table, tt.preference, tt.query, USD); got != tt.want {
				t.Errorf("Resolve(%q, %q) = %s, want %s", tt.preference, tt.query, got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		code   Code
		locale string
		want   string
	}{
		{"usd english", 10.5, USD, "en", "10.50"},
		{"cny chinese", 72, CNY, "zh", "72.00"},
		{"bad locale", 1.25, USD, "!!", "1.25"},
		{"non iso code", 3, "XYZ1", "en", "3.00 XYZ1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(tt.amount, tt.code, tt.locale)
			if !strings.Contains(got, tt.want) {
				t.Errorf("Format(%v, %s, %s) = %q, want it to contain %q", tt.amount, tt.code, tt.locale, got, tt.want)
			}
		})
	}
}
