package pricing

import (
	"errors"
	"math"
	"testing"

	"llmprice-hq/pricebook/pkg/currency"
)

func sevenTable(t *testing.T) *currency.Table {
	t.Helper()
	table, err := currency.NewTable(currency.USD, []currency.Rate{
		{Code: currency.USD, PerReference: 1},
		{Code: currency.CNY, PerReference: 7},
	})
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	return table
}

func TestBlendPrice(t *testing.T) {
	tests := []struct {
		input, output, want float64
	}{
		{10, 30, 60},
		{0, 0, 0},
		{1, 0, 3},
		{0, 1, 1},
		{0.5, 1.5, 3},
	}
	for _, tt := range tests {
		if got := BlendPrice(tt.input, tt.output); got != tt.want {
			t.Errorf("BlendPrice(%v, %v) = %v, want %v", tt.input, tt.output, got, tt.want)
		}
	}
}

func TestWeights_Blend_Custom(t *testing.T) {
	w := Weights{Input: 1, Output: 1}
	if got := w.Blend(2, 5); got != 7 {
		t.Errorf("Blend() = %v, want 7", got)
	}
}

func TestWeights_Validate(t *testing.T) {
	tests := []struct {
		name    string
		w       Weights
		wantErr bool
	}{
		{"default", DefaultWeights, false},
		{"input only", Weights{Input: 1}, false},
		{"both zero", Weights{}, true},
		{"negative", Weights{Input: -1, Output: 1}, true},
		{"infinite", Weights{Input: math.Inf(1), Output: 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.w.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPriceRecord_Validate(t *testing.T) {
	base := PriceRecord{Provider: "openai", Model: "gpt-4o", OneMInputTokenPrice: 5, OneMOutputPrice: 15, SourceCurrency: currency.USD}

	tests := []struct {
		name    string
		mutate  func(*PriceRecord)
		wantErr bool
	}{
		{"valid", func(r *PriceRecord) {}, false},
		{"free model", func(r *PriceRecord) { r.OneMInputTokenPrice, r.OneMOutputPrice = 0, 0 }, false},
		{"negative input", func(r *PriceRecord) { r.OneMInputTokenPrice = -1 }, true},
		{"negative output", func(r *PriceRecord) { r.OneMOutputPrice = -0.01 }, true},
		{"NaN input", func(r *PriceRecord) { r.OneMInputTokenPrice = math.NaN() }, true},
		{"infinite output", func(r *PriceRecord) { r.OneMOutputPrice = math.Inf(1) }, true},
		{"empty model", func(r *PriceRecord) { r.Model = " " }, true},
		{"empty provider", func(r *PriceRecord) { r.Provider = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := base
			tt.mutate(&r)
			err := r.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrMalformedRecord) {
				t.Errorf("error %v does not wrap ErrMalformedRecord", err)
			}
		})
	}
}

func TestNormalizer_Display(t *testing.T) {
	n := NewNormalizer(sevenTable(t), DefaultWeights)

	rec := PriceRecord{Provider: "openai", Model: "gpt-4o", OneMInputTokenPrice: 10, OneMOutputPrice: 30, SourceCurrency: currency.USD}

	d, err := n.Display(rec, currency.CNY)
	if err != nil {
		t.Fatalf("Display() error = %v", err)
	}
	if d.OneMInputTokenPriceConverted != 70 {
		t.Errorf("input converted = %v, want 70", d.OneMInputTokenPriceConverted)
	}
	if d.OneMOutputPriceConverted != 210 {
		t.Errorf("output converted = %v, want 210", d.OneMOutputPriceConverted)
	}
	if d.BlendPrice != 420 {
		t.Errorf("blend = %v, want 420", d.BlendPrice)
	}
	if d.DisplayCurrency != currency.CNY {
		t.Errorf("display currency = %s, want CNY", d.DisplayCurrency)
	}
	if d.PriceRecord != rec {
		t.Error("display record does not carry the source record unchanged")
	}

	same, err := n.Display(rec, currency.USD)
	if err != nil {
		t.Fatalf("Display() error = %v", err)
	}
	if same.BlendPrice != 60 {
		t.Errorf("blend in source currency = %v, want 60", same.BlendPrice)
	}
}

func TestNormalizer_Display_Errors(t *testing.T) {
	n := NewNormalizer(sevenTable(t), DefaultWeights)

	t.Run("unsupported source", func(t *testing.T) {
		rec := PriceRecord{Provider: "x", Model: "m", OneMInputTokenPrice: 1, OneMOutputPrice: 1, SourceCurrency: "EUR"}
		_, err := n.Display(rec, currency.USD)
		if !errors.Is(err, currency.ErrUnsupportedCurrency) {
			t.Errorf("error = %v, want ErrUnsupportedCurrency", err)
		}
		var re *RecordError
		if !errors.As(err, &re) || re.Model != "m" {
			t.Errorf("error = %v, want *RecordError naming the model", err)
		}
	})

	t.Run("unsupported display", func(t *testing.T) {
		rec := PriceRecord{Provider: "x", Model: "m", OneMInputTokenPrice: 1, OneMOutputPrice: 1, SourceCurrency: currency.USD}
		_, err := n.Display(rec, "EUR")
		if !errors.Is(err, currency.ErrUnsupportedCurrency) {
			t.Errorf("error = %v, want ErrUnsupportedCurrency", err)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		rec := PriceRecord{Provider: "x", Model: "m", OneMInputTokenPrice: -1, OneMOutputPrice: 1, SourceCurrency: currency.USD}
		_, err := n.Display(rec, currency.USD)
		if !errors.Is(err, ErrMalformedRecord) {
			t.Errorf("error = %v, want ErrMalformedRecord", err)
		}
	})

	overflows := []struct {
		name    string
		rec     PriceRecord
		display currency.Code
	}{
		{
			name:    "conversion overflows",
			rec:     PriceRecord{Provider: "x", Model: "huge", OneMInputTokenPrice: 1, OneMOutputPrice: math.MaxFloat64 / 2, SourceCurrency: currency.USD},
			display: currency.CNY,
		},
		{
			name:    "blend overflows",
			rec:     PriceRecord{Provider: "x", Model: "huge", OneMInputTokenPrice: 1e308, OneMOutputPrice: 1, SourceCurrency: currency.USD},
			display: currency.USD,
		},
	}
	for _, tt := range overflows {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.rec.Validate(); err != nil {
				t.Fatalf("record should be valid before conversion: %v", err)
			}
			d, err := n.Display(tt.rec, tt.display)
			if !errors.Is(err, ErrMalformedRecord) {
				t.Fatalf("error = %v, want ErrMalformedRecord (got %+v)", err, d)
			}
			var re *RecordError
			if !errors.As(err, &re) || re.Model != "huge" {
				t.Errorf("error = %v, want *RecordError naming the model", err)
			}
		})
	}
}

func TestNormalizer_Project_OverflowRowRejected(t *testing.T) {
	n := NewNormalizer(sevenTable(t), DefaultWeights)

	records := []PriceRecord{
		{Provider: "openai", Model: "gpt-4o", OneMInputTokenPrice: 5, OneMOutputPrice: 15, SourceCurrency: currency.USD},
		{Provider: "x", Model: "huge", OneMInputTokenPrice: 1e308, OneMOutputPrice: 1, SourceCurrency: currency.USD},
		{Provider: "deepseek", Model: "deepseek-chat", OneMInputTokenPrice: 1, OneMOutputPrice: 2, SourceCurrency: currency.CNY},
	}

	for _, display := range []currency.Code{currency.USD, currency.CNY} {
		proj, err := n.Project(records, display)
		if err != nil {
			t.Fatalf("Project(%s) error = %v", display, err)
		}
		if len(proj.Rows) != 2 || len(proj.Rejected) != 1 || proj.Rejected[0].Record.Model != "huge" {
			t.Fatalf("Project(%s): rows=%d rejected=%+v", display, len(proj.Rows), proj.Rejected)
		}
		for _, row := range proj.Rows {
			for _, v := range []float64{row.OneMInputTokenPriceConverted, row.OneMOutputPriceConverted, row.BlendPrice} {
				if math.IsInf(v, 0) || math.IsNaN(v) {
					t.Errorf("Project(%s): row %s has non-finite value %v", display, row.Model, v)
				}
			}
		}
	}
}

func TestNormalizer_Compare_EqualAcrossCurrencies(t *testing.T) {
	n := NewNormalizer(sevenTable(t), DefaultWeights)

	a := PriceRecord{Provider: "openai", Model: "a", OneMInputTokenPrice: 10, OneMOutputPrice: 10, SourceCurrency: currency.USD}
	b := PriceRecord{Provider: "moonshot", Model: "b", OneMInputTokenPrice: 70, OneMOutputPrice: 70, SourceCurrency: currency.CNY}

	got, err := n.Compare(a, b, FieldBlend, currency.CNY)
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if got != 0 {
		t.Errorf("Compare() = %d, want 0", got)
	}
}

func TestNormalizer_Compare(t *testing.T) {
	n := NewNormalizer(sevenTable(t), DefaultWeights)

	cheapInput := PriceRecord{Provider: "p", Model: "cheap-in", OneMInputTokenPrice: 1, OneMOutputPrice: 20, SourceCurrency: currency.USD}
	cheapOutput := PriceRecord{Provider: "p", Model: "cheap-out", OneMInputTokenPrice: 35, OneMOutputPrice: 35, SourceCurrency: currency.CNY}

	tests := []struct {
		name  string
		field Field
		want  int
	}{
		// cheapInput in CNY: in 7, out 140, blend 161
		// cheapOutput in CNY: in 35, out 35, blend 140
		{"input", FieldInput, -1},
		{"output", FieldOutput, 1},
		{"blend", FieldBlend, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := n.Compare(cheapInput, cheapOutput, tt.field, currency.CNY)
			if err != nil {
				t.Fatalf("Compare() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Compare() = %d, want %d", got, tt.want)
			}
			rev, err := n.Compare(cheapOutput, cheapInput, tt.field, currency.CNY)
			if err != nil {
				t.Fatalf("Compare() error = %v", err)
			}
			if rev != -tt.want {
				t.Errorf("reverse Compare() = %d, want %d", rev, -tt.want)
			}
		})
	}

	if _, err := n.Compare(cheapInput, cheapOutput, "latency", currency.CNY); !errors.Is(err, ErrUnknownField) {
		t.Errorf("unknown field error = %v, want ErrUnknownField", err)
	}
}

func TestNormalizer_Compare_ConsistentAcrossDisplayCurrencies(t *testing.T) {
	// At 8 CNY per USD, b is 8.75 USD against a's 10 USD.
	table, err := currency.NewTable(currency.USD, []currency.Rate{
		{Code: currency.USD, PerReference: 1},
		{Code: currency.CNY, PerReference: 8},
	})
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	n := NewNormalizer(table, DefaultWeights)

	a := PriceRecord{Provider: "p", Model: "a", OneMInputTokenPrice: 10, OneMOutputPrice: 10, SourceCurrency: currency.USD}
	b := PriceRecord{Provider: "q", Model: "b", OneMInputTokenPrice: 70, OneMOutputPrice: 70, SourceCurrency: currency.CNY}

	for _, display := range []currency.Code{currency.USD, currency.CNY} {
		got, err := n.Compare(a, b, FieldBlend, display)
		if err != nil {
			t.Fatalf("Compare() error = %v", err)
		}
		if got != 1 {
			t.Errorf("Compare() in %s = %d, want 1", display, got)
		}
	}
}

func TestNormalizer_Project(t *testing.T) {
	n := NewNormalizer(sevenTable(t), DefaultWeights)

	records := []PriceRecord{
		{Provider: "openai", Model: "gpt-4o", OneMInputTokenPrice: 5, OneMOutputPrice: 15, SourceCurrency: currency.USD},
		{Provider: "broken", Model: "neg", OneMInputTokenPrice: -1, OneMOutputPrice: 1, SourceCurrency: currency.USD},
		{Provider: "deepseek", Model: "deepseek-chat", OneMInputTokenPrice: 1, OneMOutputPrice: 2, SourceCurrency: currency.CNY},
		{Provider: "euro", Model: "mistral", OneMInputTokenPrice: 1, OneMOutputPrice: 2, SourceCurrency: "EUR"},
	}

	proj, err := n.Project(records, currency.USD)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	if proj.Currency != currency.USD {
		t.Errorf("Currency = %s, want USD", proj.Currency)
	}
	if len(proj.Rows) != 2 {
		t.Fatalf("len(Rows) = %d, want 2", len(proj.Rows))
	}
	if proj.Rows[0].Model != "gpt-4o" || proj.Rows[1].Model != "deepseek-chat" {
		t.Errorf("Rows out of input order: %s, %s", proj.Rows[0].Model, proj.Rows[1].Model)
	}
	if len(proj.Rejected) != 2 {
		t.Fatalf("len(Rejected) = %d, want 2", len(proj.Rejected))
	}
	if !errors.Is(proj.Rejected[0].Err, ErrMalformedRecord) {
		t.Errorf("Rejected[0] = %v, want ErrMalformedRecord", proj.Rejected[0].Err)
	}
	if !errors.Is(proj.Rejected[1].Err, currency.ErrUnsupportedCurrency) {
		t.Errorf("Rejected[1] = %v, want ErrUnsupportedCurrency", proj.Rejected[1].Err)
	}

	if _, err := n.Project(records, "EUR"); !errors.Is(err, currency.ErrUnsupportedCurrency) {
		t.Errorf("Project(EUR) error = %v, want ErrUnsupportedCurrency", err)
	}
}

func TestNormalizer_Project_CurrencySwitchRestores(t *testing.T) {
	n := NewNormalizer(currency.DefaultTable(), DefaultWeights)

	records := []PriceRecord{
		{Provider: "openai", Model: "gpt-4o", OneMInputTokenPrice: 2.5, OneMOutputPrice: 10, SourceCurrency: currency.USD},
		{Provider: "zhipu", Model: "glm-4", OneMInputTokenPrice: 100, OneMOutputPrice: 100, SourceCurrency: currency.CNY},
		{Provider: "anthropic", Model: "claude-3-haiku", OneMInputTokenPrice: 0.25, OneMOutputPrice: 1.25, SourceCurrency: currency.USD},
	}

	first, err := n.Project(records, currency.USD)
	if err != nil {
		t.Fatalf("Project(USD) error = %v", err)
	}
	if _, err := n.Project(records, currency.CNY); err != nil {
		t.Fatalf("Project(CNY) error = %v", err)
	}
	again, err := n.Project(records, currency.USD)
	if err != nil {
		t.Fatalf("Project(USD) error = %v", err)
	}

	for i := range first.Rows {
		a, b := first.Rows[i].BlendPrice, again.Rows[i].BlendPrice
		if math.Abs(a-b) > 1e-9*math.Max(1, math.Abs(a)) {
			t.Errorf("row %d blend changed after currency round trip: %v -> %v", i, a, b)
		}
	}
}

func TestCompareDisplay_MixedCurrencies(t *testing.T) {
	a := DisplayRecord{DisplayCurrency: currency.USD}
	b := DisplayRecord{DisplayCurrency: currency.CNY}
	if _, err := CompareDisplay(a, b, FieldBlend); err == nil {
		t.Error("expected error comparing rows in different currencies")
	}
}
