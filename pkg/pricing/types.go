package pricing

import (
	"fmt"
	"math"
	"strings"

	"llmprice-hq/pricebook/pkg/currency"
)

// PriceRecord is one model's raw price from a single provider. Prices are
// per one million tokens in SourceCurrency.
type PriceRecord struct {
	Provider            string        `json:"provider"`
	Model               string        `json:"model"`
	OneMInputTokenPrice float64       `json:"oneMInputTokenPrice"`
	OneMOutputPrice     float64       `json:"oneMOutputPrice"`
	SourceCurrency      currency.Code `json:"currency"`
}

// Validate checks the record's prices and names.
func (r PriceRecord) Validate() error {
	if strings.TrimSpace(r.Provider) == "" {
		return malformed(r, "provider is empty")
	}
	if strings.TrimSpace(r.Model) == "" {
		return malformed(r, "model is empty")
	}
	if err := checkPrice(r.OneMInputTokenPrice); err != nil {
		return malformed(r, "input price %v", err)
	}
	if err := checkPrice(r.OneMOutputPrice); err != nil {
		return malformed(r, "output price %v", err)
	}
	return nil
}

func checkPrice(p float64) error {
	switch {
	case math.IsNaN(p):
		return fmt.Errorf("is NaN")
	case math.IsInf(p, 0):
		return fmt.Errorf("is infinite")
	case p < 0:
		return fmt.Errorf("is negative (%v)", p)
	}
	return nil
}

// DisplayRecord is a PriceRecord with its prices converted to a display
// currency. It is derived on demand and never stored.
type DisplayRecord struct {
	PriceRecord

	DisplayCurrency              currency.Code `json:"displayCurrency"`
	OneMInputTokenPriceConverted float64       `json:"oneMInputTokenPriceConverted"`
	OneMOutputPriceConverted     float64       `json:"oneMOutputPriceConverted"`
	BlendPrice                   float64       `json:"blendPrice"`
}

// Weights sets how input and output prices contribute to the blend.
type Weights struct {
	Input  float64 `yaml:"input_weight" json:"input"`
	Output float64 `yaml:"output_weight" json:"output"`
}

// DefaultWeights assumes three input tokens per output token.
var DefaultWeights = Weights{Input: 3, Output: 1}

// Blend combines an input and output price.
func (w Weights) Blend(input, output float64) float64 {
	return input*w.Input + output*w.Output
}

// Validate rejects negative, non-finite, or all-zero weights.
func (w Weights) Validate() error {
	if checkPrice(w.Input) != nil || checkPrice(w.Output) != nil {
		return fmt.Errorf("blend weights must be finite and non-negative, got %v:%v", w.Input, w.Output)
	}
	if w.Input == 0 && w.Output == 0 {
		return fmt.Errorf("blend weights cannot both be zero")
	}
	return nil
}

// BlendPrice returns input*3 + output using DefaultWeights.
func BlendPrice(input, output float64) float64 {
	return DefaultWeights.Blend(input, output)
}

// Field selects the price compared when sorting.
type Field string

const (
	FieldInput  Field = "input"
	FieldOutput Field = "output"
	FieldBlend  Field = "blend"
)

// ParseField accepts the field names used in query strings and flags,
// including the catalogue column names.
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "blend", "blendprice":
		return FieldBlend, nil
	case "input", "oneminputtokenprice":
		return FieldInput, nil
	case "output", "onemoutputprice":
		return FieldOutput, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// Order is a sort direction.
type Order string

const (
	Ascending  Order = "asc"
	Descending Order = "desc"
)

// ParseOrder parses "asc" or "desc"; empty means ascending.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc":
		return Ascending, nil
	case "desc":
		return Descending, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOrder, s)
}

// Rejection is a record excluded from a projection.
type Rejection struct {
	Record PriceRecord
	Err    error
}

// Projection is the result of normalising a catalogue into one currency.
type Projection struct {
	Currency currency.Code
	Rows     []DisplayRecord
	Rejected []Rejection
}
