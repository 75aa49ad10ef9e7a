package pricing

import (
	"cmp"
	"fmt"

	"llmprice-hq/pricebook/pkg/currency"
)

// Normalizer converts price records into a display currency. It holds no
// mutable state and is safe for concurrent use.
type Normalizer struct {
	table   *currency.Table
	weights Weights
}

// NewNormalizer creates a normalizer over the given conversion table.
func NewNormalizer(table *currency.Table, weights Weights) *Normalizer {
	return &Normalizer{
		table:   table,
		weights: weights,
	}
}

// Table returns the conversion table.
func (n *Normalizer) Table() *currency.Table {
	return n.table
}

// Weights returns the blend weights.
func (n *Normalizer) Weights() Weights {
	return n.weights
}

// Display validates r and converts it into display.
func (n *Normalizer) Display(r PriceRecord, display currency.Code) (DisplayRecord, error) {
	if err := r.Validate(); err != nil {
		return DisplayRecord{}, err
	}

	input, err := n.table.Convert(r.OneMInputTokenPrice, r.SourceCurrency, display)
	if err != nil {
		return DisplayRecord{}, n.unsupported(r, err)
	}
	output, err := n.table.Convert(r.OneMOutputPrice, r.SourceCurrency, display)
	if err != nil {
		return DisplayRecord{}, n.unsupported(r, err)
	}

	blend := n.weights.Blend(input, output)

	// Finite prices can still overflow once scaled by a rate or weight.
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"converted input price", input},
		{"converted output price", output},
		{"blend price", blend},
	} {
		if err := checkPrice(v.value); err != nil {
			return DisplayRecord{}, malformed(r, "%s in %s %v", v.name, display, err)
		}
	}

	return DisplayRecord{
		PriceRecord:                  r,
		DisplayCurrency:              display,
		OneMInputTokenPriceConverted: input,
		OneMOutputPriceConverted:     output,
		BlendPrice:                   blend,
	}, nil
}

func (n *Normalizer) unsupported(r PriceRecord, err error) error {
	return &RecordError{
		Provider: r.Provider,
		Model:    r.Model,
		Reason:   err.Error(),
		Err:      err,
	}
}

// Project normalises every record into display. Records that fail are
// left out of Rows and listed in Rejected; Rows keeps input order. An
// unsupported display currency fails the whole projection.
func (n *Normalizer) Project(records []PriceRecord, display currency.Code) (Projection, error) {
	if !n.table.Supports(display) {
		return Projection{}, fmt.Errorf("display currency: %w", &currency.UnsupportedError{Code: display})
	}

	proj := Projection{
		Currency: display,
		Rows:     make([]DisplayRecord, 0, len(records)),
	}
	for _, r := range records {
		d, err := n.Display(r, display)
		if err != nil {
			proj.Rejected = append(proj.Rejected, Rejection{Record: r, Err: err})
			continue
		}
		proj.Rows = append(proj.Rows, d)
	}
	return proj, nil
}

// Compare converts a and b into display and compares the selected field.
// It returns -1, 0 or 1.
func (n *Normalizer) Compare(a, b PriceRecord, field Field, display currency.Code) (int, error) {
	da, err := n.Display(a, display)
	if err != nil {
		return 0, err
	}
	db, err := n.Display(b, display)
	if err != nil {
		return 0, err
	}
	return CompareDisplay(da, db, field)
}

// CompareDisplay compares two already converted rows on field. Both rows
// must share a display currency.
func CompareDisplay(a, b DisplayRecord, field Field) (int, error) {
	if a.DisplayCurrency != b.DisplayCurrency {
		return 0, fmt.Errorf("cannot compare rows in %s and %s", a.DisplayCurrency, b.DisplayCurrency)
	}
	va, err := a.Value(field)
	if err != nil {
		return 0, err
	}
	vb, err := b.Value(field)
	if err != nil {
		return 0, err
	}
	return cmp.Compare(va, vb), nil
}

// Value returns the converted price for field.
func (d DisplayRecord) Value(field Field) (float64, error) {
	switch field {
	case FieldInput:
		return d.OneMInputTokenPriceConverted, nil
	case FieldOutput:
		return d.OneMOutputPriceConverted, nil
	case FieldBlend:
		return d.BlendPrice, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, string(field))
}
