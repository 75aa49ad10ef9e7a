package currency

import (
	"fmt"
	"math"
	"slices"
)

// DefaultCNYPerUSD is the fixed CNY rate used by DefaultTable.
const DefaultCNYPerUSD = 7.2

// Rate declares one supported currency and how many of its units buy one
// unit of the table's reference currency.
type Rate struct {
	Code         Code
	PerReference float64
}

// Table is an immutable conversion table. The zero value is not usable;
// build one with NewTable or DefaultTable.
type Table struct {
	reference Code
	codes     []Code
	rates     map[Code]float64
}

// NewTable builds a table from rates in declaration order. The reference
// currency must be declared with a rate of exactly 1, every rate must be
// finite and positive, and codes must not repeat.
func NewTable(reference Code, rates []Rate) (*Table, error) {
	if reference == "" {
		return nil, fmt.Errorf("reference currency cannot be empty")
	}
	if len(rates) == 0 {
		return nil, fmt.Errorf("at least one rate is required")
	}

	t := &Table{
		reference: reference,
		codes:     make([]Code, 0, len(rates)),
		rates:     make(map[Code]float64, len(rates)),
	}

	for i, r := range rates {
		if r.Code == "" {
			return nil, fmt.Errorf("rate %d: code cannot be empty", i)
		}
		if _, dup := t.rates[r.Code]; dup {
			return nil, fmt.Errorf("rate %d: duplicate currency %s", i, r.Code)
		}
		if math.IsNaN(r.PerReference) || math.IsInf(r.PerReference, 0) || r.PerReference <= 0 {
			return nil, fmt.Errorf("rate %d: %s rate must be a positive finite number, got %v", i, r.Code, r.PerReference)
		}
		t.codes = append(t.codes, r.Code)
		t.rates[r.Code] = r.PerReference
	}

	refRate, ok := t.rates[reference]
	if !ok {
		return nil, fmt.Errorf("reference currency %s is not declared", reference)
	}
	if refRate != 1 {
		return nil, fmt.Errorf("reference currency %s must have rate 1, got %v", reference, refRate)
	}

	return t, nil
}

// DefaultTable returns the built-in USD/CNY table.
func DefaultTable() *Table {
	t, err := NewTable(USD, []Rate{
		{Code: USD, PerReference: 1},
		{Code: CNY, PerReference: DefaultCNYPerUSD},
	})
	if err != nil {
		panic(err)
	}
	return t
}

// Reference returns the reference currency.
func (t *Table) Reference() Code {
	return t.reference
}

// Codes returns the supported currencies in declaration order. The returned
// slice is a copy.
func (t *Table) Codes() []Code {
	return slices.Clone(t.codes)
}

// Supports reports whether code is in the table.
func (t *Table) Supports(code Code) bool {
	_, ok := t.rates[code]
	return ok
}

// Rate returns the per-reference rate for code.
func (t *Table) Rate(code Code) (float64, error) {
	r, ok := t.rates[code]
	if !ok {
		return 0, &UnsupportedError{Code: code}
	}
	return r, nil
}

// Convert converts amount from one currency to another. Both codes must be
// in the table, otherwise the error wraps ErrUnsupportedCurrency. Identity
// conversions return amount unchanged.
func (t *Table) Convert(amount float64, from, to Code) (float64, error) {
	fromRate, err := t.Rate(from)
	if err != nil {
		return 0, err
	}
	toRate, err := t.Rate(to)
	if err != nil {
		return 0, err
	}
	if from == to {
		return amount, nil
	}
	return amount / fromRate * toRate, nil
}
