package pricing

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Sort orders rows in place by field. The sort is stable in both
// directions: rows with equal values keep their relative input order.
func Sort(rows []DisplayRecord, field Field, order Order) error {
	key, err := keyFunc(field)
	if err != nil {
		return err
	}
	if order != Ascending && order != Descending {
		return fmt.Errorf("%w: %q", ErrUnknownOrder, string(order))
	}

	slices.SortStableFunc(rows, func(a, b DisplayRecord) int {
		if order == Descending {
			return cmp.Compare(key(b), key(a))
		}
		return cmp.Compare(key(a), key(b))
	})
	return nil
}

func keyFunc(field Field) (func(DisplayRecord) float64, error) {
	switch field {
	case FieldInput:
		return func(d DisplayRecord) float64 { return d.OneMInputTokenPriceConverted }, nil
	case FieldOutput:
		return func(d DisplayRecord) float64 { return d.OneMOutputPriceConverted }, nil
	case FieldBlend:
		return func(d DisplayRecord) float64 { return d.BlendPrice }, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownField, string(field))
}

// Filter returns the rows whose model name contains query, ignoring case.
// An empty query returns rows unchanged.
func Filter(rows []DisplayRecord, query string) []DisplayRecord {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return rows
	}
	out := make([]DisplayRecord, 0, len(rows))
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.Model), q) {
			out = append(out, r)
		}
	}
	return out
}
