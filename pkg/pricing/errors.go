package pricing

import (
	"errors"
	"fmt"

	"llmprice-hq/pricebook/pkg/currency"
)

var (
	// ErrMalformedRecord is returned for records with a negative or
	// non-finite price, or without a model or provider name.
	ErrMalformedRecord = errors.New("malformed price record")

	// ErrUnknownField is returned when parsing an unrecognised sort field.
	ErrUnknownField = errors.New("unknown price field")

	// ErrUnknownOrder is returned when parsing an unrecognised sort order.
	ErrUnknownOrder = errors.New("unknown sort order")
)

// RecordError describes why a specific record was rejected.
type RecordError struct {
	Provider string
	Model    string
	Reason   string
	Err      error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s/%s: %s", e.Provider, e.Model, e.Reason)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

func malformed(r PriceRecord, format string, args ...any) error {
	return &RecordError{
		Provider: r.Provider,
		Model:    r.Model,
		Reason:   fmt.Sprintf(format, args...),
		Err:      ErrMalformedRecord,
	}
}

// Rejection reasons reported by RejectReason.
const (
	ReasonMalformed           = "malformed"
	ReasonUnsupportedCurrency = "unsupported_currency"
	ReasonOther               = "other"
)

// RejectReason classifies a rejection error into a short stable label.
func RejectReason(err error) string {
	switch {
	case errors.Is(err, ErrMalformedRecord):
		return ReasonMalformed
	case errors.Is(err, currency.ErrUnsupportedCurrency):
		return ReasonUnsupportedCurrency
	default:
		return ReasonOther
	}
}
