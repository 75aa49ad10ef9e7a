package currency

import (
	"errors"
	"fmt"
)

// ErrUnsupportedCurrency is returned when a conversion names a currency the
// table does not carry.
var ErrUnsupportedCurrency = errors.New("unsupported currency")

// UnsupportedError reports which code was rejected.
type UnsupportedError struct {
	Code Code
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported currency %q", string(e.Code))
}

// Unwrap lets errors.Is match ErrUnsupportedCurrency.
func (e *UnsupportedError) Unwrap() error {
	return ErrUnsupportedCurrency
}
