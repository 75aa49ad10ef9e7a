// Package currency provides the static conversion table used to normalise
// LLM prices quoted in different currencies into one display currency.
//
// A Table is an explicit value rather than a package-level global: callers
// construct one from configuration (or use DefaultTable) and pass it to
// whatever needs to convert amounts. Rates are fixed for the lifetime of the
// table; there is no live rate fetching.
//
// # Rates
//
// Every supported code carries a single "per reference" rate: how many units
// of that currency buy one unit of the reference currency. Converting between
// two non-reference currencies goes through the reference:
//
//	amount / rate[from] * rate[to]
//
// Converting a currency to itself always returns the amount unchanged.
//
// # Unsupported currencies
//
// Convert never guesses. A code that is not in the table produces an error
// that wraps ErrUnsupportedCurrency:
//
//	_, err := table.Convert(10, currency.USD, "EUR")
//	if errors.Is(err, currency.ErrUnsupportedCurrency) {
//		// flag the row
//	}
//
// # Display currency selection
//
// Resolve implements the selection order used by the UI layers: a stored
// preference first, then the currency query parameter, then the fallback.
package currency
