package currency

// Resolve picks the display currency. A supported stored preference wins,
// then a supported query value, then fallback. Inputs are normalised with
// Parse before lookup.
func Resolve(t *Table, preference, query string, fallback Code) Code {
	if c := Parse(preference); c != "" && t.Supports(c) {
		return c
	}
	if c := Parse(query); c != "" && t.Supports(c) {
		return c
	}
	return fallback
}
