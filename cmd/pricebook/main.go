// pricebook serves and prints a catalogue of LLM API prices.
//
// Prices are read from one JSON file per provider, converted into a single
// display currency with a fixed conversion table, and ranked by a blended
// per-million-token price.
//
// Usage:
//
//	# Serve the HTML table and JSON API
//	pricebook serve
//
//	# Serve with a custom configuration file
//	pricebook serve --config /etc/pricebook/pricebook.yaml
//
//	# Print the table in CNY, most expensive first
//	pricebook table --currency CNY --order desc
//
//	# Check the catalogue for malformed rows
//	pricebook validate --data ./data
//
//	# Show version information
//	pricebook version
package main

func main() {
	Execute()
}
