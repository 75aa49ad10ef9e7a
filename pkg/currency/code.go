package currency

import "strings"

// Code is an ISO 4217 currency code such as "USD".
type Code string

// Codes known out of the box.
const (
	USD Code = "USD"
	CNY Code = "CNY"
)

// String returns the code as a string.
func (c Code) String() string {
	return string(c)
}

// Parse normalises user input into a Code. It trims whitespace and
// upper-cases the value; it does not check support, use Table.Supports.
func Parse(s string) Code {
	return Code(strings.ToUpper(strings.TrimSpace(s)))
}
