package currency

import (
	xcurrency "golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Format renders amount for display in the given locale, e.g. "$10.50" or
// "CN¥72.00". Codes unknown to ISO 4217 fall back to "10.50 XYZ".
func Format(amount float64, code Code, locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	p := message.NewPrinter(tag)

	unit, err := xcurrency.ParseISO(string(code))
	if err != nil {
		return p.Sprintf("%.2f %s", amount, string(code))
	}
	return p.Sprint(xcurrency.Symbol(unit)) + p.Sprintf("%.2f", amount)
}
