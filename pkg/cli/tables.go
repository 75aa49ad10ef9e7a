package cli

import (
	"encoding/json"
	"strconv"

	"llmprice-hq/pricebook/pkg/currency"
	"llmprice-hq/pricebook/pkg/i18n"
	"llmprice-hq/pricebook/pkg/pricing"
)

// PriceTable is a projection prepared for terminal output.
type PriceTable struct {
	Projection pricing.Projection
	Dict       *i18n.Dictionary
	Locale     string
}

// NewPriceTable wraps proj with the dictionary used for headers and
// provider names.
func NewPriceTable(proj pricing.Projection, dict *i18n.Dictionary, locale string) *PriceTable {
	return &PriceTable{Projection: proj, Dict: dict, Locale: locale}
}

// Header implements Tabular.
func (t *PriceTable) Header() []string {
	return []string{
		t.Dict.T("MODEL_NAME"),
		t.Dict.T("PROVIDER"),
		t.Dict.T("1 M INPUT TOKENS"),
		t.Dict.T("1 M OUTPUT TOKENS"),
		t.Dict.T("1 M BLEND PRICE"),
	}
}

// NumericColumns implements Tabular.
func (t *PriceTable) NumericColumns() []int {
	return []int{2, 3, 4}
}

// Rows implements Tabular.
func (t *PriceTable) Rows(raw bool) [][]string {
	rows := make([][]string, 0, len(t.Projection.Rows))
	for _, r := range t.Projection.Rows {
		if raw {
			rows = append(rows, []string{
				r.Model,
				r.Provider,
				formatFloat(r.OneMInputTokenPriceConverted),
				formatFloat(r.OneMOutputPriceConverted),
				formatFloat(r.BlendPrice),
			})
			continue
		}
		rows = append(rows, []string{
			r.Model,
			t.Dict.ProviderName(r.Provider),
			currency.Format(r.OneMInputTokenPriceConverted, r.DisplayCurrency, t.Locale),
			currency.Format(r.OneMOutputPriceConverted, r.DisplayCurrency, t.Locale),
			currency.Format(r.BlendPrice, r.DisplayCurrency, t.Locale),
		})
	}
	return rows
}

type priceTableJSON struct {
	Currency currency.Code           `json:"currency"`
	Rows     []pricing.DisplayRecord `json:"rows"`
	Rejected []rejectionJSON         `json:"rejected"`
}

type rejectionJSON struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Reason   string `json:"reason"`
	Message  string `json:"message"`
}

// MarshalJSON emits the converted rows and the rejected records.
func (t *PriceTable) MarshalJSON() ([]byte, error) {
	out := priceTableJSON{
		Currency: t.Projection.Currency,
		Rows:     t.Projection.Rows,
		Rejected: make([]rejectionJSON, 0, len(t.Projection.Rejected)),
	}
	if out.Rows == nil {
		out.Rows = []pricing.DisplayRecord{}
	}
	for _, rej := range t.Projection.Rejected {
		out.Rejected = append(out.Rejected, rejectionJSON{
			Provider: rej.Record.Provider,
			Model:    rej.Record.Model,
			Reason:   pricing.RejectReason(rej.Err),
			Message:  rej.Err.Error(),
		})
	}
	return json.Marshal(out)
}

// CurrencyTable lists a conversion table in declaration order.
type CurrencyTable struct {
	Table   *currency.Table
	Default currency.Code
}

// Header implements Tabular.
func (t *CurrencyTable) Header() []string {
	return []string{"CODE", "PER " + string(t.Table.Reference()), "DEFAULT"}
}

// NumericColumns implements Tabular.
func (t *CurrencyTable) NumericColumns() []int {
	return []int{1}
}

// Rows implements Tabular.
func (t *CurrencyTable) Rows(raw bool) [][]string {
	codes := t.Table.Codes()
	rows := make([][]string, 0, len(codes))
	for _, code := range codes {
		rate, _ := t.Table.Rate(code)
		def := ""
		if code == t.Default {
			def = "*"
			if raw {
				def = "true"
			}
		} else if raw {
			def = "false"
		}
		rows = append(rows, []string{string(code), formatFloat(rate), def})
	}
	return rows
}

type currencyJSON struct {
	Code         currency.Code `json:"code"`
	PerReference float64       `json:"perReference"`
	Default      bool          `json:"default"`
}

// MarshalJSON emits the currencies in declaration order.
func (t *CurrencyTable) MarshalJSON() ([]byte, error) {
	codes := t.Table.Codes()
	out := make([]currencyJSON, 0, len(codes))
	for _, code := range codes {
		rate, _ := t.Table.Rate(code)
		out = append(out, currencyJSON{Code: code, PerReference: rate, Default: code == t.Default})
	}
	return json.Marshal(out)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
