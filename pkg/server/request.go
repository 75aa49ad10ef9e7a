package server

import (
	"fmt"
	"net/http"
	"net/url"

	"llmprice-hq/pricebook/pkg/currency"
	"llmprice-hq/pricebook/pkg/pricing"
)

// displayCurrency applies the resolution policy to r: preference cookie,
// then ?currency=, then the configured default.
func (h *handlers) displayCurrency(r *http.Request) currency.Code {
	var preference string
	if c, err := r.Cookie(h.cfg.Server.PreferenceCookie); err == nil {
		preference = c.Value
	}
	return currency.Resolve(h.normalizer.Table(), preference, r.URL.Query().Get("currency"), h.cfg.Currency.DefaultCode())
}

// parseQuery builds a pricing.Query from r. Empty sort and order fall
// back to the configured defaults; unknown values are errors.
func (h *handlers) parseQuery(r *http.Request) (pricing.Query, error) {
	values := r.URL.Query()

	sort := values.Get("sort")
	if sort == "" {
		sort = h.cfg.Pricing.DefaultSort
	}
	field, err := pricing.ParseField(sort)
	if err != nil {
		return pricing.Query{}, err
	}

	order := values.Get("order")
	if order == "" {
		order = h.cfg.Pricing.DefaultOrder
	}
	ord, err := pricing.ParseOrder(order)
	if err != nil {
		return pricing.Query{}, err
	}

	return pricing.Query{
		Currency: h.displayCurrency(r),
		Field:    field,
		Order:    ord,
		Model:    values.Get("model"),
	}, nil
}

// defaultQuery is parseQuery with every invalid value replaced by its
// default, for the HTML page.
func (h *handlers) defaultQuery(r *http.Request) pricing.Query {
	q, err := h.parseQuery(r)
	if err == nil {
		return q
	}
	field, _ := pricing.ParseField(h.cfg.Pricing.DefaultSort)
	order, _ := pricing.ParseOrder(h.cfg.Pricing.DefaultOrder)
	return pricing.Query{
		Currency: h.displayCurrency(r),
		Field:    field,
		Order:    order,
		Model:    r.URL.Query().Get("model"),
	}
}

// pageURL renders the page path for locale with q encoded as query values.
func pageURL(locale string, q pricing.Query) string {
	values := url.Values{}
	values.Set("currency", string(q.Currency))
	values.Set("sort", string(q.Field))
	values.Set("order", string(q.Order))
	if q.Model != "" {
		values.Set("model", q.Model)
	}
	return fmt.Sprintf("/%s?%s", locale, values.Encode())
}
