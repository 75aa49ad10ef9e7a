package server

import (
	"net/http"

	"llmprice-hq/pricebook/pkg/currency"
	"llmprice-hq/pricebook/pkg/i18n"
	"llmprice-hq/pricebook/pkg/pricing"
	"llmprice-hq/pricebook/pkg/server/middleware"
)

// handleSetCurrency stores the chosen display currency in the preference
// cookie and redirects back to the page showing it.
func (h *handlers) handleSetCurrency(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	code := currency.Parse(r.PostForm.Get("currency"))
	if !h.normalizer.Table().Supports(code) {
		middleware.WriteError(w, http.StatusBadRequest, "unsupported_currency",
			(&currency.UnsupportedError{Code: code}).Error())
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.Server.PreferenceCookie,
		Value:    string(code),
		Path:     "/",
		MaxAge:   int(h.cfg.Server.PreferenceMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	locale := r.PostForm.Get("locale")
	if !i18n.IsSupported(locale) {
		locale = i18n.DefaultLocale
	}

	// Keep the rest of the view when the form carries it.
	field, err := pricing.ParseField(r.PostForm.Get("sort"))
	if err != nil {
		field = pricing.FieldBlend
	}
	order, err := pricing.ParseOrder(r.PostForm.Get("order"))
	if err != nil {
		order = pricing.Ascending
	}

	target := pageURL(locale, pricing.Query{
		Currency: code,
		Field:    field,
		Order:    order,
		Model:    r.PostForm.Get("model"),
	})
	http.Redirect(w, r, target, http.StatusSeeOther)
}
