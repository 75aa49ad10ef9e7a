package server

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"llmprice-hq/pricebook/pkg/catalogue"
	"llmprice-hq/pricebook/pkg/currency"
	"llmprice-hq/pricebook/pkg/i18n"
	"llmprice-hq/pricebook/pkg/pricing"
	"llmprice-hq/pricebook/pkg/server/middleware"
	"llmprice-hq/pricebook/pkg/telemetry/logging"
)

//go:embed templates/*.html
var templateFS embed.FS

type pageRenderer struct {
	tmpl *template.Template
}

func newPageRenderer() *pageRenderer {
	return &pageRenderer{
		tmpl: template.Must(template.ParseFS(templateFS, "templates/index.html")),
	}
}

// pageData is the view model of templates/index.html.
type pageData struct {
	Locale     string
	Dict       *i18n.Dictionary
	Locales    []localeLink
	Currency   currency.Code
	Currencies []currency.Code
	Query      pricing.Query
	Columns    []column
	Rows       []pageRow
	Rejected   int
	LoadedAt   time.Time
	Unloaded   bool
}

type localeLink struct {
	Code, Name, Href string
	Active           bool
}

type column struct {
	Label  string
	Hint   string
	Href   string
	Active bool
	Arrow  string
}

type pageRow struct {
	Model       string
	Provider    string
	Input       string
	Output      string
	Blend       string
	EditURL     string
	ProviderURL string
}

func (h *handlers) handlePage(w http.ResponseWriter, r *http.Request) {
	lang := mux.Vars(r)["lang"]
	if lang != "" && !i18n.IsSupported(lang) {
		middleware.WriteError(w, http.StatusNotFound, "not_found", "no route for "+r.URL.Path)
		return
	}
	locale := i18n.Negotiate(lang, r.Header.Get("Accept-Language"))
	q := h.defaultQuery(r)

	ctx := logging.WithLocale(r.Context(), locale)
	ctx = logging.WithCurrency(ctx, string(q.Currency))

	dict := h.bundle.Dictionary(locale)
	data := pageData{
		Locale:     locale,
		Dict:       dict,
		Currency:   q.Currency,
		Currencies: h.normalizer.Table().Codes(),
		Query:      q,
		Columns:    columns(dict, locale, q, h.normalizer.Weights()),
	}
	for _, l := range i18n.Locales {
		data.Locales = append(data.Locales, localeLink{
			Code:   l.Code,
			Name:   l.Name,
			Href:   pageURL(l.Code, q),
			Active: l.Code == locale,
		})
	}

	proj, snap, err := h.project(q)
	switch {
	case errors.Is(err, catalogue.ErrNotLoaded):
		data.Unloaded = true
	case err != nil:
		h.logger.ErrorContext(ctx, "projection failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	default:
		data.LoadedAt = snap.LoadedAt
		data.Rejected = len(proj.Rejected)
		for _, row := range proj.Rows {
			data.Rows = append(data.Rows, pageRow{
				Model:    row.Model,
				Provider: dict.ProviderName(row.Provider),
				Input:    currency.Format(row.OneMInputTokenPriceConverted, row.DisplayCurrency, locale),
				Output:   currency.Format(row.OneMOutputPriceConverted, row.DisplayCurrency, locale),
				Blend:    currency.Format(row.BlendPrice, row.DisplayCurrency, locale),

				EditURL:     h.cfg.Server.EditURL(row.Model),
				ProviderURL: h.cfg.Server.ProviderURL(row.Model),
			})
		}
	}

	var buf bytes.Buffer
	if err := h.page.tmpl.Execute(&buf, data); err != nil {
		h.logger.ErrorContext(ctx, "failed to render page", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.logger.DebugContext(ctx, "page rendered", "rows", len(data.Rows))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Language", locale)
	status := http.StatusOK
	if data.Unloaded {
		status = http.StatusServiceUnavailable
	}
	w.WriteHeader(status)
	if r.Method != http.MethodHead {
		_, _ = buf.WriteTo(w)
	}
}

// columns builds the sortable price headers. Clicking the active column
// flips its order; any other column starts ascending. The blend header
// shows its weighting.
func columns(dict *i18n.Dictionary, locale string, q pricing.Query, weights pricing.Weights) []column {
	defs := []struct {
		field pricing.Field
		key   string
	}{
		{pricing.FieldInput, "1 M INPUT TOKENS"},
		{pricing.FieldOutput, "1 M OUTPUT TOKENS"},
		{pricing.FieldBlend, "1 M BLEND PRICE"},
	}

	cols := make([]column, 0, len(defs))
	for _, d := range defs {
		next := q
		next.Field = d.field
		next.Order = pricing.Ascending

		col := column{Label: dict.T(d.key)}
		if d.field == pricing.FieldBlend {
			col.Hint = blendHint(weights)
		}
		if q.Field == d.field {
			col.Active = true
			col.Arrow = "↑"
			if q.Order == pricing.Ascending {
				next.Order = pricing.Descending
			} else {
				col.Arrow = "↓"
			}
		}
		col.Href = pageURL(locale, next)
		cols = append(cols, col)
	}
	return cols
}

// blendHint renders the blend formula, e.g. "(in*3 + out*1)".
func blendHint(w pricing.Weights) string {
	return fmt.Sprintf("(in*%s + out*%s)",
		strconv.FormatFloat(w.Input, 'g', -1, 64),
		strconv.FormatFloat(w.Output, 'g', -1, 64))
}
