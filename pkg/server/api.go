package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"llmprice-hq/pricebook/pkg/catalogue"
	"llmprice-hq/pricebook/pkg/currency"
	"llmprice-hq/pricebook/pkg/i18n"
	"llmprice-hq/pricebook/pkg/pricing"
	"llmprice-hq/pricebook/pkg/server/middleware"
	"llmprice-hq/pricebook/pkg/telemetry/logging"
)

// PricesResponse is the body of GET /api/prices.
type PricesResponse struct {
	Currency currency.Code           `json:"currency"`
	Sort     pricing.Field           `json:"sort"`
	Order    pricing.Order           `json:"order"`
	Model    string                  `json:"model,omitempty"`
	Rows     []pricing.DisplayRecord `json:"rows"`
	Rejected []RejectedRow           `json:"rejected"`
	LoadedAt time.Time               `json:"loadedAt"`
}

// RejectedRow reports a catalogue record left out of the table.
type RejectedRow struct {
	Provider string        `json:"provider"`
	Model    string        `json:"model"`
	Currency currency.Code `json:"currency"`
	Reason   string        `json:"reason"`
	Message  string        `json:"message"`
}

// CurrencyResponse is one entry of GET /api/currencies.
type CurrencyResponse struct {
	Code         currency.Code `json:"code"`
	PerReference float64       `json:"perReference"`
	Reference    bool          `json:"reference"`
	Default      bool          `json:"default"`
}

func rejectedRows(rejected []pricing.Rejection) []RejectedRow {
	rows := make([]RejectedRow, 0, len(rejected))
	for _, rej := range rejected {
		rows = append(rows, RejectedRow{
			Provider: rej.Record.Provider,
			Model:    rej.Record.Model,
			Currency: rej.Record.SourceCurrency,
			Reason:   pricing.RejectReason(rej.Err),
			Message:  rej.Err.Error(),
		})
	}
	return rows
}

// project runs q against the current snapshot and records metrics.
func (h *handlers) project(q pricing.Query) (pricing.Projection, *catalogue.Snapshot, error) {
	snap, err := h.catalogue.Snapshot()
	if err != nil {
		return pricing.Projection{}, nil, err
	}
	proj, err := h.normalizer.Run(snap.Records, q)
	if err != nil {
		return pricing.Projection{}, nil, err
	}
	if h.metrics != nil {
		h.metrics.RecordProjection(proj)
	}
	return proj, snap, nil
}

func (h *handlers) handlePrices(w http.ResponseWriter, r *http.Request) {
	q, err := h.parseQuery(r)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	ctx := logging.WithCurrency(r.Context(), string(q.Currency))
	proj, snap, err := h.project(q)
	switch {
	case errors.Is(err, catalogue.ErrNotLoaded):
		middleware.WriteError(w, http.StatusServiceUnavailable, "catalogue_unavailable", err.Error())
		return
	case err != nil:
		h.logger.ErrorContext(ctx, "projection failed", "error", err)
		middleware.WriteError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	h.logger.DebugContext(ctx, "prices projected", "rows", len(proj.Rows), "rejected", len(proj.Rejected))

	err = writeJSON(w, http.StatusOK, PricesResponse{
		Currency: proj.Currency,
		Sort:     q.Field,
		Order:    q.Order,
		Model:    q.Model,
		Rows:     proj.Rows,
		Rejected: rejectedRows(proj.Rejected),
		LoadedAt: snap.LoadedAt,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to write prices", "error", err)
	}
}

func (h *handlers) handleCurrencies(w http.ResponseWriter, r *http.Request) {
	table := h.normalizer.Table()
	def := h.cfg.Currency.DefaultCode()

	codes := table.Codes()
	out := make([]CurrencyResponse, 0, len(codes))
	for _, code := range codes {
		rate, _ := table.Rate(code)
		out = append(out, CurrencyResponse{
			Code:         code,
			PerReference: rate,
			Reference:    code == table.Reference(),
			Default:      code == def,
		})
	}
	_ = writeJSON(w, http.StatusOK, out)
}

func (h *handlers) handleLocales(w http.ResponseWriter, r *http.Request) {
	_ = writeJSON(w, http.StatusOK, i18n.Locales)
}

// writeJSON encodes body before writing the status so an encoding failure
// becomes a 500 instead of a truncated 200.
func writeJSON(w http.ResponseWriter, status int, body any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		middleware.WriteError(w, http.StatusInternalServerError, "server_error", "failed to encode response")
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
