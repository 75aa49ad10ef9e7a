package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"llmprice-hq/pricebook/pkg/catalogue"
	"llmprice-hq/pricebook/pkg/config"
	"llmprice-hq/pricebook/pkg/i18n"
	"llmprice-hq/pricebook/pkg/pricing"
	"llmprice-hq/pricebook/pkg/server/middleware"
	"llmprice-hq/pricebook/pkg/telemetry/health"
	"llmprice-hq/pricebook/pkg/telemetry/metrics"
)

// Catalogue is the read side of catalogue.Store.
type Catalogue interface {
	Snapshot() (*catalogue.Snapshot, error)
}

// BuildInfo identifies the running binary on /version.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildTime string
}

// Options are the dependencies of the HTTP handlers.
type Options struct {
	Config     *config.Config
	Catalogue  Catalogue
	Normalizer *pricing.Normalizer
	Bundle     *i18n.Bundle

	// Metrics is nil when metrics are disabled.
	Metrics *metrics.Collector

	// Health defaults to a checker with a catalogue readiness check.
	Health *health.Checker

	Logger *slog.Logger
	Build  BuildInfo
}

// handlers holds the dependencies shared by every route.
type handlers struct {
	cfg        *config.Config
	catalogue  Catalogue
	normalizer *pricing.Normalizer
	bundle     *i18n.Bundle
	metrics    *metrics.Collector
	logger     *slog.Logger
	page       *pageRenderer
}

// NewRouter builds the complete handler: routes plus middleware.
func NewRouter(opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	checker := opts.Health
	if checker == nil {
		checker = health.New(2 * time.Second)
		checker.RegisterCheck("catalogue", health.CatalogueCheck(opts.Catalogue))
	}

	h := &handlers{
		cfg:        opts.Config,
		catalogue:  opts.Catalogue,
		normalizer: opts.Normalizer,
		bundle:     opts.Bundle,
		metrics:    opts.Metrics,
		logger:     logger,
		page:       newPageRenderer(),
	}

	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware(logger))
	if opts.Metrics != nil {
		router.Use(middleware.MetricsMiddleware(opts.Metrics))
	}

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/prices", h.handlePrices).Methods(http.MethodGet)
	api.HandleFunc("/currencies", h.handleCurrencies).Methods(http.MethodGet)
	api.HandleFunc("/locales", h.handleLocales).Methods(http.MethodGet)

	router.HandleFunc("/healthz", checker.LivenessHandler()).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc("/readyz", checker.ReadinessHandler()).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc("/version", health.VersionHandler(opts.Build.Version, opts.Build.Commit, opts.Build.BuildTime)).
		Methods(http.MethodGet, http.MethodHead)

	if opts.Metrics != nil && opts.Config.Telemetry.Metrics.Enabled {
		router.Handle(opts.Config.Telemetry.Metrics.Path, opts.Metrics.Handler()).Methods(http.MethodGet)
	}

	router.HandleFunc("/preferences/currency", h.handleSetCurrency).Methods(http.MethodPost)
	router.HandleFunc("/", h.handlePage).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc("/{lang:[A-Za-z-]+}", h.handlePage).Methods(http.MethodGet, http.MethodHead)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, http.StatusNotFound, "not_found", "no route for "+r.URL.Path)
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", r.Method+" is not allowed on "+r.URL.Path)
	})

	var handler http.Handler = router
	handler = middleware.RequestIDMiddleware(handler)
	handler = middleware.RecoveryMiddleware(logger)(handler)
	return handler
}
