// Package server provides pricebook's HTTP surface.
//
// It ties together the catalogue, the pricing normaliser and the i18n
// dictionaries behind a gorilla/mux router, and manages the server
// lifecycle including graceful shutdown on SIGTERM or SIGINT.
//
// # Basic Usage
//
//	router := server.NewRouter(server.Options{
//	    Config:     cfg,
//	    Catalogue:  store,
//	    Normalizer: normalizer,
//	    Bundle:     bundle,
//	    Metrics:    collector,
//	    Logger:     logger.Slog(),
//	})
//
//	srv := server.NewServer(&cfg.Server, router, logger.Slog())
//	if err := srv.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Routes
//
//   - GET /, GET /{lang}: HTML price table
//   - POST /preferences/currency: store the display currency in a cookie
//   - GET /api/prices: JSON price table
//   - GET /api/currencies: supported currencies in selector order
//   - GET /api/locales: supported UI locales
//   - GET /healthz, GET /readyz, GET /version: health checks and build info
//   - GET /metrics: Prometheus metrics (when enabled)
//
// # Display Currency
//
// The display currency is the stored preference cookie if it names a
// supported currency, else the ?currency= query value if supported, else
// the configured default.
package server
