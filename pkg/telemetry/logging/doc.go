// Package logging provides structured logging for pricebook.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - Structured logging with JSON and text formats
//   - Context-aware logging with request IDs, locale and display currency
//   - Configurable log levels (debug, info, warn, error)
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logger.Info("catalogue loaded", "records", 42)
//
//	ctx = logging.WithRequestID(ctx, "req-123")
//	ctx = logging.WithCurrency(ctx, "CNY")
//	logger.InfoContext(ctx, "prices rendered") // includes request_id and currency
//
// Packages that only need a *slog.Logger receive logger.Slog().
package logging
