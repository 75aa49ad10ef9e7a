package logging

import (
	"context"
	"log/slog"
)

// Context keys for common log fields.
type contextKey string

const (
	// RequestIDKey is the context key for request IDs.
	RequestIDKey contextKey = "request_id"

	// LocaleKey is the context key for the negotiated UI locale.
	LocaleKey contextKey = "locale"

	// CurrencyKey is the context key for the resolved display currency.
	CurrencyKey contextKey = "currency"
)

// WithRequestID adds a request ID to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID retrieves the request ID from the context.
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// WithLocale adds a locale code to the context.
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, LocaleKey, locale)
}

// GetLocale retrieves the locale code from the context.
func GetLocale(ctx context.Context) string {
	if locale, ok := ctx.Value(LocaleKey).(string); ok {
		return locale
	}
	return ""
}

// WithCurrency adds a display currency code to the context.
func WithCurrency(ctx context.Context, code string) context.Context {
	return context.WithValue(ctx, CurrencyKey, code)
}

// GetCurrency retrieves the display currency code from the context.
func GetCurrency(ctx context.Context) string {
	if code, ok := ctx.Value(CurrencyKey).(string); ok {
		return code
	}
	return ""
}

// contextAttrs extracts every non-empty known field from ctx.
func contextAttrs(ctx context.Context) []slog.Attr {
	var attrs []slog.Attr
	for _, key := range []contextKey{RequestIDKey, LocaleKey, CurrencyKey} {
		if v, ok := ctx.Value(key).(string); ok && v != "" {
			attrs = append(attrs, slog.String(string(key), v))
		}
	}
	return attrs
}
