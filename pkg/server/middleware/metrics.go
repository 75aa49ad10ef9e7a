package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// RequestRecorder receives one call per served request.
type RequestRecorder interface {
	RecordHTTPRequest(route, method string, status int, duration time.Duration)
}

// MetricsMiddleware records request counts and durations per route template.
func MetricsMiddleware(recorder RequestRecorder) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := newResponseWriter(w)

			next.ServeHTTP(rw, r)

			recorder.RecordHTTPRequest(RouteTemplate(r), r.Method, rw.statusCode, time.Since(start))
		})
	}
}
