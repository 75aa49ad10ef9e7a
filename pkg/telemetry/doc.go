// Package telemetry groups pricebook's observability packages.
//
//   - logging: structured slog logging with request-scoped fields
//   - metrics: Prometheus metrics for the catalogue, projections and HTTP
//   - health: liveness, readiness and version endpoints
package telemetry
