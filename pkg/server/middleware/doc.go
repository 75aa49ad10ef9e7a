// Package middleware provides HTTP middleware for cross-cutting concerns.
//
// # Middleware Chain
//
// The server applies middleware in this order (outermost first):
//
//	Recovery -> RequestID -> Logging -> Metrics -> router
//
// Logging and Metrics are registered with the gorilla/mux router's Use, so
// they run after route matching and label requests with the route template
// ("/api/prices") rather than the raw path.
package middleware
