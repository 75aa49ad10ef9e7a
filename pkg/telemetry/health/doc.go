// Package health provides liveness, readiness and version endpoints.
//
// Readiness aggregates named checks registered on a Checker; the server
// registers CatalogueCheck so that /readyz reports 503 until the first
// catalogue snapshot is available.
//
//	checker := health.New(5 * time.Second)
//	checker.RegisterCheck("catalogue", health.CatalogueCheck(store))
//	router.Handle("/readyz", checker.ReadinessHandler())
package health
