// Package rest exposes dictionary lookups and health probes over HTTP.
package rest

import "net/http"

// NewRouter registers the lookup and health routes.
func NewRouter(lookup *LookupHandler, health *HealthHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /lookup", lookup.Lookup)
	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)
	return mux
}
