package admin

import "net/http"

// registerRoutes sets up all API routes.
func (a *API) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", a.handleHealth)
	mux.Handle("GET /metrics", a.source.Metrics().Registry.Handler())

	// Request logging
	mux.HandleFunc("GET /requests", a.handleListRequests)
	mux.HandleFunc("GET /requests/{id}", a.handleGetRequest)
	mux.HandleFunc("DELETE /requests", a.handleClearRequests)
}
