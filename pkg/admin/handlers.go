package admin

import (
	"net/http"

	"github.com/getmockd/wretchkit/pkg/httputil"
)

// ErrMsgNotFound is returned when a resource is not found.
const ErrMsgNotFound = "Resource not found"

// handleHealth handles GET /health.
func (a *API) handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteOK(w, HealthResponse{
		Status:      "ok",
		Uptime:      a.Uptime(),
		MockRunning: a.source.IsRunning(),
		MockURL:     a.source.URL(),
		Version:     a.version,
	})
}

// handleListRequests handles GET /requests.
func (a *API) handleListRequests(w http.ResponseWriter, r *http.Request) {
	store := a.source.Requests()
	entries := store.List(requestFilter(r.URL.Query()))
	httputil.WriteOK(w, RequestListResponse{
		Requests: entries,
		Count:    len(entries),
		Total:    store.Count(),
	})
}

// handleGetRequest handles GET /requests/{id}.
func (a *API) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	entry := a.source.Requests().Get(r.PathValue("id"))
	if entry == nil {
		httputil.WriteError(w, http.StatusNotFound, "not_found", ErrMsgNotFound)
		return
	}
	httputil.WriteOK(w, entry)
}

// handleClearRequests handles DELETE /requests.
func (a *API) handleClearRequests(w http.ResponseWriter, _ *http.Request) {
	store := a.source.Requests()
	count := store.Count()
	store.Clear()
	a.log.Debug("request log cleared", "cleared", count)
	httputil.WriteOK(w, ClearRequestsResponse{
		Message: "Request logs cleared",
		Cleared: count,
	})
}
