package admin

import "github.com/getmockd/wretchkit/pkg/requestlog"

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status      string `json:"status"`
	Uptime      int    `json:"uptime"`
	MockRunning bool   `json:"mockRunning"`
	MockURL     string `json:"mockUrl,omitempty"`
	Version     string `json:"version,omitempty"`
}

// RequestListResponse is returned by GET /requests.
type RequestListResponse struct {
	Requests []*requestlog.Entry `json:"requests"`
	Count    int                 `json:"count"`
	Total    int                 `json:"total"`
}

// ClearRequestsResponse is returned by DELETE /requests.
type ClearRequestsResponse struct {
	Message string `json:"message"`
	Cleared int    `json:"cleared"`
}
