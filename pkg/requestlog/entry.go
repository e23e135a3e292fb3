package requestlog

import "time"

// MaxBodyCapture is the number of request body bytes kept on an entry.
const MaxBodyCapture = 10 * 1024

// Entry captures one request/response exchange.
type Entry struct {
	// ID is a unique identifier for the log entry.
	ID string `json:"id"`

	// Timestamp is when the request was received.
	Timestamp time.Time `json:"timestamp"`

	Method      string              `json:"method"`
	Path        string              `json:"path"`
	QueryString string              `json:"queryString,omitempty"`
	Headers     map[string][]string `json:"headers,omitempty"`

	// Body is the request body, truncated to MaxBodyCapture bytes.
	Body string `json:"body,omitempty"`

	// BodySize is the original body size in bytes.
	BodySize int `json:"bodySize"`

	RemoteAddr string `json:"remoteAddr"`

	// Route is the route pattern that served the request, e.g. "GET /json".
	Route string `json:"route,omitempty"`

	ResponseStatus int `json:"responseStatus"`
	DurationMs     int `json:"durationMs"`
}
