package mockserver

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/getmockd/wretchkit/pkg/metrics"
	"github.com/getmockd/wretchkit/pkg/requestlog"
)

// unmatchedRoute labels requests that never reached the route table, such
// as CORS preflights.
const unmatchedRoute = "none"

// statusRecorder wraps http.ResponseWriter to capture the status code.
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
}

// WriteHeader captures the status code and writes it to the underlying ResponseWriter.
func (w *statusRecorder) WriteHeader(code int) {
	if !w.written {
		w.statusCode = code
		w.written = true
	}
	w.ResponseWriter.WriteHeader(code)
}

// Write writes data to the underlying ResponseWriter.
func (w *statusRecorder) Write(b []byte) (int, error) {
	w.written = true
	return w.ResponseWriter.Write(b)
}

// Flush implements http.Flusher if the underlying ResponseWriter supports it.
func (w *statusRecorder) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *statusRecorder) Unwrap() http.ResponseWriter { return w.ResponseWriter }

// bodyCapture tees what the handler reads from the request body, keeping
// at most requestlog.MaxBodyCapture bytes.
type bodyCapture struct {
	io.ReadCloser
	buf  bytes.Buffer
	size int
}

func (b *bodyCapture) Read(p []byte) (int, error) {
	n, err := b.ReadCloser.Read(p)
	b.size += n
	if room := requestlog.MaxBodyCapture - b.buf.Len(); room > 0 && n > 0 {
		b.buf.Write(p[:min(n, room)])
	}
	return n, err
}

// timingAllowOrigin sets Timing-Allow-Origin: * on every response.
func timingAllowOrigin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Timing-Allow-Origin", "*")
		next.ServeHTTP(w, r)
	})
}

// recordMiddleware records metrics and request log entries and logs each
// exchange at debug level. Any of the sinks may be nil.
func recordMiddleware(next http.Handler, log *slog.Logger, m *metrics.MockMetrics, reqLog requestlog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := newStatusRecorder(w)

		var body *bodyCapture
		if reqLog != nil && r.Body != nil && r.Body != http.NoBody {
			body = &bodyCapture{ReadCloser: r.Body}
			r.Body = body
		}

		if m != nil {
			_ = m.InFlight.Add(1)
			defer func() { _ = m.InFlight.Add(-1) }()
		}

		next.ServeHTTP(rec, r)

		duration := time.Since(start)
		// ServeMux stores the matched pattern on the request it was handed.
		route := r.Pattern
		if route == "" {
			route = unmatchedRoute
		}

		if m != nil {
			_ = m.RequestsTotal.Inc(r.Method, route, strconv.Itoa(rec.statusCode))
			_ = m.RequestDuration.Observe(duration.Seconds(), r.Method, route)
		}

		if reqLog != nil {
			entry := &requestlog.Entry{
				Timestamp:      start,
				Method:         r.Method,
				Path:           r.URL.Path,
				QueryString:    r.URL.RawQuery,
				Headers:        r.Header.Clone(),
				RemoteAddr:     r.RemoteAddr,
				Route:          route,
				ResponseStatus: rec.statusCode,
				DurationMs:     int(duration.Milliseconds()),
			}
			if body != nil {
				entry.Body = body.buf.String()
				entry.BodySize = body.size
			}
			reqLog.Log(entry)
		}

		log.Debug("request served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.statusCode,
			"duration", duration,
		)
	})
}
