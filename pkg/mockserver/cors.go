package mockserver

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/getmockd/wretchkit/pkg/config"
)

// baseAllowHeaders are always accepted on preflight in addition to the
// configured headers.
var baseAllowHeaders = []string{"Accept", "Content-Type", "Origin", "X-Requested-With"}

// corsMiddleware wraps an http.Handler with CORS handling based on configuration.
type corsMiddleware struct {
	handler      http.Handler
	config       *config.CORSConfig
	allowHeaders string
}

// newCORSMiddleware creates the CORS middleware. A nil config uses
// config.DefaultCORSConfig.
func newCORSMiddleware(handler http.Handler, cfg *config.CORSConfig) *corsMiddleware {
	if cfg == nil {
		cfg = config.DefaultCORSConfig()
	}
	headers := slices.Clone(baseAllowHeaders)
	for _, h := range cfg.AllowHeaders {
		if !slices.ContainsFunc(headers, func(existing string) bool { return strings.EqualFold(existing, h) }) {
			headers = append(headers, h)
		}
	}
	return &corsMiddleware{
		handler:      handler,
		config:       cfg,
		allowHeaders: strings.Join(headers, ", "),
	}
}

// isPreflight reports whether r is a CORS preflight request. A bare OPTIONS
// request is not.
func isPreflight(r *http.Request) bool {
	return r.Method == http.MethodOptions &&
		r.Header.Get("Origin") != "" &&
		r.Header.Get("Access-Control-Request-Method") != ""
}

// ServeHTTP implements the http.Handler interface.
func (m *corsMiddleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !m.config.Enabled {
		m.handler.ServeHTTP(w, r)
		return
	}

	origin := r.Header.Get("Origin")
	allowOrigin := m.config.AllowOriginValue(origin)

	if allowOrigin != "" {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", allowOrigin)
		if allowOrigin != "*" {
			h.Add("Vary", "Origin")
		}
		if len(m.config.ExposeHeaders) > 0 {
			h.Set("Access-Control-Expose-Headers", strings.Join(m.config.ExposeHeaders, ", "))
		}
		if m.config.AllowCredentials {
			h.Set("Access-Control-Allow-Credentials", "true")
		}
	}

	if !isPreflight(r) {
		m.handler.ServeHTTP(w, r)
		return
	}

	if allowOrigin == "" {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	h := w.Header()
	methods := m.config.AllowMethods
	if len(methods) == 0 {
		methods = []string{r.Header.Get("Access-Control-Request-Method")}
	}
	h.Set("Access-Control-Allow-Methods", strings.Join(methods, ", "))
	h.Set("Access-Control-Allow-Headers", m.allowHeaders)
	if m.config.MaxAge > 0 {
		h.Set("Access-Control-Max-Age", strconv.Itoa(m.config.MaxAge))
	}
	w.WriteHeader(http.StatusNoContent)
}
