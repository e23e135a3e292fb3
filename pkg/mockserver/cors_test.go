package mockserver

import (
	"net/http"
	"strings"
	"testing"

	"github.com/getmockd/wretchkit/pkg/config"
	"github.com/stretchr/testify/assert"
)

func TestCORSPreflight(t *testing.T) {
	t.Parallel()

	srv := New(testConfig())
	rec := serve(t, srv, http.MethodOptions, "/json", nil, map[string]string{
		"Origin":                         "http://localhost:3000",
		"Access-Control-Request-Method":  "POST",
		"Access-Control-Request-Headers": "X-Custom-Header",
	})

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "*", rec.Header().Get("Timing-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")

	allowed := rec.Header().Get("Access-Control-Allow-Headers")
	for _, h := range []string{"Authorization", "X-Custom-Header", "X-Custom-Header-2", "X-Custom-Header-3", "X-Custom-Header-4", "Content-Type"} {
		assert.Contains(t, allowed, h)
	}
	assert.Zero(t, rec.Body.Len())
}

func TestCORSActualRequest(t *testing.T) {
	t.Parallel()

	srv := New(testConfig())
	rec := serve(t, srv, http.MethodGet, "/text", nil, map[string]string{"Origin": "http://example.com"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Allow, Timing-Allow-Origin", rec.Header().Get("Access-Control-Expose-Headers"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Methods"), "methods are only advertised on preflight")
}

func TestCORSPlainOptionsReachesRoutes(t *testing.T) {
	t.Parallel()

	srv := New(testConfig())

	// Origin alone does not make a preflight.
	rec := serve(t, srv, http.MethodOptions, "/options", nil, map[string]string{"Origin": "http://example.com"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OPTIONS", rec.Header().Get("Allow"))
}

func TestCORSRestrictedOrigins(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.CORS = config.DefaultCORSConfig()
	cfg.CORS.AllowOrigins = []string{"http://allowed.test"}
	cfg.CORS.MaxAge = 600
	srv := New(cfg)

	t.Run("allowed origin is echoed", func(t *testing.T) {
		t.Parallel()
		rec := serve(t, srv, http.MethodOptions, "/json", nil, map[string]string{
			"Origin":                        "http://allowed.test",
			"Access-Control-Request-Method": "GET",
		})
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "http://allowed.test", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "Origin", rec.Header().Get("Vary"))
		assert.Equal(t, "600", rec.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("other origin preflight is forbidden", func(t *testing.T) {
		t.Parallel()
		rec := serve(t, srv, http.MethodOptions, "/json", nil, map[string]string{
			"Origin":                        "http://evil.test",
			"Access-Control-Request-Method": "GET",
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("other origin actual request still served", func(t *testing.T) {
		t.Parallel()
		rec := serve(t, srv, http.MethodGet, "/text", nil, map[string]string{"Origin": "http://evil.test"})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestCORSDisabled(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.CORS = &config.CORSConfig{Enabled: false}
	srv := New(cfg)

	rec := serve(t, srv, http.MethodOptions, "/json", nil, map[string]string{
		"Origin":                        "http://example.com",
		"Access-Control-Request-Method": "GET",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "*", rec.Header().Get("Timing-Allow-Origin"))
}

func TestCORSAllowHeadersDeduplicated(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultCORSConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "content-type")
	m := newCORSMiddleware(http.NotFoundHandler(), cfg)
	assert.Equal(t, 1, strings.Count(strings.ToLower(m.allowHeaders), "content-type"))
}
