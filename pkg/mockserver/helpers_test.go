package mockserver

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/getmockd/wretchkit/pkg/config"
	"github.com/stretchr/testify/require"
)

// testConfig returns a config bound to a free loopback port with a short
// /longResult delay.
func testConfig() *config.MockServerConfig {
	cfg := config.DefaultMockServerConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 0
	cfg.LongResultDelay = 50 * time.Millisecond
	return cfg
}

// serve runs one request through the full handler chain.
func serve(t *testing.T, srv *Server, method, target string, body io.Reader, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

// noKeepAliveClient does not pool connections, so nothing outlives a test.
func noKeepAliveClient() *http.Client {
	return &http.Client{
		Timeout:   5 * time.Second,
		Transport: &http.Transport{DisableKeepAlives: true},
	}
}

func readAll(t *testing.T, r io.Reader) string {
	t.Helper()
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(b)
}

func strBody(s string) io.Reader { return strings.NewReader(s) }

func itoa(n int) string { return strconv.Itoa(n) }
