package mockserver

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func BenchmarkHandler(b *testing.B) {
	srv := New(testConfig())
	h := srv.Handler()

	cases := []struct {
		name        string
		method      string
		target      string
		body        string
		contentType string
	}{
		{name: "text", method: http.MethodGet, target: "/text"},
		{name: "blob", method: http.MethodGet, target: "/blob"},
		{name: "error_code", method: http.MethodGet, target: "/503"},
		{name: "json_round_trip", method: http.MethodPost, target: "/json/roundTrip", body: `{"a":[1,2,3],"b":{"c":"d"}}`, contentType: contentTypeJSON},
		{name: "not_found", method: http.MethodGet, target: "/nope"},
	}
	for _, tc := range cases {
		b.Run(tc.name, func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				req := httptest.NewRequest(tc.method, tc.target, strings.NewReader(tc.body))
				if tc.contentType != "" {
					req.Header.Set("Content-Type", tc.contentType)
				}
				rec := httptest.NewRecorder()
				h.ServeHTTP(rec, req)
			}
		})
	}
}

func TestConcurrentRequests(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping load test in short mode")
	}

	srv := New(testConfig())
	require.NoError(t, srv.Launch(context.Background()))
	defer func() { require.NoError(t, srv.Stop(context.Background())) }()

	const (
		numRequests = 1000
		numWorkers  = 50
	)

	client := noKeepAliveClient()
	var successCount atomic.Int64

	start := time.Now()
	var g errgroup.Group
	for range numWorkers {
		g.Go(func() error {
			for range numRequests / numWorkers {
				resp, err := client.Get(srv.URL() + "/json")
				if err != nil {
					return err
				}
				_, _ = io.Copy(io.Discard, resp.Body)
				_ = resp.Body.Close()
				if resp.StatusCode == http.StatusOK {
					successCount.Add(1)
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	elapsed := time.Since(start)

	assert.Equal(t, int64(numRequests), successCount.Load())
	assert.Equal(t, numRequests, srv.Requests().Count())
	t.Logf("%d requests in %s (%.0f req/s)", numRequests, elapsed, float64(numRequests)/elapsed.Seconds())
}
