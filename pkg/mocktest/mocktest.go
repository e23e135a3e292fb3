package mocktest

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/getmockd/wretchkit/pkg/config"
	"github.com/getmockd/wretchkit/pkg/mockserver"
	"github.com/getmockd/wretchkit/pkg/requestlog"
)

// stopTimeout bounds the graceful shutdown run at cleanup.
const stopTimeout = 5 * time.Second

// MockServer is a running mock server bound to a test.
type MockServer struct {
	server *mockserver.Server
	client *http.Client
}

// Option adjusts the server configuration before launch.
type Option func(*config.MockServerConfig)

// WithLongResultDelay sets how long /longResult waits.
func WithLongResultDelay(d time.Duration) Option {
	return func(cfg *config.MockServerConfig) {
		cfg.LongResultDelay = d
	}
}

// WithBasicAuth sets the credentials /basicauth accepts.
func WithBasicAuth(username, password string) Option {
	return func(cfg *config.MockServerConfig) {
		cfg.BasicAuth = config.BasicAuthConfig{Username: username, Password: password}
	}
}

// WithConfig applies fn to the configuration.
func WithConfig(fn func(*config.MockServerConfig)) Option {
	return Option(fn)
}

// New launches a mock server on a free loopback port. The server is stopped
// when the test and its subtests complete.
func New(t testing.TB, opts ...Option) *MockServer {
	t.Helper()

	cfg := config.DefaultMockServerConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 0
	for _, opt := range opts {
		opt(cfg)
	}

	srv := mockserver.New(cfg)
	if err := srv.Launch(context.Background()); err != nil {
		t.Fatalf("failed to launch mock server: %v", err)
	}

	transport := &http.Transport{DisableKeepAlives: true}
	m := &MockServer{
		server: srv,
		client: &http.Client{Transport: transport, Timeout: 30 * time.Second},
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
		defer cancel()
		if err := srv.Stop(ctx); err != nil {
			t.Errorf("failed to stop mock server: %v", err)
		}
		transport.CloseIdleConnections()
	})
	return m
}

// URL returns the base URL of the mock server.
func (m *MockServer) URL() string {
	return m.server.URL()
}

// Client returns an http.Client that does not keep connections alive, so
// nothing outlives the test.
func (m *MockServer) Client() *http.Client {
	return m.client
}

// Server returns the underlying mockserver.Server for advanced use cases.
func (m *MockServer) Server() *mockserver.Server {
	return m.server
}

// Reset clears the request log.
func (m *MockServer) Reset() {
	m.server.Requests().Clear()
}

// Requests returns all logged requests, newest first.
func (m *MockServer) Requests() []RequestLog {
	entries := m.server.Requests().List(nil)
	result := make([]RequestLog, len(entries))
	for i, e := range entries {
		result[i] = newRequestLog(e)
	}
	return result
}

// AssertCalled asserts that an endpoint was called at least once.
func (m *MockServer) AssertCalled(t testing.TB, method, path string) {
	t.Helper()

	if m.countCalls(method, path) == 0 {
		t.Errorf("expected %s %s to be called, but it was not called", method, path)
	}
}

// AssertCalledTimes asserts that an endpoint was called exactly n times.
func (m *MockServer) AssertCalledTimes(t testing.TB, method, path string, times int) {
	t.Helper()

	if count := m.countCalls(method, path); count != times {
		t.Errorf("expected %s %s to be called %d times, but was called %d times",
			method, path, times, count)
	}
}

// AssertNotCalled asserts that an endpoint was not called.
func (m *MockServer) AssertNotCalled(t testing.TB, method, path string) {
	t.Helper()

	if count := m.countCalls(method, path); count > 0 {
		t.Errorf("expected %s %s to not be called, but it was called %d times",
			method, path, count)
	}
}

// countCalls counts how many times a method/path combination was called.
func (m *MockServer) countCalls(method, path string) int {
	count := 0
	for _, e := range m.server.Requests().List(&requestlog.Filter{Method: method}) {
		if e.Path == path {
			count++
		}
	}
	return count
}
