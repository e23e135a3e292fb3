package metrics

// MockMetrics is the metric set recorded by the mock server.
type MockMetrics struct {
	Registry *Registry

	// RequestsTotal counts served requests. Labels: method, route, status.
	RequestsTotal *Counter

	// RequestDuration observes request latency in seconds. Labels: method, route.
	RequestDuration *Histogram

	// InFlight is the number of requests currently being served.
	InFlight *Gauge
}

// NewMockMetrics registers the mock server metrics on a fresh registry.
func NewMockMetrics() *MockMetrics {
	reg := NewRegistry()
	// Names are fixed and distinct, registration cannot fail.
	requests, _ := reg.NewCounter("wretchkit_mock_requests_total", "Total requests served by the mock server.", "method", "route", "status")
	duration, _ := reg.NewHistogram("wretchkit_mock_request_duration_seconds", "Mock server request latency.", DefaultBuckets, "method", "route")
	inflight, _ := reg.NewGauge("wretchkit_mock_requests_in_flight", "Requests currently being served.")
	return &MockMetrics{
		Registry:        reg,
		RequestsTotal:   requests,
		RequestDuration: duration,
		InFlight:        inflight,
	}
}
