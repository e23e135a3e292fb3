// Package metrics provides Prometheus-compatible metrics for the mock server.
//
// It implements the Prometheus text exposition format (text/plain;
// version=0.0.4) for counters, gauges and histograms. All metrics are safe
// for concurrent use.
//
// Each mock server owns its own Registry (see NewMockMetrics), which the
// admin API exposes at GET /metrics:
//
//	m := metrics.NewMockMetrics()
//	_ = m.RequestsTotal.Inc("GET", "GET /json", "200")
//	_ = m.RequestDuration.Observe(0.002, "GET", "GET /json")
//	mux.Handle("GET /metrics", m.Registry.Handler())
package metrics
