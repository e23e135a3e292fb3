package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounter(t *testing.T) {
	t.Parallel()

	t.Run("increments per label set", func(t *testing.T) {
		t.Parallel()
		reg := NewRegistry()
		c, err := reg.NewCounter("hits_total", "Hits.", "method")
		require.NoError(t, err)

		require.NoError(t, c.Inc("GET"))
		require.NoError(t, c.Inc("GET"))
		require.NoError(t, c.Add(3, "POST"))

		assert.Equal(t, 2.0, c.Value("GET"))
		assert.Equal(t, 3.0, c.Value("POST"))
		assert.Equal(t, 0.0, c.Value("PUT"))
	})

	t.Run("rejects negative delta", func(t *testing.T) {
		t.Parallel()
		c, _ := NewRegistry().NewCounter("c_total", "C.")
		assert.ErrorIs(t, c.Add(-1), ErrNegativeCounterValue)
	})

	t.Run("rejects wrong label count", func(t *testing.T) {
		t.Parallel()
		c, _ := NewRegistry().NewCounter("c_total", "C.", "a", "b")
		assert.ErrorIs(t, c.Inc("only-one"), ErrLabelCountMismatch)
	})

	t.Run("concurrent increments", func(t *testing.T) {
		t.Parallel()
		c, _ := NewRegistry().NewCounter("c_total", "C.", "route")
		var wg sync.WaitGroup
		for range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range 100 {
					_ = c.Inc("GET /json")
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, 5000.0, c.Value("GET /json"))
	})
}

func TestRegistry_Duplicate(t *testing.T) {
	t.Parallel()
	reg := NewRegistry()
	_, err := reg.NewCounter("x", "X.")
	require.NoError(t, err)
	_, err = reg.NewGauge("x", "X.")
	assert.ErrorIs(t, err, ErrDuplicateMetric)
}

func TestHistogram_Collect(t *testing.T) {
	t.Parallel()
	reg := NewRegistry()
	h, err := reg.NewHistogram("latency_seconds", "Latency.", []float64{1, 0.1}, "route")
	require.NoError(t, err)

	require.NoError(t, h.Observe(0.05, "GET /text"))
	require.NoError(t, h.Observe(0.5, "GET /text"))
	require.NoError(t, h.Observe(1.2, "GET /text"))

	byLe := map[string]float64{}
	var sum, count float64
	for _, s := range h.Collect() {
		switch s.Name {
		case "latency_seconds_bucket":
			byLe[s.Labels["le"]] = s.Value
		case "latency_seconds_sum":
			sum = s.Value
		case "latency_seconds_count":
			count = s.Value
		}
	}

	assert.Equal(t, map[string]float64{"0.1": 1, "1": 2, "+Inf": 3}, byLe)
	assert.InDelta(t, 1.75, sum, 1e-9)
	assert.Equal(t, 3.0, count)
}

func TestRegistry_Handler(t *testing.T) {
	t.Parallel()
	m := NewMockMetrics()
	require.NoError(t, m.RequestsTotal.Inc("GET", "GET /json", "200"))
	require.NoError(t, m.RequestDuration.Observe(0.002, "GET", "GET /json"))
	require.NoError(t, m.InFlight.Add(1))

	rec := httptest.NewRecorder()
	m.Registry.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/plain"))
	assert.Contains(t, body, "# TYPE wretchkit_mock_requests_total counter")
	assert.Contains(t, body, `wretchkit_mock_requests_total{method="GET",route="GET /json",status="200"} 1`)
	assert.Contains(t, body, `wretchkit_mock_request_duration_seconds_bucket{le="0.005",method="GET",route="GET /json"} 1`)
	assert.Contains(t, body, "wretchkit_mock_requests_in_flight 1")
}

func TestFormatLabels_Escapes(t *testing.T) {
	t.Parallel()
	got := formatLabels(map[string]string{"b": `a"b`, "a": "x\ny"})
	assert.Equal(t, `a="x\ny",b="a\"b"`, got)
}
