package metrics

import (
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// ErrLabelCountMismatch is returned when the number of label values doesn't match the defined labels.
var ErrLabelCountMismatch = errors.New("label count mismatch")

// ErrNegativeCounterValue is returned when attempting to add a negative value to a counter.
var ErrNegativeCounterValue = errors.New("counter cannot be decreased")

// ErrDuplicateMetric is returned when registering a metric with a name that is already registered.
var ErrDuplicateMetric = errors.New("duplicate metric name")

// MetricType represents the type of a metric.
type MetricType string

const (
	MetricTypeCounter   MetricType = "counter"
	MetricTypeGauge     MetricType = "gauge"
	MetricTypeHistogram MetricType = "histogram"
)

// Metric is the interface implemented by all metric types.
type Metric interface {
	Name() string
	Help() string
	Type() MetricType
	// Collect returns all metric samples for exposition.
	Collect() []Sample
}

// Sample represents a single metric sample with labels.
type Sample struct {
	Name   string
	Labels map[string]string
	Value  float64
}

// atomicFloat64 stores float64 bits in a uint64 for lock-free updates.
type atomicFloat64 struct {
	bits atomic.Uint64
}

func (a *atomicFloat64) Load() float64 { return math.Float64frombits(a.bits.Load()) }

func (a *atomicFloat64) Add(delta float64) {
	for {
		old := a.bits.Load()
		next := math.Float64bits(math.Float64frombits(old) + delta)
		if a.bits.CompareAndSwap(old, next) {
			return
		}
	}
}

// family is the label bookkeeping shared by every metric type.
type family[V any] struct {
	name       string
	help       string
	labelNames []string
	mu         sync.RWMutex
	values     map[string]*V
	labels     map[string]map[string]string
	newValue   func() *V
}

func newFamily[V any](name, help string, labelNames []string, newValue func() *V) *family[V] {
	return &family[V]{
		name:       name,
		help:       help,
		labelNames: labelNames,
		values:     make(map[string]*V),
		labels:     make(map[string]map[string]string),
		newValue:   newValue,
	}
}

func (f *family[V]) get(values []string) (*V, error) {
	if len(values) != len(f.labelNames) {
		return nil, fmt.Errorf("%w: %s expected %d labels, got %d", ErrLabelCountMismatch, f.name, len(f.labelNames), len(values))
	}
	key := strings.Join(values, "\x00")

	f.mu.RLock()
	v, ok := f.values[key]
	f.mu.RUnlock()
	if ok {
		return v, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if v, ok = f.values[key]; ok {
		return v, nil
	}
	labels := make(map[string]string, len(f.labelNames))
	for i, name := range f.labelNames {
		labels[name] = values[i]
	}
	v = f.newValue()
	f.values[key] = v
	f.labels[key] = labels
	return v, nil
}

func (f *family[V]) each(fn func(labels map[string]string, v *V)) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	keys := make([]string, 0, len(f.values))
	for k := range f.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fn(f.labels[k], f.values[k])
	}
}

// Counter is a monotonically increasing metric.
type Counter struct {
	*family[atomicFloat64]
}

// Name returns the metric name.
func (c *Counter) Name() string { return c.name }

// Help returns the help text.
func (c *Counter) Help() string { return c.help }

// Type returns MetricTypeCounter.
func (c *Counter) Type() MetricType { return MetricTypeCounter }

// Add adds delta to the series identified by labelValues.
func (c *Counter) Add(delta float64, labelValues ...string) error {
	if delta < 0 {
		return fmt.Errorf("%w: counter %s", ErrNegativeCounterValue, c.name)
	}
	v, err := c.get(labelValues)
	if err != nil {
		return err
	}
	v.Add(delta)
	return nil
}

// Inc increments the series identified by labelValues.
func (c *Counter) Inc(labelValues ...string) error {
	return c.Add(1, labelValues...)
}

// Value returns the current value of a series, zero if it was never touched.
func (c *Counter) Value(labelValues ...string) float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if v, ok := c.values[strings.Join(labelValues, "\x00")]; ok {
		return v.Load()
	}
	return 0
}

// Collect returns all metric samples.
func (c *Counter) Collect() []Sample {
	var samples []Sample
	c.each(func(labels map[string]string, v *atomicFloat64) {
		samples = append(samples, Sample{Name: c.name, Labels: labels, Value: v.Load()})
	})
	return samples
}

// Gauge is a metric that can go up and down.
type Gauge struct {
	*family[atomicFloat64]
}

// Name returns the metric name.
func (g *Gauge) Name() string { return g.name }

// Help returns the help text.
func (g *Gauge) Help() string { return g.help }

// Type returns MetricTypeGauge.
func (g *Gauge) Type() MetricType { return MetricTypeGauge }

// Add adds delta (which may be negative) to a series.
func (g *Gauge) Add(delta float64, labelValues ...string) error {
	v, err := g.get(labelValues)
	if err != nil {
		return err
	}
	v.Add(delta)
	return nil
}

// Value returns the current value of a series, zero if it was never touched.
func (g *Gauge) Value(labelValues ...string) float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if v, ok := g.values[strings.Join(labelValues, "\x00")]; ok {
		return v.Load()
	}
	return 0
}

// Collect returns all metric samples.
func (g *Gauge) Collect() []Sample {
	var samples []Sample
	g.each(func(labels map[string]string, v *atomicFloat64) {
		samples = append(samples, Sample{Name: g.name, Labels: labels, Value: v.Load()})
	})
	return samples
}

type histogramValue struct {
	counts []atomic.Uint64
	sum    atomicFloat64
	count  atomic.Uint64
}

// Histogram tracks the distribution of observed values in fixed buckets.
type Histogram struct {
	*family[histogramValue]
	buckets []float64 // upper bounds, ascending, last is +Inf
}

// Name returns the metric name.
func (h *Histogram) Name() string { return h.name }

// Help returns the help text.
func (h *Histogram) Help() string { return h.help }

// Type returns MetricTypeHistogram.
func (h *Histogram) Type() MetricType { return MetricTypeHistogram }

// Observe records value in the series identified by labelValues.
func (h *Histogram) Observe(value float64, labelValues ...string) error {
	v, err := h.get(labelValues)
	if err != nil {
		return err
	}
	for i, bound := range h.buckets {
		if value <= bound {
			v.counts[i].Add(1)
			break
		}
	}
	v.sum.Add(value)
	v.count.Add(1)
	return nil
}

// Collect returns the cumulative bucket, _sum and _count samples.
func (h *Histogram) Collect() []Sample {
	var samples []Sample
	h.each(func(labels map[string]string, v *histogramValue) {
		var cumulative uint64
		for i, bound := range h.buckets {
			cumulative += v.counts[i].Load()
			bucketLabels := make(map[string]string, len(labels)+1)
			for k, val := range labels {
				bucketLabels[k] = val
			}
			bucketLabels["le"] = formatFloat(bound)
			samples = append(samples, Sample{Name: h.name + "_bucket", Labels: bucketLabels, Value: float64(cumulative)})
		}
		samples = append(samples,
			Sample{Name: h.name + "_sum", Labels: labels, Value: v.sum.Load()},
			Sample{Name: h.name + "_count", Labels: labels, Value: float64(v.count.Load())},
		)
	})
	return samples
}

// Registry holds registered metrics and serves them in Prometheus text format.
type Registry struct {
	mu      sync.RWMutex
	metrics []Metric
	names   map[string]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{names: make(map[string]struct{})}
}

// NewCounter registers a counter.
func (r *Registry) NewCounter(name, help string, labels ...string) (*Counter, error) {
	c := &Counter{family: newFamily(name, help, labels, func() *atomicFloat64 { return new(atomicFloat64) })}
	return c, r.register(c)
}

// NewGauge registers a gauge.
func (r *Registry) NewGauge(name, help string, labels ...string) (*Gauge, error) {
	g := &Gauge{family: newFamily(name, help, labels, func() *atomicFloat64 { return new(atomicFloat64) })}
	return g, r.register(g)
}

// NewHistogram registers a histogram. A +Inf bucket is appended when missing.
func (r *Registry) NewHistogram(name, help string, buckets []float64, labels ...string) (*Histogram, error) {
	sorted := slices.Clone(buckets)
	slices.Sort(sorted)
	if len(sorted) == 0 || !math.IsInf(sorted[len(sorted)-1], 1) {
		sorted = append(sorted, math.Inf(1))
	}
	h := &Histogram{buckets: sorted}
	h.family = newFamily(name, help, labels, func() *histogramValue {
		return &histogramValue{counts: make([]atomic.Uint64, len(sorted))}
	})
	return h, r.register(h)
}

func (r *Registry) register(m Metric) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.names[m.Name()]; dup {
		return fmt.Errorf("%w: %s", ErrDuplicateMetric, m.Name())
	}
	r.names[m.Name()] = struct{}{}
	r.metrics = append(r.metrics, m)
	return nil
}

// WriteTo writes every metric in Prometheus text exposition format.
func (r *Registry) WriteTo(w io.Writer) (int64, error) {
	r.mu.RLock()
	ms := slices.Clone(r.metrics)
	r.mu.RUnlock()

	var sb strings.Builder
	for _, m := range ms {
		samples := m.Collect()
		if len(samples) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "# HELP %s %s\n", m.Name(), escape(m.Help(), false))
		fmt.Fprintf(&sb, "# TYPE %s %s\n", m.Name(), m.Type())
		for _, s := range samples {
			if len(s.Labels) == 0 {
				fmt.Fprintf(&sb, "%s %s\n", s.Name, formatFloat(s.Value))
				continue
			}
			fmt.Fprintf(&sb, "%s{%s} %s\n", s.Name, formatLabels(s.Labels), formatFloat(s.Value))
		}
	}
	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

// Handler serves the registry at a /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
		_, _ = r.WriteTo(w)
	})
}

func formatLabels(labels map[string]string) string {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + `="` + escape(labels[k], true) + `"`
	}
	return strings.Join(parts, ",")
}

func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func escape(s string, quote bool) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	if quote {
		s = strings.ReplaceAll(s, `"`, `\"`)
	}
	return s
}

// DefaultBuckets are the histogram buckets for request durations, in seconds.
// They reach past 1s so /longResult lands in a finite bucket.
var DefaultBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 1.5, 2.5, 5}
