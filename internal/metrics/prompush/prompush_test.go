package prompush

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"spedetl/internal/metrics"
)

// readCounterValue reads the current value of a Counter for assertions.
func readCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()

	m := &dto.Metric{}
	if err := c.Write(m); err != nil {
		t.Fatalf("Counter.Write() error = %v", err)
	}
	if m.GetCounter() == nil {
		t.Fatalf("metric did not contain Counter value")
	}
	return m.GetCounter().GetValue()
}

// readSummaryCountSum reads sample count and sum from a SummaryVec.
func readSummaryCountSum(t *testing.T, v *prometheus.SummaryVec, labels ...string) (uint64, float64) {
	t.Helper()

	m := &dto.Metric{}
	metric, ok := v.WithLabelValues(labels...).(prometheus.Metric)
	if !ok {
		t.Fatalf("SummaryVec.WithLabelValues(...) does not implement prometheus.Metric")
	}
	if err := metric.Write(m); err != nil {
		t.Fatalf("Summary.Write() error = %v", err)
	}
	if m.GetSummary() == nil {
		t.Fatalf("metric did not contain Summary value")
	}
	sum := m.GetSummary()
	return sum.GetSampleCount(), sum.GetSampleSum()
}

func TestNewBackend(t *testing.T) {
	t.Parallel()

	if b, err := NewBackend("efd_junho", ""); err == nil || b != nil {
		t.Fatalf("NewBackend with empty gateway URL = %v, %v; want nil, error", b, err)
	}

	b, err := NewBackend("", "http://pushgateway:9091")
	if err != nil {
		t.Fatalf("NewBackend() error = %v", err)
	}
	if b.jobName != "spedetl" {
		t.Fatalf("default jobName = %q, want spedetl", b.jobName)
	}

	b, err = NewBackend("efd_junho", "http://pushgateway:9091")
	if err != nil {
		t.Fatalf("NewBackend() error = %v", err)
	}
	if b.jobName != "efd_junho" || b.gatewayURL != "http://pushgateway:9091" {
		t.Fatalf("backend = %+v", b)
	}

	// Metric label cardinality: these calls should not panic.
	b.stepCounter.WithLabelValues("parse", "success").Add(1)
	b.stepDuration.WithLabelValues("extract", "failure").Observe(0.5)
	b.recordCounter.WithLabelValues("parsed").Add(1)
	b.diagCounter.WithLabelValues("ragged_fields").Add(1)
}

func TestIncCounter(t *testing.T) {
	t.Parallel()

	b, err := NewBackend("efd_junho", "http://example.com")
	if err != nil {
		t.Fatalf("NewBackend() error = %v", err)
	}

	b.IncCounter("sped_step_total", 3, metrics.Labels{"step": "parse", "status": "success"})
	b.IncCounter("sped_records_total", 5, metrics.Labels{"kind": "parsed"})
	b.IncCounter("sped_diagnostics_total", 2, metrics.Labels{"code": "orphaned_child"})
	b.IncCounter("unknown_metric", 10, metrics.Labels{"foo": "bar"})

	if got := readCounterValue(t, b.stepCounter.WithLabelValues("parse", "success")); got != 3 {
		t.Fatalf("stepCounter = %v, want 3", got)
	}
	if got := readCounterValue(t, b.recordCounter.WithLabelValues("parsed")); got != 5 {
		t.Fatalf("recordCounter = %v, want 5", got)
	}
	if got := readCounterValue(t, b.diagCounter.WithLabelValues("orphaned_child")); got != 2 {
		t.Fatalf("diagCounter = %v, want 2", got)
	}
	// unknown metric names must not leak into any collector
	if got := readCounterValue(t, b.stepCounter.WithLabelValues("foo", "bar")); got != 0 {
		t.Fatalf("stepCounter(foo,bar) = %v, want 0", got)
	}
}

func TestObserveHistogram(t *testing.T) {
	t.Parallel()

	b, err := NewBackend("efd_junho", "http://example.com")
	if err != nil {
		t.Fatalf("NewBackend() error = %v", err)
	}

	b.ObserveHistogram("sped_step_duration_seconds", 1.5, metrics.Labels{"step": "parse", "status": "success"})
	b.ObserveHistogram("other_metric", 9.0, metrics.Labels{"step": "parse", "status": "success"})

	count, sum := readSummaryCountSum(t, b.stepDuration, "parse", "success")
	if count != 1 || sum != 1.5 {
		t.Fatalf("summary count/sum = %d/%v, want 1/1.5", count, sum)
	}
}

// TestFlush verifies that Flush pushes the registry to the configured
// Pushgateway URL.
func TestFlush(t *testing.T) {
	t.Parallel()

	type pushRequestInfo struct {
		method  string
		path    string
		bodyLen int
	}
	reqCh := make(chan pushRequestInfo, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		body, _ := io.ReadAll(r.Body)
		reqCh <- pushRequestInfo{method: r.Method, path: r.URL.Path, bodyLen: len(body)}
		// Pushgateway typically returns 202 Accepted.
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	b, err := NewBackend("efd_junho", server.URL)
	if err != nil {
		t.Fatalf("NewBackend() error = %v", err)
	}

	// Add some data so the push body is non-empty.
	b.IncCounter("sped_step_total", 1, metrics.Labels{"step": "parse", "status": "success"})

	if err := b.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	var got pushRequestInfo
	select {
	case got = <-reqCh:
	default:
		t.Fatalf("Flush() did not result in any HTTP request to the Pushgateway")
	}
	if got.method == "" || got.path == "" || got.bodyLen == 0 {
		t.Fatalf("push request = %+v, want non-empty method/path/body", got)
	}
}

// BenchmarkIncCounterStep measures the cost of incrementing the step counter
// through the Backend abstraction.
func BenchmarkIncCounterStep(b *testing.B) {
	backend, err := NewBackend("efd_junho", "http://example.com")
	if err != nil {
		b.Fatalf("NewBackend() error = %v", err)
	}
	labels := metrics.Labels{"step": "parse", "status": "success"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		backend.IncCounter("sped_step_total", 1, labels)
	}
}
