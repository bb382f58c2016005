// Package metrics provides a small, backend-agnostic abstraction for
// recording operational metrics from SPED parse runs.
//
// The package is intentionally minimal:
//
//   - It exposes a narrow interface (Backend) focused on counters and timing
//     data.
//   - It provides a global, pluggable backend that defaults to a no-op
//     implementation, so metrics are always safe to call even when no real
//     backend is configured.
//   - It mirrors the storage abstraction pattern: the rest of the codebase
//     depends only on this interface while concrete metric systems live in
//     subpackages.
package metrics

import "time"

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveHistogram records a value in a latency/duration style metric.
	ObserveHistogram(name string, value float64, labels Labels)
	// Flush pushes or flushes metrics, if the backend needs it (e.g. Pushgateway).
	Flush() error
}

// nopBackend is used by default so metrics are optional.
type nopBackend struct{}

func (nopBackend) IncCounter(name string, delta float64, labels Labels)       {}
func (nopBackend) ObserveHistogram(name string, value float64, labels Labels) {}
func (nopBackend) Flush() error                                               { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the existing backend.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error {
	return backend.Flush()
}

// RecordStep measures latency plus success/failure for one named stage of a
// parse run (parse, extract, sink).
func RecordStep(job, step string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}

	lbls := Labels{
		"job":    job,
		"step":   step,
		"status": status,
	}

	backend.IncCounter("sped_step_total", 1, lbls)
	backend.ObserveHistogram("sped_step_duration_seconds", d.Seconds(), lbls)
}

// RecordRecords increments the record-level counter for the given kind.
//
// Typical kinds:
//   - "parsed"
//   - "stored"
//   - "sales_items"
//   - "purchase_items"
//   - "expenses"
func RecordRecords(job, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter("sped_records_total", float64(delta), Labels{
		"job":  job,
		"kind": kind,
	})
}

// RecordDiagnostics counts non-fatal parse findings by diagnostic code.
func RecordDiagnostics(job, code string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter("sped_diagnostics_total", float64(delta), Labels{
		"job":  job,
		"code": code,
	})
}
