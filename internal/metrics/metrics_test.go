package metrics

import (
	"errors"
	"testing"
	"time"
)

// fakeBackend is a simple in-memory Backend implementation for tests.
type fakeBackend struct {
	counters   []call
	histograms []call
	flushed    int
}

type call struct {
	name   string
	value  float64
	labels Labels
}

func (f *fakeBackend) IncCounter(name string, delta float64, labels Labels) {
	f.counters = append(f.counters, call{name, delta, labels})
}

func (f *fakeBackend) ObserveHistogram(name string, value float64, labels Labels) {
	f.histograms = append(f.histograms, call{name, value, labels})
}

func (f *fakeBackend) Flush() error {
	f.flushed++
	return nil
}

func withFake(t *testing.T) *fakeBackend {
	t.Helper()
	f := &fakeBackend{}
	prev := backend
	SetBackend(f)
	t.Cleanup(func() { backend = prev })
	return f
}

func TestRecordStep(t *testing.T) {
	f := withFake(t)

	RecordStep("efd_junho", "parse", nil, 1500*time.Millisecond)
	RecordStep("efd_junho", "sink", errors.New("boom"), time.Second)

	if len(f.counters) != 2 || len(f.histograms) != 2 {
		t.Fatalf("counters=%d histograms=%d, want 2/2", len(f.counters), len(f.histograms))
	}

	ok := f.counters[0]
	if ok.name != "sped_step_total" || ok.labels["step"] != "parse" || ok.labels["status"] != "success" {
		t.Fatalf("success counter = %+v", ok)
	}
	if f.histograms[0].value != 1.5 {
		t.Fatalf("duration = %v, want 1.5", f.histograms[0].value)
	}

	bad := f.counters[1]
	if bad.labels["status"] != "failure" || bad.labels["job"] != "efd_junho" {
		t.Fatalf("failure counter = %+v", bad)
	}
}

func TestRecordRecords(t *testing.T) {
	f := withFake(t)

	RecordRecords("j", "parsed", 42)
	RecordRecords("j", "stored", 0)
	RecordRecords("j", "expenses", -1)

	if len(f.counters) != 1 {
		t.Fatalf("got %d counters, want 1 (zero and negative deltas skipped)", len(f.counters))
	}
	c := f.counters[0]
	if c.name != "sped_records_total" || c.value != 42 || c.labels["kind"] != "parsed" {
		t.Fatalf("counter = %+v", c)
	}
}

func TestRecordDiagnostics(t *testing.T) {
	f := withFake(t)

	RecordDiagnostics("j", "ragged_fields", 3)
	if len(f.counters) != 1 {
		t.Fatalf("got %d counters, want 1", len(f.counters))
	}
	c := f.counters[0]
	if c.name != "sped_diagnostics_total" || c.labels["code"] != "ragged_fields" {
		t.Fatalf("counter = %+v", c)
	}
}

func TestSetBackendNilKeepsCurrent(t *testing.T) {
	f := withFake(t)
	SetBackend(nil)
	if err := Flush(); err != nil {
		t.Fatal(err)
	}
	if f.flushed != 1 {
		t.Fatal("nil SetBackend must keep the installed backend")
	}
}
