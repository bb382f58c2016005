package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"spedetl/internal/sped"
)

// RegisterColumns is the ordered column list every backend's register table
// shares. Field values travel as one JSON array per row; SPED registers have
// variable schemas, so exploding them into per-field columns would need one
// table per register code.
var RegisterColumns = []string{"run_id", "row_id", "parent_id", "reg", "line", "fields"}

// Sink streams resolved register records into a Repository one chunk at a
// time, so a multi-gigabyte parse never needs its whole table in memory.
type Sink struct {
	repo  Repository
	runID string

	total   int64
	started time.Time
}

// NewSink returns a sink that tags every row with runID.
func NewSink(repo Repository, runID string) *Sink {
	return &Sink{repo: repo, runID: runID, started: time.Now()}
}

// Hook adapts the sink to the parser's per-chunk callback.
func (s *Sink) Hook() func(ctx context.Context, recs []sped.Record) error {
	return s.Write
}

// Write bulk-inserts one chunk of records.
func (s *Sink) Write(ctx context.Context, recs []sped.Record) error {
	if len(recs) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(recs))
	for _, r := range recs {
		fields, err := json.Marshal(r.Fields)
		if err != nil {
			return fmt.Errorf("sink: encode fields (row %d): %w", r.RowID, err)
		}
		var parent any
		if r.ParentID != sped.NoParent {
			parent = r.ParentID
		}
		rows = append(rows, []any{s.runID, r.RowID, parent, r.Reg, r.Line, string(fields)})
	}

	n, err := s.repo.CopyFrom(ctx, RegisterColumns, rows)
	s.total += n
	if err != nil {
		return fmt.Errorf("sink: copy %d rows: %w", len(rows), err)
	}

	elapsed := time.Since(s.started).Seconds()
	rate := float64(s.total)
	if elapsed > 0 {
		rate = float64(s.total) / elapsed
	}
	log.Printf("sink: flushed batch=%d total=%d rate=%.0f rows/sec", n, s.total, rate)
	return nil
}

// Total returns the running count of rows the sink has written.
func (s *Sink) Total() int64 { return s.total }
