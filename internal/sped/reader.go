// Package sped parses SPED fiscal files: pipe-delimited, Latin-1 encoded
// text where every line is one register and nesting between registers is
// positional. The parser streams the file in bounded batches, resolves each
// record's parent from a caller-supplied nesting policy, and accumulates the
// result in a Table whose content is independent of the batch size used.
package sped

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"spedetl/internal/datasource"
)

const (
	// DefaultEncoding is the legacy single-byte encoding SPED mandates.
	DefaultEncoding = "latin1"

	// DefaultDelimiter is the field separator in every SPED layout.
	DefaultDelimiter = '|'

	// DefaultBatchSize bounds how many lines are resolved per chunk. Large
	// enough to amortize per-batch overhead, small enough that a
	// multi-gigabyte file never lives in memory all at once.
	DefaultBatchSize = 200_000
)

// Mode selects how the parser reacts to malformed input.
type Mode int

const (
	// ModeAuto parses strictly and, on the first decode or shape error,
	// discards all progress and re-reads the whole source permissively.
	ModeAuto Mode = iota

	// ModeStrict fails the parse on the first invalid byte or over-long
	// line.
	ModeStrict

	// ModePermissive substitutes invalid bytes and pads or truncates ragged
	// lines, recording a diagnostic for each repair.
	ModePermissive
)

// Options configures one parse run. The zero value is usable: latin1, pipe
// delimiter, default batch size, auto mode, no shape checking, no nesting
// (every record root-level).
type Options struct {
	// Encoding names the source text encoding ("latin1", "utf-8", or any
	// single-byte charmap htmlindex knows).
	Encoding string

	// Delimiter is the single-byte field separator.
	Delimiter byte

	// BatchSize is the number of lines resolved per chunk.
	BatchSize int

	// Columns is the layout's declared field count per line. Zero disables
	// shape checking entirely.
	Columns int

	// EndMarker is the register code that closes the file (9999 for EFD
	// layouts, I990 for ECD). Content after it is ignored. Empty means read
	// to EOF.
	EndMarker string

	// Mode selects strict, permissive, or strict-with-fallback parsing.
	Mode Mode

	// Policy maps register codes to their parent register. Nil treats every
	// register as root-level.
	Policy Policy

	// OnChunk, when set, receives each resolved chunk before it is appended
	// to the table. An error from the hook aborts the parse. Storage sinks
	// hang off this hook so spilling rows does not require holding the whole
	// table.
	OnChunk func(ctx context.Context, recs []Record) error
}

func (o Options) withDefaults() Options {
	if o.Encoding == "" {
		o.Encoding = DefaultEncoding
	}
	if o.Delimiter == 0 {
		o.Delimiter = DefaultDelimiter
	}
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}
	return o
}

// Parse reads the source to completion and returns the resolved register
// table. In ModeAuto a strict pass that trips on a *DecodeError or
// *MalformedLineError is thrown away and the source is reopened for a
// permissive pass, so row ids always reflect a single uninterrupted
// numbering. A source that yields zero records fails with ErrNoRecords.
func Parse(ctx context.Context, src datasource.Source, opts Options) (*Table, error) {
	opts = opts.withDefaults()

	strict := opts.Mode != ModePermissive
	table, err := parseOnce(ctx, src, opts, strict, nil)
	if err != nil && opts.Mode == ModeAuto && recoverable(err) {
		log.Printf("strict parse failed (%v), re-reading permissively", err)
		lead := []Diagnostic{{
			Code:    DiagStrictFallback,
			RowID:   NoParent,
			Message: fmt.Sprintf("strict pass failed: %v", err),
		}}
		table, err = parseOnce(ctx, src, opts, false, lead)
	}
	if err != nil {
		return nil, err
	}
	if table.Len() == 0 {
		return nil, ErrNoRecords
	}
	return table, nil
}

// recoverable reports whether err is the kind of malformed-input failure a
// permissive re-read can absorb. Source and context errors are not.
func recoverable(err error) bool {
	var de *DecodeError
	var me *MalformedLineError
	return errors.As(err, &de) || errors.As(err, &me)
}

func parseOnce(ctx context.Context, src datasource.Source, opts Options, strict bool, lead []Diagnostic) (*Table, error) {
	dec, err := newDecoder(opts.Encoding)
	if err != nil {
		return nil, err
	}

	rc, err := src.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	defer rc.Close()

	table := newTable()
	table.diags = append(table.diags, lead...)
	res := newResolver(opts.Policy, NewCarryState())

	flush := func(batch []line) error {
		if len(batch) == 0 {
			return nil
		}
		recs, diags := res.resolve(batch)
		if opts.OnChunk != nil {
			if err := opts.OnChunk(ctx, recs); err != nil {
				return fmt.Errorf("chunk hook: %w", err)
			}
		}
		table.append(recs)
		table.diags = append(table.diags, diags...)
		return nil
	}

	br := bufio.NewReaderSize(rc, 256*1024)
	batch := make([]line, 0, opts.BatchSize)
	var offset int64
	lineNo := 0
	done := false

	for !done {
		raw, rerr := br.ReadBytes('\n')
		if rerr != nil && rerr != io.EOF {
			return nil, fmt.Errorf("read source: %w", rerr)
		}
		if rerr == io.EOF {
			done = true
			if len(raw) == 0 {
				break
			}
		}
		lineNo++
		base := offset
		offset += int64(len(raw))
		raw = trimEOL(raw)

		decoded, subs, derr := dec.decodeLine(raw, lineNo, base, strict)
		if derr != nil {
			return nil, derr
		}
		fields := tokenize(decoded, opts.Delimiter)
		if fields == nil {
			continue
		}

		ln := line{num: lineNo, fields: fields}
		if subs > 0 {
			ln.diags = append(ln.diags, Diagnostic{
				Code:    DiagInvalidEncoding,
				Line:    lineNo,
				Message: fmt.Sprintf("%d invalid byte(s) replaced", subs),
			})
		}
		if opts.Columns > 0 && len(fields) != opts.Columns {
			fields, ln.diags, err = reshape(fields, opts.Columns, lineNo, strict, ln.diags)
			if err != nil {
				return nil, err
			}
			ln.fields = fields
		}

		batch = append(batch, ln)
		if len(batch) >= opts.BatchSize {
			if err := flush(batch); err != nil {
				return nil, err
			}
			batch = batch[:0]
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if opts.EndMarker != "" && ln.fields[0] == opts.EndMarker {
			done = true
		}
	}
	if err := flush(batch); err != nil {
		return nil, err
	}
	return table, nil
}

// reshape forces a ragged line to the declared column count. Short lines are
// padded with empty fields in both modes; layouts trail optional fields and
// real-world exports drop them. Over-long lines are a hard error in strict
// mode and are truncated with a diagnostic in permissive mode.
func reshape(fields []string, want, lineNo int, strict bool, diags []Diagnostic) ([]string, []Diagnostic, error) {
	got := len(fields)
	if got > want {
		if strict {
			return nil, nil, &MalformedLineError{Line: lineNo, Got: got, Want: want}
		}
		fields = fields[:want]
		diags = append(diags, Diagnostic{
			Code:    DiagRaggedFields,
			Line:    lineNo,
			Message: fmt.Sprintf("truncated %d fields to %d", got, want),
		})
		return fields, diags, nil
	}
	for len(fields) < want {
		fields = append(fields, "")
	}
	if !strict {
		diags = append(diags, Diagnostic{
			Code:    DiagRaggedFields,
			Line:    lineNo,
			Message: fmt.Sprintf("padded %d fields to %d", got, want),
		})
	}
	return fields, diags, nil
}

func trimEOL(b []byte) []byte {
	if n := len(b); n > 0 && b[n-1] == '\n' {
		b = b[:n-1]
	}
	if n := len(b); n > 0 && b[n-1] == '\r' {
		b = b[:n-1]
	}
	return b
}
