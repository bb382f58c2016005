package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"spedetl/internal/config"
	"spedetl/internal/datasource"
	"spedetl/internal/datasource/file"
	"spedetl/internal/datasource/httpds"
	"spedetl/internal/extract"
	"spedetl/internal/layout"
	"spedetl/internal/metrics"
	"spedetl/internal/sped"
	"spedetl/internal/storage"
)

// run executes one job: parse every input file, optionally spill register
// rows to storage, optionally extract typed business data.
//
// When no storage sink is configured the input files parse concurrently,
// each with its own table and carry-state. With a sink the files run one
// after another so each gets its own run id and the database sees one
// ordered stream per file.
func run(ctx context.Context, job config.Job) error {
	variant, err := layout.ByName(job.Parser.Variant)
	if err != nil {
		return err
	}
	opts := parserOptions(variant, job.Parser.Options)

	paths, err := expandPaths(job.Source.Paths)
	if err != nil {
		return err
	}
	job.Source.Paths = paths

	var repo storage.Repository
	if job.Storage.Kind != "" {
		cfg := storage.Config{
			Kind:  job.Storage.Kind,
			DSN:   job.Storage.DB.DSN,
			Table: job.Storage.DB.Table,
		}
		repo, err = storage.New(ctx, cfg)
		if err != nil {
			return fmt.Errorf("open storage: %w", err)
		}
		defer repo.Close()

		if job.Storage.DB.AutoCreateTable {
			if err := storage.EnsureTable(ctx, cfg, repo); err != nil {
				return fmt.Errorf("create table: %w", err)
			}
		}
	}

	tables := make(map[string]*sped.Table, len(job.Source.Paths))
	if repo == nil && len(job.Source.Paths) > 1 {
		sources := make(map[string]datasource.Source, len(job.Source.Paths))
		for _, path := range job.Source.Paths {
			sources[path] = newSource(job.Source.Kind, path)
		}
		start := time.Now()
		tables, err = sped.ParseFiles(ctx, sources, opts)
		metrics.RecordStep(job.Job, "parse", err, time.Since(start))
		if err != nil {
			return err
		}
	} else {
		for _, path := range job.Source.Paths {
			fileOpts := opts
			if repo != nil {
				runID := uuid.NewString()
				sink := storage.NewSink(repo, runID)
				fileOpts.OnChunk = sink.Hook()
				log.Printf("run %s: %s -> %s.%s", runID, path, job.Storage.Kind, job.Storage.DB.Table)
			}
			start := time.Now()
			t, err := sped.Parse(ctx, newSource(job.Source.Kind, path), fileOpts)
			metrics.RecordStep(job.Job, "parse", err, time.Since(start))
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			tables[path] = t
		}
	}

	var results []*extract.Data
	for _, path := range job.Source.Paths {
		t := tables[path]
		report(job.Job, path, t)

		if !job.Extract.Enabled {
			continue
		}
		start := time.Now()
		data, err := extract.ForVariant(variant.Name, t)
		metrics.RecordStep(job.Job, "extract", err, time.Since(start))
		if err != nil {
			return fmt.Errorf("%s: extract: %w", path, err)
		}
		metrics.RecordRecords(job.Job, "sales_items", int64(len(data.SalesItems)))
		metrics.RecordRecords(job.Job, "purchase_items", int64(len(data.PurchaseItems)))
		metrics.RecordRecords(job.Job, "expenses", int64(len(data.Expenses)))
		results = append(results, data)
	}

	if job.Extract.Enabled {
		if err := writeResults(job.Extract.Output, results); err != nil {
			return err
		}
	}
	return nil
}

// expandPaths resolves manifest entries: a path starting with "@" names a
// file holding one input path (or URL) per line.
func expandPaths(paths []string) ([]string, error) {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if !strings.HasPrefix(p, "@") {
			out = append(out, p)
			continue
		}
		list, err := file.ReadList(strings.TrimPrefix(p, "@"))
		if err != nil {
			return nil, fmt.Errorf("read manifest %s: %w", p, err)
		}
		out = append(out, list...)
	}
	return out, nil
}

// newSource builds the data source for one input path. "http" paths are
// URLs; everything else reads from the local filesystem.
func newSource(kind, path string) datasource.Source {
	if kind == "http" {
		return httpds.NewRemote(nil, path)
	}
	return file.NewLocal(path)
}

// parserOptions merges the job's free-form parser options over the variant
// defaults.
func parserOptions(variant layout.Variant, o config.Options) sped.Options {
	opts := variant.Options()
	opts.Encoding = o.String("encoding", "")
	opts.Delimiter = o.Byte("delimiter", 0)
	opts.BatchSize = o.Int("batch_size", 0)

	switch o.String("mode", "auto") {
	case "strict":
		opts.Mode = sped.ModeStrict
	case "permissive":
		opts.Mode = sped.ModePermissive
	default:
		opts.Mode = sped.ModeAuto
	}
	return opts
}

// report logs per-file outcomes and feeds the record and diagnostic
// counters.
func report(jobName, path string, t *sped.Table) {
	log.Printf("%s: %s records", path, humanize.Comma(int64(t.Len())))
	metrics.RecordRecords(jobName, "parsed", int64(t.Len()))

	byCode := make(map[sped.DiagCode]int64)
	for _, d := range t.Diagnostics() {
		byCode[d.Code]++
	}
	for code, n := range byCode {
		log.Printf("%s: %d %s diagnostics", path, n, code)
		metrics.RecordDiagnostics(jobName, string(code), n)
	}
}

// writeResults encodes the extracted documents as JSON: a single object for
// one file, an array for several. Output path "-" or "" means stdout.
func writeResults(output string, results []*extract.Data) error {
	var out *os.File
	if output == "" || output == "-" {
		out = os.Stdout
	} else {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if len(results) == 1 {
		return enc.Encode(results[0])
	}
	return enc.Encode(results)
}
