// Package config defines the canonical, JSON-serializable configuration
// model for SPED processing runs. It is intentionally small, explicit, and
// dependency-free so that job files can be loaded from disk and passed
// through the program without additional glue code.
//
// Design goals:
//
//  1. Stability: changes to this package should be additive and backwards-
//     compatible whenever possible.
//  2. Clarity: Go field names mirror the JSON structure used in job files.
//  3. Minimalism: no third-party config libraries; decoding is performed by
//     the standard library, with a light Options helper for typed access.
//
// Example (trimmed):
//
//	{
//	  "job":     "efd_2024_06",
//	  "source":  { "kind": "file", "paths": ["data/efd_junho.txt"] },
//	  "parser":  { "variant": "fiscal", "options": { "mode": "auto", "batch_size": 200000 } },
//	  "extract": { "enabled": true, "output": "out/items.json" },
//	  "storage": { "kind": "sqlite", "db": { "dsn": "sped.db", "table": "sped_registers" } },
//	  "metrics": { "pushgateway_url": "http://pushgateway:9091" }
//	}
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Job describes a full SPED processing run. It is the top-level object
// decoded from a job file.
type Job struct {
	// Job names the run; it labels metrics and tags stored rows.
	Job string `json:"job"`

	// Source describes where the input files come from.
	Source Source `json:"source"`

	// Parser selects the SPED variant and tokenizer behavior.
	Parser Parser `json:"parser"`

	// Extract controls the typed business extraction step.
	Extract Extract `json:"extract"`

	// Storage describes where parsed register rows are written. An empty
	// kind disables the database sink.
	Storage Storage `json:"storage"`

	// Metrics configures the optional Pushgateway backend.
	Metrics Metrics `json:"metrics"`
}

// Source identifies the input data. Additional kinds can be added over time.
type Source struct {
	// Kind selects the source implementation: "file" (local paths) or
	// "http" (paths are URLs).
	Kind string `json:"kind"`

	// Paths lists the input files. Several files parse concurrently, each
	// into its own table.
	Paths []string `json:"paths"`
}

// Parser selects the file variant and carries tokenizer options.
type Parser struct {
	// Variant is the SPED file type: "fiscal", "contribuicoes" or "ecd".
	Variant string `json:"variant"`

	// Options is a free-form map for tokenizer settings. Typical keys:
	//   encoding (string), delimiter (string), batch_size (int),
	//   mode (string: auto|strict|permissive)
	Options Options `json:"options"`
}

// Extract controls typed extraction over the parsed table.
type Extract struct {
	// Enabled turns the extraction step on.
	Enabled bool `json:"enabled"`

	// Output is the path the extracted JSON document is written to;
	// "-" or empty writes to stdout.
	Output string `json:"output"`
}

// Storage selects the sink used to persist register rows.
type Storage struct {
	// Kind selects the storage implementation ("sqlite", "postgres").
	// Empty disables storage.
	Kind string `json:"kind"`

	// DB configures the database sink.
	DB DBConfig `json:"db"`
}

// DBConfig configures the database sink.
type DBConfig struct {
	// DSN is the backend connection string.
	DSN string `json:"dsn"`

	// Table is the destination table name, schema-qualified where the
	// backend supports it.
	Table string `json:"table"`

	// AutoCreateTable creates the destination table before loading.
	AutoCreateTable bool `json:"auto_create_table"`
}

// Metrics configures metrics publication.
type Metrics struct {
	// PushgatewayURL is the base URL of a Prometheus Pushgateway. Empty
	// leaves the no-op backend installed.
	PushgatewayURL string `json:"pushgateway_url"`
}

// Load decodes a Job from a JSON file.
func Load(path string) (Job, error) {
	var job Job
	b, err := os.ReadFile(path)
	if err != nil {
		return job, fmt.Errorf("read job file: %w", err)
	}
	if err := json.Unmarshal(b, &job); err != nil {
		return job, fmt.Errorf("decode job file %s: %w", path, err)
	}
	return job, nil
}

// Options is a small helper to fetch typed values from arbitrary JSON maps
// without introducing third-party configuration libraries. It performs only
// minimal type coercion and returns provided defaults when a key is absent
// or of an unexpected type.
type Options map[string]any

// String returns the string value for key or def if key is missing or not a string.
func (o Options) String(key, def string) string {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// Bool returns the bool value for key or def if key is missing or not a bool.
func (o Options) Bool(key string, def bool) bool {
	if v, ok := o[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// Int returns the int value for key or def. JSON numbers decode as float64,
// so this method accepts float64 and casts to int.
func (o Options) Int(key string, def int) int {
	if v, ok := o[key]; ok {
		switch n := v.(type) {
		case float64:
			return int(n)
		case int:
			return n
		}
	}
	return def
}

// Byte returns the first byte of a string value for key, or def when the key
// is missing or empty. Useful for single-character settings such as the
// field delimiter.
func (o Options) Byte(key string, def byte) byte {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok && len(s) > 0 {
			return s[0]
		}
	}
	return def
}

// UnmarshalJSON implements json.Unmarshaler so that a missing or null
// "options" object decodes to a non-nil, empty Options map. This removes the
// need for nil checks at call sites.
func (o *Options) UnmarshalJSON(b []byte) error {
	var tmp map[string]any
	if len(b) == 0 || string(b) == "null" {
		*o = Options{}
		return nil
	}
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	*o = tmp
	return nil
}
