package config

import (
	"encoding/json"
	"strings"
	"testing"
)

func validJob() Job {
	return Job{
		Job:    "efd_junho",
		Source: Source{Kind: "file", Paths: []string{"data/efd.txt"}},
		Parser: Parser{Variant: "fiscal", Options: Options{}},
		Storage: Storage{
			Kind: "sqlite",
			DB:   DBConfig{DSN: "sped.db", Table: "sped_registers"},
		},
	}
}

func TestValidateJobAccepts(t *testing.T) {
	if issues := ValidateJob(validJob()); len(issues) != 0 {
		t.Fatalf("unexpected issues: %v", issues)
	}
}

func TestValidateJobFindings(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Job)
		path   string
	}{
		{"empty job name", func(j *Job) { j.Job = "" }, "job"},
		{"empty source kind", func(j *Job) { j.Source.Kind = "" }, "source.kind"},
		{"no paths", func(j *Job) { j.Source.Paths = nil }, "source.paths"},
		{"blank path", func(j *Job) { j.Source.Paths = []string{" "} }, "source.paths[0]"},
		{"missing variant", func(j *Job) { j.Parser.Variant = "" }, "parser.variant"},
		{"bogus variant", func(j *Job) { j.Parser.Variant = "nfe" }, "parser.variant"},
		{"bogus mode", func(j *Job) { j.Parser.Options = Options{"mode": "yolo"} }, "parser.options.mode"},
		{"negative batch size", func(j *Job) { j.Parser.Options = Options{"batch_size": float64(-1)} }, "parser.options.batch_size"},
		{"storage without dsn", func(j *Job) { j.Storage.DB.DSN = "" }, "storage.db.dsn"},
		{"storage without table", func(j *Job) { j.Storage.DB.Table = "" }, "storage.db.table"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			job := validJob()
			c.mutate(&job)
			issues := ValidateJob(job)
			if !HasErrors(issues) {
				t.Fatalf("expected an error issue, got %v", issues)
			}
			found := false
			for _, iss := range issues {
				if iss.Path == c.path && iss.Severity == SeverityError {
					found = true
				}
			}
			if !found {
				t.Fatalf("no error at path %q in %v", c.path, issues)
			}
		})
	}
}

func TestValidateJobWarningsAreNotFatal(t *testing.T) {
	job := validJob()
	job.Source.Kind = "s3"
	issues := ValidateJob(job)
	if HasErrors(issues) {
		t.Fatalf("unknown source kind should only warn: %v", issues)
	}
	if len(issues) == 0 {
		t.Fatal("unknown source kind should produce a warning")
	}
}

func TestStorageIsOptional(t *testing.T) {
	job := validJob()
	job.Storage = Storage{}
	if issues := ValidateJob(job); len(issues) != 0 {
		t.Fatalf("empty storage should validate cleanly: %v", issues)
	}
}

// An explicit null options object must decode to a usable empty map, not nil,
// and the typed getters must tolerate absent keys either way.
func TestOptionsDecoding(t *testing.T) {
	var p Parser
	if err := json.Unmarshal([]byte(`{"variant":"fiscal","options":null}`), &p); err != nil {
		t.Fatal(err)
	}
	if p.Options == nil {
		t.Fatal("null options must decode to an empty map")
	}
	if got := p.Options.String("mode", "auto"); got != "auto" {
		t.Fatalf("default mode = %q", got)
	}

	raw := `{"variant":"fiscal","options":{"encoding":"utf-8","batch_size":5000,"delimiter":"|","strict":true}}`
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatal(err)
	}
	if p.Options.String("encoding", "") != "utf-8" {
		t.Fatal("string option lost")
	}
	if p.Options.Int("batch_size", 0) != 5000 {
		t.Fatal("int option lost (JSON numbers decode as float64)")
	}
	if p.Options.Byte("delimiter", 0) != '|' {
		t.Fatal("byte option lost")
	}
	if !p.Options.Bool("strict", false) {
		t.Fatal("bool option lost")
	}

	// getters on a nil map fall back to defaults
	var none Options
	if none.String("mode", "auto") != "auto" || none.Int("batch_size", 7) != 7 {
		t.Fatal("nil options must return defaults")
	}
}

func TestIssueError(t *testing.T) {
	iss := Issue{Severity: SeverityError, Path: "job", Message: "job must not be empty"}
	if !strings.Contains(iss.Error(), "job must not be empty") || !strings.Contains(iss.Error(), "job") {
		t.Fatalf("Error() = %q", iss.Error())
	}
}
