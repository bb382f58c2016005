// This file adds a lightweight linter/validator for Job values. It performs
// static checks over a decoded Job and returns a list of issues (errors and
// warnings) that callers can surface in a CLI or tests.
package config

import (
	"fmt"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a configuration warning that should be surfaced
	// to users but may not necessarily block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding for a Job.
//
// Path is a dotted path into the config (e.g. "storage.kind",
// "parser.options.batch_size"). Message is human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a
// single error where one is expected.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// HasErrors reports whether any issue in the slice is an error.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ValidateJob performs static validation of a Job. It does not mutate the
// job; it returns a slice of Issue values and lets callers decide whether
// warnings are fatal.
func ValidateJob(j Job) []Issue {
	var issues []Issue

	if strings.TrimSpace(j.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "job",
			Message:  "job must not be empty; it labels metrics and stored rows",
		})
	}
	issues = append(issues, validateSource(j.Source)...)
	issues = append(issues, validateParser(j.Parser)...)
	issues = append(issues, validateStorage(j.Storage)...)

	return issues
}

func validateSource(s Source) []Issue {
	var issues []Issue

	if strings.TrimSpace(s.Kind) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "source.kind",
			Message:  "source.kind must not be empty",
		})
		return issues
	}

	// Unknown kinds are warnings for forward compatibility.
	if s.Kind != "file" && s.Kind != "http" {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "source.kind",
			Message:  fmt.Sprintf("unknown source kind %q; ensure a matching implementation exists", s.Kind),
		})
	}

	if len(s.Paths) == 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "source.paths",
			Message:  "at least one input path is required",
		})
	}
	for i, p := range s.Paths {
		if strings.TrimSpace(p) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     fmt.Sprintf("source.paths[%d]", i),
				Message:  "path must not be empty",
			})
		}
	}
	return issues
}

func validateParser(p Parser) []Issue {
	var issues []Issue

	switch strings.ToLower(strings.TrimSpace(p.Variant)) {
	case "fiscal", "contribuicoes", "ecd":
	case "":
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "parser.variant",
			Message:  "parser.variant must be one of fiscal, contribuicoes, ecd",
		})
	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "parser.variant",
			Message:  fmt.Sprintf("unknown variant %q (want fiscal, contribuicoes or ecd)", p.Variant),
		})
	}

	switch p.Options.String("mode", "auto") {
	case "auto", "strict", "permissive":
	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "parser.options.mode",
			Message:  "mode must be auto, strict or permissive",
		})
	}

	if bs := p.Options.Int("batch_size", 0); bs < 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "parser.options.batch_size",
			Message:  "batch_size must be positive",
		})
	}
	return issues
}

func validateStorage(s Storage) []Issue {
	var issues []Issue

	if strings.TrimSpace(s.Kind) == "" {
		// storage is optional
		return issues
	}

	switch s.Kind {
	case "sqlite", "postgres":
	default:
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "storage.kind",
			Message:  fmt.Sprintf("unknown storage kind %q; ensure a matching backend is registered", s.Kind),
		})
	}

	if strings.TrimSpace(s.DB.DSN) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.db.dsn",
			Message:  "dsn must not be empty when storage is enabled",
		})
	}
	if strings.TrimSpace(s.DB.Table) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.db.table",
			Message:  "table must not be empty when storage is enabled",
		})
	}
	return issues
}
