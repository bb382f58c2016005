package sped

import "fmt"

// DiagCode classifies a non-fatal parse finding.
type DiagCode string

const (
	// DiagOrphanedChild marks a record whose declared parent register has
	// not appeared yet; the record is kept with no parent.
	DiagOrphanedChild DiagCode = "orphaned_child"

	// DiagRaggedFields marks a line that was padded or truncated to the
	// declared column count in permissive mode.
	DiagRaggedFields DiagCode = "ragged_fields"

	// DiagInvalidEncoding marks a line on which invalid byte sequences were
	// replaced with U+FFFD in permissive mode.
	DiagInvalidEncoding DiagCode = "invalid_encoding"

	// DiagStrictFallback is emitted once, first, when a failed strict pass
	// caused the whole source to be re-read permissively.
	DiagStrictFallback DiagCode = "strict_fallback"
)

// Diagnostic is one ordered, non-fatal parse finding. Diagnostics are
// surfaced on the Table and never abort a parse.
type Diagnostic struct {
	Code    DiagCode
	Line    int   // 1-based physical line, 0 when not line-scoped
	RowID   int64 // affected row id, NoParent when not row-scoped
	Message string
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("%s: line %d: %s", d.Code, d.Line, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Code, d.Message)
}
