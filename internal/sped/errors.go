package sped

import (
	"errors"
	"fmt"
)

// ErrNoRecords reports a source that opened successfully but yielded zero
// decodable records. An empty file and a file of only blank lines both land
// here; a file holding just an opening and a closing register does not.
var ErrNoRecords = errors.New("sped: source contains no decodable records")

// DecodeError reports an invalid byte sequence encountered in strict mode.
// Offset is the absolute byte offset of the offending byte in the source.
type DecodeError struct {
	Offset int64
	Line   int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("sped: invalid byte sequence at offset %d (line %d)", e.Offset, e.Line)
}

// MalformedLineError reports a line whose field count exceeds the declared
// column count. Only strict mode produces it; permissive mode truncates the
// line and records a diagnostic instead.
type MalformedLineError struct {
	Line int
	Got  int
	Want int
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("sped: line %d has %d fields, layout declares %d", e.Line, e.Got, e.Want)
}
