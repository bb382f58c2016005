package sped

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
)

// decoder turns raw line bytes from the source encoding into UTF-8 strings.
// SPED files are Latin-1 by decree, but real exports show up in Windows-1252
// and UTF-8 often enough that the encoding is caller-selectable.
type decoder struct {
	cm   *charmap.Charmap // nil when the source is UTF-8
	utf8 bool
}

func newDecoder(name string) (*decoder, error) {
	switch strings.ToLower(name) {
	case "utf8", "utf-8":
		return &decoder{utf8: true}, nil
	case "latin1", "latin-1":
		// htmlindex folds latin1 into windows-1252 per the WHATWG index,
		// which would silently accept 0x80..0x9F. Use the ISO table directly.
		return &decoder{cm: charmap.ISO8859_1}, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", name, err)
	}
	cm, ok := enc.(*charmap.Charmap)
	if !ok {
		return nil, fmt.Errorf("unsupported encoding %q: not a single-byte charmap", name)
	}
	return &decoder{cm: cm}, nil
}

// decodeLine converts one raw line to UTF-8. In strict mode an invalid byte
// fails the line with a *DecodeError carrying its absolute offset; in
// permissive mode invalid bytes become U+FFFD and subs reports how many were
// replaced. base is the absolute offset of the line's first byte.
func (d *decoder) decodeLine(raw []byte, lineNo int, base int64, strict bool) (string, int, error) {
	if d.utf8 {
		if utf8.Valid(raw) {
			return string(raw), 0, nil
		}
		if strict {
			return "", 0, &DecodeError{Offset: base + int64(firstInvalidUTF8(raw)), Line: lineNo}
		}
		decoded := strings.ToValidUTF8(string(raw), string(utf8.RuneError))
		return decoded, countInvalidUTF8(raw), nil
	}

	var sb strings.Builder
	sb.Grow(len(raw))
	subs := 0
	for i, b := range raw {
		r := d.cm.DecodeByte(b)
		if r == utf8.RuneError {
			if strict {
				return "", 0, &DecodeError{Offset: base + int64(i), Line: lineNo}
			}
			subs++
		}
		sb.WriteRune(r)
	}
	return sb.String(), subs, nil
}

func firstInvalidUTF8(raw []byte) int {
	for i := 0; i < len(raw); {
		r, size := utf8.DecodeRune(raw[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return 0
}

func countInvalidUTF8(raw []byte) int {
	n := 0
	for i := 0; i < len(raw); {
		r, size := utf8.DecodeRune(raw[i:])
		if r == utf8.RuneError && size == 1 {
			n++
		}
		i += size
	}
	return n
}

// tokenize splits a decoded line into its ordered fields.
//
// SPED lines open and close with the delimiter (`|C100|0|...|`), so the
// split yields an empty leading token that carries no data and is dropped.
// Every other empty token is a real empty field and is preserved, including
// trailing ones. A line whose register code token is empty (a bare run of
// delimiters, or whitespace) yields nil.
func tokenize(line string, delim byte) []string {
	line = strings.TrimRight(line, "\r")
	if strings.TrimSpace(line) == "" {
		return nil
	}
	fields := strings.Split(line, string(delim))
	if len(fields) > 0 && fields[0] == "" {
		fields = fields[1:]
	}
	if len(fields) == 0 || strings.TrimSpace(fields[0]) == "" {
		return nil
	}
	return fields
}
