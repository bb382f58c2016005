// Package datasource defines the byte-source contract consumed by the SPED
// parser. A Source must be reopenable: the parser re-reads the whole input
// from the start when it falls back from strict to permissive decoding, so
// Open may be called more than once per parse.
package datasource

import (
	"context"
	"io"
)

type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}
