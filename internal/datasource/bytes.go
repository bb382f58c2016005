package datasource

import (
	"bytes"
	"context"
	"io"
)

// Bytes is an in-memory data source. It can be reopened any number of times,
// which makes it suitable both for tests and for callers that already hold
// the full file content (the SPED format is routinely delivered as an
// uploaded blob).
type Bytes struct{ data []byte }

// NewBytes returns a data source backed by data. The slice is not copied;
// the caller must not mutate it while a parse is in progress.
func NewBytes(data []byte) *Bytes { return &Bytes{data: data} }

// Open returns a fresh reader positioned at the start of the data.
func (b *Bytes) Open(ctx context.Context) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return io.NopCloser(bytes.NewReader(b.data)), nil
}
