package datasource

import (
	"context"
	"io"
	"testing"
)

// The parser may restart a failed strict pass from the top, so a source must
// yield the full content again on a second Open.
func TestBytesReopens(t *testing.T) {
	src := NewBytes([]byte("0000|01\n"))

	for i := 0; i < 2; i++ {
		rc, err := src.Open(context.Background())
		if err != nil {
			t.Fatalf("open %d: %v", i, err)
		}
		b, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read %d: %v", i, err)
		}
		if string(b) != "0000|01\n" {
			t.Fatalf("open %d read %q", i, b)
		}
	}
}

func TestBytesHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewBytes(nil).Open(ctx); err != context.Canceled {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
