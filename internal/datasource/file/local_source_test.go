package file

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalOpenReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "efd.txt")
	if err := os.WriteFile(path, []byte("0000|01\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	src := NewLocal(path)
	rc, err := src.Open(context.Background())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()

	b, err := io.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "0000|01\n" {
		t.Fatalf("read %q", b)
	}
}

func TestLocalOpenMissingFile(t *testing.T) {
	src := NewLocal(filepath.Join(t.TempDir(), "absent.txt"))
	_, err := src.Open(context.Background())
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want os.ErrNotExist", err)
	}
}

func TestLocalOpenCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewLocal("whatever").Open(ctx); err != context.Canceled {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
