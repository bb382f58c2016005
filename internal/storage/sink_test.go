package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"spedetl/internal/sped"
)

// fakeRepo captures CopyFrom calls in memory.
type fakeRepo struct {
	columns []string
	rows    [][]any
	copyErr error
}

func (f *fakeRepo) CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error) {
	if f.copyErr != nil {
		return 0, f.copyErr
	}
	f.columns = columns
	f.rows = append(f.rows, rows...)
	return int64(len(rows)), nil
}

func (f *fakeRepo) Exec(ctx context.Context, sql string) error { return nil }
func (f *fakeRepo) Close()                                     {}

func TestSinkWrite(t *testing.T) {
	repo := &fakeRepo{}
	sink := NewSink(repo, "run-1")

	err := sink.Write(context.Background(), []sped.Record{
		{RowID: 0, ParentID: sped.NoParent, Reg: "0000", Fields: []string{"0000", "01"}, Line: 1},
		{RowID: 1, ParentID: 0, Reg: "C170", Fields: []string{"C170", "A", ""}, Line: 2},
	})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	if len(repo.columns) != 6 || repo.columns[0] != "run_id" || repo.columns[5] != "fields" {
		t.Fatalf("columns = %v, want %v", repo.columns, RegisterColumns)
	}
	if len(repo.rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(repo.rows))
	}

	root := repo.rows[0]
	if root[0] != "run-1" || root[1] != int64(0) || root[3] != "0000" || root[4] != 1 {
		t.Fatalf("root row = %v", root)
	}
	if root[2] != nil {
		t.Fatalf("root parent_id = %v, want nil", root[2])
	}

	child := repo.rows[1]
	if child[2] != int64(0) {
		t.Fatalf("child parent_id = %v, want 0", child[2])
	}
	// fields travel as a JSON array, trailing empties included
	if child[5] != `["C170","A",""]` {
		t.Fatalf("child fields = %v", child[5])
	}

	if sink.Total() != 2 {
		t.Fatalf("Total() = %d, want 2", sink.Total())
	}
}

func TestSinkSkipsEmptyChunks(t *testing.T) {
	repo := &fakeRepo{}
	sink := NewSink(repo, "run-1")
	if err := sink.Write(context.Background(), nil); err != nil {
		t.Fatalf("Write(nil): %v", err)
	}
	if len(repo.rows) != 0 || sink.Total() != 0 {
		t.Fatal("empty chunk must not reach the repository")
	}
}

func TestSinkPropagatesCopyErrors(t *testing.T) {
	boom := errors.New("disk full")
	sink := NewSink(&fakeRepo{copyErr: boom}, "run-1")

	err := sink.Write(context.Background(), []sped.Record{
		{RowID: 0, ParentID: sped.NoParent, Reg: "0000", Fields: []string{"0000"}, Line: 1},
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want the repository error", err)
	}
	if !strings.Contains(err.Error(), "copy") {
		t.Fatalf("err = %v, want copy context", err)
	}
}

func TestFactoryRegistry(t *testing.T) {
	Register("fake", func(ctx context.Context, cfg Config) (Repository, error) {
		return &fakeRepo{}, nil
	})
	RegisterDDL("fake", func(ctx context.Context, repo Repository, table string) error {
		return repo.Exec(ctx, "CREATE TABLE "+table)
	})

	cfg := Config{Kind: "fake", DSN: "x", Table: "t"}
	repo, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer repo.Close()
	if err := EnsureTable(context.Background(), cfg, repo); err != nil {
		t.Fatalf("EnsureTable: %v", err)
	}

	if _, err := New(context.Background(), Config{Kind: "nope"}); err == nil {
		t.Fatal("expected error for unregistered kind")
	}
	if err := EnsureTable(context.Background(), Config{Kind: "nope"}, repo); err == nil {
		t.Fatal("expected error for unregistered DDL kind")
	}
}
