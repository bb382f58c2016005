package postgres

import (
	"context"
	"reflect"
	"testing"

	"github.com/jackc/pgx/v5"

	"spedetl/internal/storage"
)

func TestNewRepositoryRequiresTable(t *testing.T) {
	_, err := NewRepository(context.Background(), storage.Config{DSN: "postgres://localhost/db"})
	if err == nil {
		t.Fatal("expected error for empty table")
	}
}

func TestPgFQN(t *testing.T) {
	cases := map[string]string{
		"sped_registers":        `"sped_registers"`,
		"public.sped_registers": `"public"."sped_registers"`,
		`odd"name`:              `"odd""name"`,
	}
	for in, want := range cases {
		if got := pgFQN(in); got != want {
			t.Errorf("pgFQN(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestSplitFQN(t *testing.T) {
	if got := splitFQN("public.sped_registers"); !reflect.DeepEqual(got, pgx.Identifier{"public", "sped_registers"}) {
		t.Fatalf("splitFQN = %v", got)
	}
	if got := splitFQN("sped_registers"); !reflect.DeepEqual(got, pgx.Identifier{"sped_registers"}) {
		t.Fatalf("splitFQN = %v", got)
	}
}
