// Package storage contains the backend-agnostic contract for spilling
// parsed register rows to a database, plus the factory that backend
// packages register themselves with at init time.
package storage

import (
	"context"
	"fmt"
	"sync"
)

// Config selects and configures a storage backend.
type Config struct {
	Kind  string // registered backend kind, e.g. "sqlite" or "postgres"
	DSN   string // backend connection string
	Table string // destination table for register rows
}

// Repository is the minimal write surface a register sink needs: a bulk
// insert aligned to an ordered column list, arbitrary DDL execution, and
// cleanup.
type Repository interface {
	CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error)
	Exec(ctx context.Context, sql string) error
	Close()
}

// Factory opens a Repository for one backend kind.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

// DDLBootstrapper creates the destination table for one backend kind.
type DDLBootstrapper func(ctx context.Context, repo Repository, table string) error

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
	ddlFns    = map[string]DDLBootstrapper{}
)

// Register installs (or replaces) the factory for a backend kind. Backend
// packages call it from init(); see internal/storage/all.
func Register(kind string, fn Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[kind] = fn
}

// RegisterDDL installs (or replaces) the DDL bootstrapper for a backend
// kind.
func RegisterDDL(kind string, fn DDLBootstrapper) {
	mu.Lock()
	defer mu.Unlock()
	ddlFns[kind] = fn
}

// New opens a Repository for cfg.Kind using the registered factory.
func New(ctx context.Context, cfg Config) (Repository, error) {
	mu.RLock()
	fn, ok := factories[cfg.Kind]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no storage backend registered for kind=%q", cfg.Kind)
	}
	return fn(ctx, cfg)
}

// EnsureTable creates the destination table via the backend's registered
// DDL bootstrapper.
func EnsureTable(ctx context.Context, cfg Config, repo Repository) error {
	mu.RLock()
	fn, ok := ddlFns[cfg.Kind]
	mu.RUnlock()
	if !ok {
		return fmt.Errorf("no DDL bootstrapper registered for kind=%q", cfg.Kind)
	}
	return fn(ctx, repo, cfg.Table)
}
