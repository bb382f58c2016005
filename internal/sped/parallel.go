package sped

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"spedetl/internal/datasource"
)

// ParseFiles parses several independent sources concurrently, one goroutine
// per source, each with its own table and carry-state. The first failure
// cancels the remaining parses. Within each file the pipeline stays
// single-threaded; concurrency here is strictly across files.
func ParseFiles(ctx context.Context, sources map[string]datasource.Source, opts Options) (map[string]*Table, error) {
	g, ctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	out := make(map[string]*Table, len(sources))
	for name, src := range sources {
		name, src := name, src
		g.Go(func() error {
			t, err := Parse(ctx, src, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			mu.Lock()
			out[name] = t
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
