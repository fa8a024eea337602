package catalog

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Cache loads a source once and hands out the same catalog afterwards.
// A failed load is not cached, so the next call retries.
type Cache struct {
	source Source
	logger *zap.Logger

	mu      sync.Mutex
	catalog *Catalog
}

// NewCache wraps source.
func NewCache(source Source, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{source: source, logger: logger}
}

// Get returns the cached catalog, loading it on first use.
func (c *Cache) Get(ctx context.Context) (*Catalog, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.catalog != nil {
		return c.catalog, nil
	}

	jobs, err := c.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog from %s: %w", c.source.Name(), err)
	}

	cat, err := New(jobs)
	if err != nil {
		return nil, fmt.Errorf("loading catalog from %s: %w", c.source.Name(), err)
	}

	c.logger.Info("job catalog loaded",
		zap.String("source", c.source.Name()),
		zap.Int("jobs", cat.Len()),
	)

	c.catalog = cat
	return cat, nil
}
