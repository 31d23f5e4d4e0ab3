// Package cache defines plan caches keyed by model.PlanInput.Key.
package cache

import (
	"context"

	"github.com/brandonleon/carbsmart/internal/domain/model"
)

// Cache defines the interface for plan cache operations. Implementations
// treat backend failures as misses.
type Cache interface {
	Get(ctx context.Context, key string) (model.Plan, bool)
	Set(ctx context.Context, key string, value model.Plan)
	Invalidate(ctx context.Context, key string)
	Clear(ctx context.Context)
	Stop()
}

// Metrics provides cache performance metrics.
type Metrics struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	Capacity  int
}

// CacheWithMetrics extends Cache with metrics reporting.
type CacheWithMetrics interface {
	Cache
	Metrics() Metrics
}
