package cli

import (
	"context"
	"log/slog"

	"github.com/aretw0/digits/pkg/domain"
)

// createDebugHooks logs every answered query at debug level.
func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSearch: func(ctx context.Context, e *domain.SearchEvent) {
			logger.Debug("Query answered",
				"kind", e.Kind,
				"key", e.Key,
				"cache_hit", e.CacheHit,
				"duration", e.Duration,
				"found", e.Found,
			)
		},
		OnCacheError: func(ctx context.Context, e *domain.CacheEvent) {
			logger.Debug("Cache error", "op", e.Op, "key", e.Key, "err", e.Err)
		},
	}
}

// combineHooks calls each set of hooks in order.
func combineHooks(all ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSearch: func(ctx context.Context, e *domain.SearchEvent) {
			for _, h := range all {
				if h.OnSearch != nil {
					h.OnSearch(ctx, e)
				}
			}
		},
		OnCacheError: func(ctx context.Context, e *domain.CacheEvent) {
			for _, h := range all {
				if h.OnCacheError != nil {
					h.OnCacheError(ctx, e)
				}
			}
		},
	}
}
