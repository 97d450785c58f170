package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/digits"
	"github.com/aretw0/digits/internal/config"
	"github.com/aretw0/digits/pkg/adapters/file"
	"github.com/aretw0/digits/pkg/adapters/memory"
	"github.com/aretw0/digits/pkg/adapters/redis"
	"github.com/aretw0/digits/pkg/observability"
	"github.com/aretw0/digits/pkg/ports"
)

// Services bundles the engine with the collaborators the commands expose.
type Services struct {
	Engine  *digits.Engine
	Metrics *observability.Metrics
	close   []func() error
}

// Close releases backend connections.
func (s *Services) Close() error {
	var first error
	for _, fn := range s.close {
		if err := fn(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// NewServices initializes an engine from configuration with standard CLI conventions.
func NewServices(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Services, error) {
	svc := &Services{Metrics: observability.NewMetrics()}

	cache, closer, err := createCache(ctx, cfg.Cache, logger)
	if err != nil {
		return nil, err
	}
	if closer != nil {
		svc.close = append(svc.close, closer)
	}

	opts := []digits.Option{
		digits.WithLogger(logger),
		digits.WithMaxOperands(cfg.MaxOperands),
		digits.WithLifecycleHooks(combineHooks(svc.Metrics.Hooks(), createDebugHooks(logger))),
	}
	if cache != nil {
		opts = append(opts, digits.WithCache(cache))
	}

	svc.Engine = digits.New(opts...)
	return svc, nil
}

func createCache(ctx context.Context, cfg config.CacheConfig, logger *slog.Logger) (ports.ResultCache, func() error, error) {
	switch cfg.Backend {
	case config.BackendNone:
		return nil, nil, nil
	case config.BackendMemory:
		return memory.NewStore(), nil, nil
	case config.BackendFile:
		logger.Debug("Using file result cache", "dir", cfg.File.Dir)
		return file.New(cfg.File.Dir), nil, nil
	case config.BackendRedis:
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithPrefix(cfg.Redis.Prefix),
			redis.WithTTL(time.Duration(cfg.Redis.TTL)),
		)

		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := store.Ping(pingCtx); err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		logger.Debug("Using redis result cache", "addr", cfg.Redis.Addr, "prefix", cfg.Redis.Prefix)
		return store, store.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
}
