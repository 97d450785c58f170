package digits

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/digits/internal/keylock"
	"github.com/aretw0/digits/internal/logging"
	"github.com/aretw0/digits/pkg/domain"
	"github.com/aretw0/digits/pkg/ports"
	"github.com/aretw0/digits/pkg/search"
)

// DefaultMaxOperands bounds the operand count accepted by an Engine.
const DefaultMaxOperands = 8

// Engine is the high-level entry point for the Digits library.
// It wraps the search package with input limits, result caching, hooks and logging.
// An Engine is safe for concurrent use when its cache is.
type Engine struct {
	cache       ports.ResultCache
	inflight    *keylock.Locks
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	maxOperands int
	now         func() time.Time
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithCache stores results in the given cache and serves repeated queries from it.
func WithCache(c ports.ResultCache) Option {
	return func(e *Engine) {
		e.cache = c
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMaxOperands sets the largest operand count a query may carry.
// Values below 1 disable the limit.
func WithMaxOperands(n int) Option {
	return func(e *Engine) {
		e.maxOperands = n
	}
}

// New initializes a new Digits Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{
		inflight:    keylock.New(),
		maxOperands: DefaultMaxOperands,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	return eng
}

// Solve finds operation traces that produce target from operands.
// With all=false the result carries at most one, shortest, solution.
// Finding no solution is not an error.
func (e *Engine) Solve(ctx context.Context, target int, operands []int, all bool) (*domain.Result, error) {
	if err := e.validate(operands); err != nil {
		return nil, err
	}
	key := domain.SolveKey(target, operands, all)

	return e.answer(ctx, domain.KindSolve, key, func() *domain.Result {
		solutions, stats := search.SolveStats(target, operands, all)
		return &domain.Result{
			Kind:      domain.KindSolve,
			Target:    target,
			Operands:  sortedCopy(operands),
			All:       all,
			Solutions: solutions,
			Stats:     stats,
		}
	})
}

// Targets lists every value reachable from operands, ascending.
func (e *Engine) Targets(ctx context.Context, operands []int) (*domain.Result, error) {
	if err := e.validate(operands); err != nil {
		return nil, err
	}
	key := domain.TargetsKey(operands)

	return e.answer(ctx, domain.KindTargets, key, func() *domain.Result {
		values, stats := search.TargetsStats(operands)
		return &domain.Result{
			Kind:     domain.KindTargets,
			Operands: sortedCopy(operands),
			Values:   values,
			Stats:    stats,
		}
	})
}

func (e *Engine) validate(operands []int) error {
	if len(operands) == 0 {
		return domain.ErrNoOperands
	}
	if e.maxOperands > 0 && len(operands) > e.maxOperands {
		return fmt.Errorf("%w: got %d, limit is %d", domain.ErrTooManyOperands, len(operands), e.maxOperands)
	}
	return nil
}

// answer serves key from the cache when possible, otherwise runs compute and stores the result.
// Cache failures are reported through hooks and logs but never fail the query.
// With a cache, identical concurrent queries are serialized so only the first one searches.
func (e *Engine) answer(ctx context.Context, kind domain.ResultKind, key string, compute func() *domain.Result) (*domain.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if e.cache == nil {
		return e.run(ctx, kind, key, compute), nil
	}

	var result *domain.Result
	err := e.inflight.WithLock(key, func() error {
		// The wait may have outlived the caller.
		if err := ctx.Err(); err != nil {
			return err
		}
		result = e.run(ctx, kind, key, compute)
		return nil
	})
	return result, err
}

func (e *Engine) run(ctx context.Context, kind domain.ResultKind, key string, compute func() *domain.Result) *domain.Result {
	start := e.now()

	if result, ok := e.lookup(ctx, key); ok {
		e.emit(ctx, kind, key, true, start, result)
		return result
	}

	result := compute()
	e.logger.Debug("search finished",
		"kind", kind,
		"key", key,
		"expanded", result.Stats.Expanded,
		"visited", result.Stats.Visited,
		"depth", result.Stats.Depth,
	)

	if e.cache != nil {
		if err := e.cache.Save(ctx, key, result); err != nil {
			e.cacheError(ctx, "save", key, err)
		}
	}

	e.emit(ctx, kind, key, false, start, result)
	return result
}

func (e *Engine) lookup(ctx context.Context, key string) (*domain.Result, bool) {
	if e.cache == nil {
		return nil, false
	}
	result, err := e.cache.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrResultNotFound) {
			e.cacheError(ctx, "load", key, err)
		}
		return nil, false
	}
	e.logger.Debug("cache hit", "key", key)
	return result, true
}

func (e *Engine) cacheError(ctx context.Context, op, key string, err error) {
	e.logger.Warn("result cache failure", "op", op, "key", key, "error", err)
	if e.hooks.OnCacheError != nil {
		e.hooks.OnCacheError(ctx, &domain.CacheEvent{
			EventBase: domain.EventBase{Timestamp: e.now(), Type: domain.EventCacheError},
			Op:        op,
			Key:       key,
			Err:       err,
		})
	}
}

func (e *Engine) emit(ctx context.Context, kind domain.ResultKind, key string, hit bool, start time.Time, result *domain.Result) {
	if e.hooks.OnSearch == nil {
		return
	}
	found := len(result.Solutions)
	if kind == domain.KindTargets {
		found = len(result.Values)
	}
	now := e.now()
	e.hooks.OnSearch(ctx, &domain.SearchEvent{
		EventBase: domain.EventBase{Timestamp: now, Type: domain.EventSearch},
		Kind:      kind,
		Key:       key,
		CacheHit:  hit,
		Duration:  now.Sub(start),
		Stats:     result.Stats,
		Found:     found,
	})
}

func sortedCopy(operands []int) []int {
	return domain.NewState(operands).Operands
}
