package ports

import (
	"context"

	"github.com/aretw0/digits/pkg/domain"
)

// ResultCache defines the interface for storing query results.
// Searches are pure functions of their query, so a cached result never goes stale;
// adapters may still expire entries to bound storage.
type ResultCache interface {
	// Save stores the result under the given query key.
	Save(ctx context.Context, key string, result *domain.Result) error

	// Load retrieves the result for a query key.
	// Returns domain.ErrResultNotFound if the key does not exist.
	Load(ctx context.Context, key string) (*domain.Result, error)

	// Delete removes the result for a query key.
	Delete(ctx context.Context, key string) error

	// List returns the keys currently stored.
	List(ctx context.Context) ([]string, error)
}
