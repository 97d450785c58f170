package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/digits/pkg/domain"
)

// Store implements ports.ResultCache in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Result
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Result),
	}
}

// Save stores a copy of the result.
func (s *Store) Save(ctx context.Context, key string, result *domain.Result) error {
	copied := clone(result)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = copied
	return nil
}

// Load returns a copy of the stored result so callers can't mutate the store.
func (s *Store) Load(ctx context.Context, key string) (*domain.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result, ok := s.data[key]
	if !ok {
		return nil, domain.ErrResultNotFound
	}
	return clone(result), nil
}

// Delete removes the result.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// List returns the stored keys.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys, nil
}

func clone(r *domain.Result) *domain.Result {
	c := *r
	c.Operands = slices.Clone(r.Operands)
	c.Values = slices.Clone(r.Values)
	if r.Solutions != nil {
		c.Solutions = make([][]string, len(r.Solutions))
		for i, trace := range r.Solutions {
			c.Solutions[i] = slices.Clone(trace)
		}
	}
	return &c
}
