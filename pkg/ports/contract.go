package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/digits/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunResultCacheContract runs a suite of tests to verify that a ResultCache implementation
// adheres to the defined interface contract.
func RunResultCacheContract(t *testing.T, cache ResultCache) {
	ctx := context.Background()
	suffix := time.Now().Format("20060102150405")
	solveKey := domain.SolveKey(24, []int{4, 6, 8, 2}, false) + ":" + suffix

	t.Run("Save and Load", func(t *testing.T) {
		result := &domain.Result{
			Kind:      domain.KindSolve,
			Target:    24,
			Operands:  []int{2, 4, 6, 8},
			Solutions: [][]string{{"4*6=24"}},
			Stats:     domain.Stats{Expanded: 1, Visited: 20, Depth: 1},
		}

		err := cache.Save(ctx, solveKey, result)
		require.NoError(t, err, "Save should not return error")

		loaded, err := cache.Load(ctx, solveKey)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, result.Kind, loaded.Kind)
		assert.Equal(t, result.Target, loaded.Target)
		assert.Equal(t, result.Operands, loaded.Operands)
		assert.Equal(t, result.Solutions, loaded.Solutions)
		assert.Equal(t, result.Stats, loaded.Stats)
	})

	t.Run("Loaded Result Is Isolated", func(t *testing.T) {
		loaded, err := cache.Load(ctx, solveKey)
		require.NoError(t, err)
		loaded.Solutions[0][0] = "tampered"
		loaded.Operands[0] = -1

		again, err := cache.Load(ctx, solveKey)
		require.NoError(t, err)
		assert.Equal(t, "4*6=24", again.Solutions[0][0])
		assert.Equal(t, 2, again.Operands[0])
	})

	t.Run("Targets Values", func(t *testing.T) {
		key := domain.TargetsKey([]int{2, 3}) + ":" + suffix
		result := &domain.Result{
			Kind:     domain.KindTargets,
			Operands: []int{2, 3},
			Values:   []int{-1, 1, 2, 3, 5, 6},
		}
		require.NoError(t, cache.Save(ctx, key, result))
		defer func() { _ = cache.Delete(ctx, key) }()

		loaded, err := cache.Load(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, result.Values, loaded.Values)
	})

	t.Run("Unsolved Result Keeps Empty Solutions", func(t *testing.T) {
		key := domain.SolveKey(0, []int{2, 2}, false) + ":" + suffix
		result := &domain.Result{
			Kind:      domain.KindSolve,
			Target:    0,
			Operands:  []int{2, 2},
			Solutions: [][]string{},
		}
		require.NoError(t, cache.Save(ctx, key, result))
		defer func() { _ = cache.Delete(ctx, key) }()

		loaded, err := cache.Load(ctx, key)
		require.NoError(t, err)
		assert.NotNil(t, loaded.Solutions, "an empty solution list must not come back as nil")
		assert.Empty(t, loaded.Solutions)
		assert.False(t, loaded.Solved())
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := cache.Load(ctx, "non-existent-"+suffix)
		assert.ErrorIs(t, err, domain.ErrResultNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := cache.Save(ctx, solveKey, &domain.Result{Kind: domain.KindSolve})
		require.NoError(t, err)

		err = cache.Delete(ctx, solveKey)
		require.NoError(t, err, "Delete should not return error")

		_, err = cache.Load(ctx, solveKey)
		assert.ErrorIs(t, err, domain.ErrResultNotFound, "Load after Delete should return ErrResultNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := solveKey + "-1"
		id2 := solveKey + "-2"
		_ = cache.Save(ctx, id1, &domain.Result{Kind: domain.KindSolve})
		_ = cache.Save(ctx, id2, &domain.Result{Kind: domain.KindSolve})

		defer func() {
			_ = cache.Delete(ctx, id1)
			_ = cache.Delete(ctx, id2)
		}()

		keys, err := cache.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, keys, id1)
		assert.Contains(t, keys, id2)
	})
}
