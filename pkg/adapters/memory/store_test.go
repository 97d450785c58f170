package memory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/aretw0/digits/pkg/adapters/memory"
	"github.com/aretw0/digits/pkg/domain"
	"github.com/aretw0/digits/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunResultCacheContract(t, store)
}

func TestMemoryStore_SaveCopiesInput(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	result := &domain.Result{Kind: domain.KindSolve, Solutions: [][]string{{"2/2=1"}}}
	require.NoError(t, store.Save(ctx, "k", result))
	result.Solutions[0][0] = "changed"

	loaded, err := store.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "2/2=1", loaded.Solutions[0][0])
}

func TestMemoryStore_Concurrent(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := fmt.Sprintf("targets:%d", i)
			_ = store.Save(ctx, key, &domain.Result{Kind: domain.KindTargets, Values: []int{i}})
			_, _ = store.Load(ctx, key)
		}()
	}
	wg.Wait()

	keys, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, keys, 16)
}
