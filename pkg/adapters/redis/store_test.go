package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/digits/pkg/adapters/redis"
	"github.com/aretw0/digits/pkg/domain"
	"github.com/aretw0/digits/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, opts ...redis.Option) (*redis.Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err, "Failed to start miniredis")
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	store := redis.NewFromClient(client, opts...)
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func TestRedisStore_Contract(t *testing.T) {
	store, _ := newStore(t)
	ports.RunResultCacheContract(t, store)
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	store, mr := newStore(t, redis.WithTTL(1*time.Second))
	ctx := context.Background()
	key := domain.TargetsKey([]int{2, 3})

	err := store.Save(ctx, key, &domain.Result{Kind: domain.KindTargets, Values: []int{-1, 1, 2, 3, 5, 6}})
	require.NoError(t, err)

	keys, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, keys, key)

	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, key)
	assert.ErrorIs(t, err, domain.ErrResultNotFound)

	// The index is pruned against wall-clock time, not miniredis time.
	time.Sleep(1200 * time.Millisecond)

	keys, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestRedisStore_Prefix(t *testing.T) {
	store, mr := newStore(t, redis.WithPrefix("custom:app:"))
	ctx := context.Background()
	key := domain.SolveKey(1, []int{2, 2}, false)

	err := store.Save(ctx, key, &domain.Result{Kind: domain.KindSolve, Solutions: [][]string{{"2/2=1"}}})
	require.NoError(t, err)

	assert.True(t, mr.Exists("custom:app:"+key), "Expected key with custom prefix to exist")
	assert.True(t, mr.Exists("custom:app:index"), "Expected index with custom prefix to exist")

	keys, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, keys, key)
}

func TestRedisStore_CorruptPayload(t *testing.T) {
	store, mr := newStore(t)
	require.NoError(t, mr.Set(redis.DefaultPrefix+"bad", "{not json"))

	_, err := store.Load(context.Background(), "bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrResultNotFound)
}

func TestRedisStore_Ping(t *testing.T) {
	store, mr := newStore(t)
	assert.NoError(t, store.Ping(context.Background()))

	mr.Close()
	assert.Error(t, store.Ping(context.Background()))
}
