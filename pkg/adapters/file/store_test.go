package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/digits/pkg/adapters/file"
	"github.com/aretw0/digits/pkg/domain"
	"github.com/aretw0/digits/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	ports.RunResultCacheContract(t, file.New(t.TempDir()))
}

func TestFileStore_DefaultDir(t *testing.T) {
	assert.Equal(t, file.DefaultDir, file.New("").BasePath)
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	key := domain.TargetsKey([]int{2, 2})

	require.NoError(t, file.New(dir).Save(ctx, key, &domain.Result{
		Kind:   domain.KindTargets,
		Values: []int{1, 2, 4},
	}))

	loaded, err := file.New(dir).Load(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 4}, loaded.Values)
}

func TestFileStore_Overwrite(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "k", &domain.Result{Kind: domain.KindSolve, Target: 1}))
	require.NoError(t, store.Save(ctx, "k", &domain.Result{Kind: domain.KindSolve, Target: 2}))

	loaded, err := store.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Target)

	keys, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"k"}, keys)
}

func TestFileStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "k", &domain.Result{Kind: domain.KindSolve}))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NoError(t, os.WriteFile(filepath.Join(dir, entries[0].Name()), []byte("{not json"), 0644))

	_, err = store.Load(ctx, "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrResultNotFound)

	keys, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestFileStore_EmptyKey(t *testing.T) {
	err := file.New(t.TempDir()).Save(context.Background(), "", &domain.Result{})
	assert.Error(t, err)
}

func TestFileStore_ListMissingDir(t *testing.T) {
	keys, err := file.New(filepath.Join(t.TempDir(), "absent")).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, keys)
}
