package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/whitesvil1-lab/JustCani/internal/repository"
)

func TestStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "cartItems", []byte(`[{"sku":"A"}]`)))

	// Новый экземпляр видит те же данные (как после перезапуска)
	reopened, err := NewStore(dir)
	require.NoError(t, err)

	value, err := reopened.Get(ctx, "cartItems")
	require.NoError(t, err)
	require.JSONEq(t, `[{"sku":"A"}]`, string(value))
}

func TestStore_MissingKeyAndRemove(t *testing.T) {
	ctx := context.Background()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, store.Remove(ctx, "missing"))

	require.NoError(t, store.Set(ctx, "k", []byte("v")))
	require.NoError(t, store.Remove(ctx, "k"))
	_, err = store.Get(ctx, "k")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStore_KeyCannotEscapeDirectory(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	dir := filepath.Join(root, "store")

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "../outside", []byte("x")))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Len(t, entries, 1, "only the store directory must exist in root")
}

func TestNewStore_RequiresDir(t *testing.T) {
	_, err := NewStore("")
	require.Error(t, err)
}
