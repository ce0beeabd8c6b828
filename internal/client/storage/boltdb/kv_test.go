package boltdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/transconnection/internal/client/storage"
)

// создаём тестовое BoltDB хранилище во временном каталоге
func createTestStorage(t *testing.T) *Storage {
	t.Helper()

	store, err := New(context.Background(), filepath.Join(t.TempDir(), "kv_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

type record struct {
	Name  string  `json:"name"`
	Usage float64 `json:"usage"`
}

func TestStorage_SetGetRemove(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	var got record
	err := store.Get(ctx, "rec", &got)
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)

	require.NoError(t, store.Set(ctx, "rec", record{Name: "first", Usage: 1.5}))
	require.NoError(t, store.Get(ctx, "rec", &got))
	assert.Equal(t, record{Name: "first", Usage: 1.5}, got)

	// перезапись
	require.NoError(t, store.Set(ctx, "rec", record{Name: "second"}))
	require.NoError(t, store.Get(ctx, "rec", &got))
	assert.Equal(t, "second", got.Name)

	require.NoError(t, store.Remove(ctx, "rec"))
	assert.ErrorIs(t, store.Get(ctx, "rec", &got), storage.ErrKeyNotFound)
}

func TestStorage_RemoveMissingKey(t *testing.T) {
	store := createTestStorage(t)
	assert.NoError(t, store.Remove(context.Background(), "never-set"))
}

func TestStorage_Slice(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	in := []record{{Name: "a"}, {Name: "b"}, {Name: "c"}}
	require.NoError(t, store.Set(ctx, storage.KeyUsers, in))

	var out []record
	require.NoError(t, store.Get(ctx, storage.KeyUsers, &out))
	assert.Equal(t, in, out)
}

func TestStorage_DecodeFailure(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	require.NoError(t, store.Set(ctx, "rec", "plain string"))

	var got record
	err := store.Get(ctx, "rec", &got)
	assert.ErrorIs(t, err, storage.ErrStorageFailure)
}

func TestStorage_Closed(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)
	require.NoError(t, store.Close())

	var got record
	assert.ErrorIs(t, store.Get(ctx, "rec", &got), storage.ErrStorageClosed)
	assert.ErrorIs(t, store.Set(ctx, "rec", record{}), storage.ErrStorageClosed)
	assert.ErrorIs(t, store.Remove(ctx, "rec"), storage.ErrStorageClosed)
}

func TestStorage_UnmarshalableValue(t *testing.T) {
	store := createTestStorage(t)

	err := store.Set(context.Background(), "bad", make(chan int))
	require.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrStorageFailure)
}
