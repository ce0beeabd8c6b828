package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/transconnection/internal/client/storage"
)

// setupTestDB создаёт in-memory базу для тестов
func setupTestDB(t *testing.T) *Storage {
	t.Helper()

	store, err := New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

func TestNew_MigrationsApplied(t *testing.T) {
	store := setupTestDB(t)

	var name string
	err := store.db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'kv'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "kv", name)
}

func TestStorage_SetGetRemove(t *testing.T) {
	ctx := context.Background()
	store := setupTestDB(t)

	type pref struct {
		Theme string `json:"theme"`
	}

	var got pref
	assert.ErrorIs(t, store.Get(ctx, "pref", &got), storage.ErrKeyNotFound)

	require.NoError(t, store.Set(ctx, "pref", pref{Theme: "dark"}))
	require.NoError(t, store.Get(ctx, "pref", &got))
	assert.Equal(t, "dark", got.Theme)

	require.NoError(t, store.Set(ctx, "pref", pref{Theme: "light"}))
	require.NoError(t, store.Get(ctx, "pref", &got))
	assert.Equal(t, "light", got.Theme)

	require.NoError(t, store.Remove(ctx, "pref"))
	assert.ErrorIs(t, store.Get(ctx, "pref", &got), storage.ErrKeyNotFound)

	// повторное удаление не ошибка
	assert.NoError(t, store.Remove(ctx, "pref"))
}

func TestStorage_FileReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "kv.db")

	store, err := New(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, storage.KeyThemePreference, "dark"))
	require.NoError(t, store.Close())

	reopened, err := New(ctx, dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	var theme string
	require.NoError(t, reopened.Get(ctx, storage.KeyThemePreference, &theme))
	assert.Equal(t, "dark", theme)
}

func TestStorage_ClosedIsStorageFailure(t *testing.T) {
	ctx := context.Background()
	store, err := New(ctx, ":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	var v string
	assert.ErrorIs(t, store.Get(ctx, "k", &v), storage.ErrStorageFailure)
	assert.ErrorIs(t, store.Set(ctx, "k", "v"), storage.ErrStorageFailure)
	assert.ErrorIs(t, store.Remove(ctx, "k"), storage.ErrStorageFailure)
}
