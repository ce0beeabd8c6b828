package session

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/transconnection/internal/client/storage/boltdb"
	"github.com/iudanet/transconnection/internal/models"
)

func newTestPointer(t *testing.T) *Pointer {
	t.Helper()

	store, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return New(store)
}

func TestPointer_Lifecycle(t *testing.T) {
	ctx := context.Background()
	p := newTestPointer(t)

	current, err := p.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)

	signedIn, err := p.IsSignedIn(ctx)
	require.NoError(t, err)
	assert.False(t, signedIn)

	user := &models.User{ID: "u1", FirstName: "Ana", Email: "ana@example.com"}
	require.NoError(t, p.Set(ctx, user))

	current, err = p.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "u1", current.ID)

	signedIn, err = p.IsSignedIn(ctx)
	require.NoError(t, err)
	assert.True(t, signedIn)

	require.NoError(t, p.Clear(ctx))
	current, err = p.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)

	// повторный выход не ошибка
	require.NoError(t, p.Clear(ctx))
}

func TestPointer_Refresh(t *testing.T) {
	ctx := context.Background()
	p := newTestPointer(t)

	// без сессии ничего не записывается
	require.NoError(t, p.Refresh(ctx, &models.User{ID: "u1"}))
	current, err := p.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)

	require.NoError(t, p.Set(ctx, &models.User{ID: "u1", FirstName: "Ana"}))

	// другой пользователь не трогает сессию
	require.NoError(t, p.Refresh(ctx, &models.User{ID: "u2", FirstName: "Bob"}))
	current, err = p.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ana", current.FirstName)

	require.NoError(t, p.Refresh(ctx, &models.User{ID: "u1", FirstName: "Anita"}))
	current, err = p.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Anita", current.FirstName)
}
