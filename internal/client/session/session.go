// Package session keeps the copy of the signed-in user record under the
// currentUser key.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/transconnection/internal/client/storage"
	"github.com/iudanet/transconnection/internal/models"
)

// Pointer reads and writes the current-user slot of the store
type Pointer struct {
	store storage.KeyValueStore
}

// New creates a session pointer over store
func New(store storage.KeyValueStore) *Pointer {
	return &Pointer{store: store}
}

// Current returns the signed-in user or nil when nobody is signed in
func (p *Pointer) Current(ctx context.Context) (*models.User, error) {
	var user models.User
	err := p.store.Get(ctx, storage.KeyCurrentUser, &user)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read current user: %w", err)
	}
	return &user, nil
}

// Set makes user the signed-in user
func (p *Pointer) Set(ctx context.Context, user *models.User) error {
	if user == nil {
		return p.Clear(ctx)
	}
	if err := p.store.Set(ctx, storage.KeyCurrentUser, user); err != nil {
		return fmt.Errorf("failed to save current user: %w", err)
	}
	return nil
}

// Refresh replaces the stored copy if user is the one signed in
func (p *Pointer) Refresh(ctx context.Context, user *models.User) error {
	current, err := p.Current(ctx)
	if err != nil {
		return err
	}
	if current == nil || current.ID != user.ID {
		return nil
	}
	return p.Set(ctx, user)
}

// Clear signs the current user out
func (p *Pointer) Clear(ctx context.Context) error {
	if err := p.store.Remove(ctx, storage.KeyCurrentUser); err != nil {
		return fmt.Errorf("failed to clear current user: %w", err)
	}
	return nil
}

// IsSignedIn reports whether a session exists
func (p *Pointer) IsSignedIn(ctx context.Context) (bool, error) {
	user, err := p.Current(ctx)
	if err != nil {
		return false, err
	}
	return user != nil, nil
}
