// Package preferences stores per-device UI preferences.
package preferences

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/transconnection/internal/client/storage"
	"github.com/iudanet/transconnection/internal/models"
)

// ErrUnknownTheme is returned for a theme other than dark or light
var ErrUnknownTheme = errors.New("unknown theme")

// Store читает и пишет настройки под собственными ключами
type Store struct {
	store storage.KeyValueStore
}

// New creates a preferences store
func New(store storage.KeyValueStore) *Store {
	return &Store{store: store}
}

// Theme returns the saved theme, light when nothing valid is saved
func (s *Store) Theme(ctx context.Context) (models.Theme, error) {
	var theme models.Theme
	err := s.store.Get(ctx, storage.KeyThemePreference, &theme)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return models.ThemeLight, nil
	}
	if err != nil {
		return models.ThemeLight, fmt.Errorf("failed to read theme: %w", err)
	}
	if !theme.Valid() {
		return models.ThemeLight, nil
	}
	return theme, nil
}

// SetTheme saves theme
func (s *Store) SetTheme(ctx context.Context, theme models.Theme) error {
	if !theme.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownTheme, theme)
	}
	if err := s.store.Set(ctx, storage.KeyThemePreference, theme); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	return nil
}

// ToggleTheme switches between dark and light and returns the new theme
func (s *Store) ToggleTheme(ctx context.Context) (models.Theme, error) {
	current, err := s.Theme(ctx)
	if err != nil {
		return current, err
	}

	next := models.ThemeDark
	if current == models.ThemeDark {
		next = models.ThemeLight
	}

	if err := s.SetTheme(ctx, next); err != nil {
		return current, err
	}
	return next, nil
}
