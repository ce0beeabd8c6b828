// Package auth signs users in and out of the local session.
package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/iudanet/transconnection/internal/crypto"
	"github.com/iudanet/transconnection/internal/models"
)

// UserFinder looks users up by email
type UserFinder interface {
	// FindByEmail returns users.ErrUserNotFound when no user matches
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// SessionStore хранит текущего пользователя
type SessionStore interface {
	Set(ctx context.Context, user *models.User) error
	Current(ctx context.Context) (*models.User, error)
	Clear(ctx context.Context) error
}

// Service управляет входом и выходом пользователя
type Service struct {
	users   UserFinder
	session SessionStore
	logger  *slog.Logger
}

// NewService создает новый сервис авторизации
func NewService(users UserFinder, session SessionStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		users:   users,
		session: session,
		logger:  logger,
	}
}

// SignIn проверяет email и пароль и делает пользователя текущим.
// При неверном пароле сессия не меняется.
func (s *Service) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	ok, err := crypto.VerifyPassword(password, user.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		s.logger.Debug("sign in rejected", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	if err := s.session.Set(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Debug("signed in", "user_id", user.ID)
	return user, nil
}

// SignOut clears the session; user records stay untouched
func (s *Service) SignOut(ctx context.Context) error {
	return s.session.Clear(ctx)
}

// Current returns the signed-in user or nil
func (s *Service) Current(ctx context.Context) (*models.User, error) {
	return s.session.Current(ctx)
}

// IsSignedIn reports whether a session exists
func (s *Service) IsSignedIn(ctx context.Context) (bool, error) {
	user, err := s.session.Current(ctx)
	if err != nil {
		return false, err
	}
	return user != nil, nil
}
