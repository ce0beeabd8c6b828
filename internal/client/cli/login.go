package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/transconnection/internal/models"
)

func (c *Cli) runLogin(ctx context.Context) error {
	c.io.Println("=== Login ===")
	c.io.Println()

	email, err := c.io.ReadInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}

	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	user, err := c.auth.SignIn(ctx, email, password)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Login successful!")
	c.io.Printf("Welcome back, %s\n", user.FullName())

	return nil
}

func (c *Cli) runLogout(ctx context.Context) error {
	if err := c.auth.SignOut(ctx); err != nil {
		return fmt.Errorf("failed to sign out: %w", err)
	}
	c.io.Println("✓ Logged out")
	return nil
}

// requireUser возвращает текущего пользователя или ErrNotSignedIn
func (c *Cli) requireUser(ctx context.Context) (*models.User, error) {
	user, err := c.auth.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if user == nil {
		return nil, ErrNotSignedIn
	}
	return user, nil
}
