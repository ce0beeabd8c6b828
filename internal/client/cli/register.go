package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/transconnection/internal/client/subscription"
	"github.com/iudanet/transconnection/internal/client/users"
	"github.com/iudanet/transconnection/internal/models"
)

func (c *Cli) runRegister(ctx context.Context) error {
	c.io.Println("=== Registration ===")
	c.io.Println()

	var in users.RegisterInput
	var err error

	if in.FirstName, err = c.io.ReadInput("First name: "); err != nil {
		return fmt.Errorf("failed to read first name: %w", err)
	}
	if in.LastName, err = c.io.ReadInput("Last name: "); err != nil {
		return fmt.Errorf("failed to read last name: %w", err)
	}
	if in.Email, err = c.io.ReadInput("Email: "); err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}
	if in.PhoneNumber, err = c.io.ReadInput("Phone number: "); err != nil {
		return fmt.Errorf("failed to read phone number: %w", err)
	}
	if in.Password, err = c.io.ReadPassword("Password (min 6 chars): "); err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	confirm, err := c.io.ReadPassword("Confirm password: ")
	if err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}
	if in.Password != confirm {
		return errors.New("passwords do not match")
	}

	user, err := c.users.Register(ctx, in)
	if err != nil {
		return err
	}

	// Новый пользователь получает бесплатный план на этом устройстве
	deviceID, err := c.device.DeviceID(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve device id: %w", err)
	}
	if err := c.meter.SetSubscription(ctx, user.ID, models.PlanFree, deviceID); err != nil {
		return fmt.Errorf("failed to start free plan: %w", err)
	}

	c.io.Println()
	c.io.Println("✓ Registration successful!")
	c.io.Printf("User ID: %s\n", user.ID)
	c.io.Printf("Name: %s\n", user.FullName())
	c.io.Printf("Plan: %s (%.0f minutes per week)\n", models.PlanFree, subscription.QuotaFor(models.PlanFree))
	c.io.Println("You are now signed in.")

	return nil
}
