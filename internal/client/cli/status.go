package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/iudanet/transconnection/internal/client/subscription"
	"github.com/iudanet/transconnection/internal/client/users"
	"github.com/iudanet/transconnection/internal/models"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Status ===")
	c.io.Println()

	user, err := c.auth.Current(ctx)
	if err != nil {
		return fmt.Errorf("failed to check session: %w", err)
	}

	if user == nil {
		c.io.Println("Status: Not signed in")
		c.io.Println()
		c.io.Println("Run 'transconnect login' to sign in.")
		return nil
	}

	c.io.Println("Status: Signed in")
	c.io.Printf("Name: %s\n", user.FullName())
	c.io.Printf("Email: %s\n", user.Email)

	sub, err := c.meter.GetSubscription(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("failed to get subscription: %w", err)
	}
	c.io.Printf("Plan: %s\n", sub.Plan)

	return nil
}

func (c *Cli) runProfile(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("profile", flag.ContinueOnError)
	fs.SetOutput(c.io)
	first := fs.String("first", "", "new first name")
	last := fs.String("last", "", "new last name")
	email := fs.String("email", "", "new email")
	phone := fs.String("phone", "", "new phone number")
	changePassword := fs.Bool("password", false, "prompt for a new password")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	user, err := c.requireUser(ctx)
	if err != nil {
		return err
	}

	var upd users.UserUpdate
	changed := false
	set := func(dst **string, v string) {
		if v != "" {
			*dst = &v
			changed = true
		}
	}
	set(&upd.FirstName, *first)
	set(&upd.LastName, *last)
	set(&upd.Email, *email)
	set(&upd.PhoneNumber, *phone)

	if *changePassword {
		password, err := c.io.ReadPassword("New password: ")
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		set(&upd.Password, password)
	}

	if changed {
		if user, err = c.users.Update(ctx, user.ID, upd); err != nil {
			return err
		}
		c.io.Println("✓ Profile updated")
		c.io.Println()
	}

	c.io.Println("=== Profile ===")
	c.io.Printf("ID: %s\n", user.ID)
	c.io.Printf("Name: %s\n", user.FullName())
	c.io.Printf("Email: %s\n", user.Email)
	c.io.Printf("Phone: %s\n", user.PhoneNumber)
	c.io.Printf("Member since: %s\n", user.CreatedAt.Local().Format(time.DateOnly))
	return nil
}

func (c *Cli) runSubscribe(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: usage: subscribe <free|weekly|monthly|yearly>", ErrUsage)
	}
	plan := models.Plan(args[0])
	if !plan.Valid() {
		return fmt.Errorf("%w: unknown plan %q", ErrUsage, args[0])
	}

	user, err := c.requireUser(ctx)
	if err != nil {
		return err
	}

	deviceID, err := c.device.DeviceID(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve device id: %w", err)
	}

	if err := c.meter.SetSubscription(ctx, user.ID, plan, deviceID); err != nil {
		return fmt.Errorf("failed to set subscription: %w", err)
	}

	c.io.Printf("✓ Subscribed to %s plan (%.0f minutes per week)\n", plan, subscription.QuotaFor(plan))
	return nil
}

func (c *Cli) runUsage(ctx context.Context) error {
	user, err := c.requireUser(ctx)
	if err != nil {
		return err
	}

	sub, err := c.meter.GetSubscription(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("failed to get subscription: %w", err)
	}
	used, err := c.meter.GetUsage(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("failed to get usage: %w", err)
	}
	remaining, err := c.meter.Remaining(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("failed to get remaining minutes: %w", err)
	}

	c.io.Println("=== Usage ===")
	c.io.Printf("Plan: %s\n", sub.Plan)
	c.io.Printf("Used this week: %.0f of %.0f minutes\n", used, subscription.QuotaFor(sub.Plan))
	c.io.Printf("Remaining: %.0f minutes\n", remaining)
	if !sub.LastReset.IsZero() {
		c.io.Printf("Resets: %s\n", sub.LastReset.Add(subscription.Period).Local().Format(time.DateTime))
	}

	if err := c.checkDevice(ctx, user.ID); errors.Is(err, ErrOtherDevice) {
		c.io.Println("⚠️  Your subscription is active on another device.")
	} else if err != nil {
		return err
	}
	return nil
}

// checkDevice отклоняет устройство, если подписка привязана к другому
func (c *Cli) checkDevice(ctx context.Context, userID string) error {
	sub, err := c.meter.GetSubscription(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub.DeviceID == "" {
		return nil
	}

	deviceID, err := c.device.DeviceID(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve device id: %w", err)
	}
	ok, err := c.meter.CheckDevice(ctx, userID, deviceID)
	if err != nil {
		return fmt.Errorf("failed to check device: %w", err)
	}
	if !ok {
		return ErrOtherDevice
	}
	return nil
}
