package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/iudanet/transconnection/internal/models"
)

func (c *Cli) runHistory(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.SetOutput(c.io)
	typ := fs.String("type", "all", "voice, text, camera or all")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	switch models.TranslationType(*typ) {
	case models.TranslationVoice, models.TranslationText, models.TranslationCamera, "all":
	default:
		return fmt.Errorf("%w: unknown history type %q", ErrUsage, *typ)
	}

	userID := models.GuestUserID
	user, err := c.auth.Current(ctx)
	if err != nil {
		return fmt.Errorf("failed to read session: %w", err)
	}
	if user != nil {
		userID = user.ID
	}

	entries, err := c.history.Filter(ctx, userID, models.TranslationType(*typ))
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	c.io.Println("=== Translation History ===")
	c.io.Println()

	if len(entries) == 0 {
		c.io.Println("No translations yet.")
		return nil
	}

	for _, e := range entries {
		c.io.Printf("[%s] %s %s → %s\n",
			e.Timestamp.Local().Format(time.DateTime), e.Type, e.SourceLanguage, e.TargetLanguage)
		c.io.Printf("  %s\n", e.Original)
		c.io.Printf("  %s\n", e.Translated)
	}
	c.io.Println()
	c.io.Printf("Total: %d\n", len(entries))
	return nil
}

func (c *Cli) runTheme(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("%w: usage: theme [dark|light|toggle]", ErrUsage)
	}

	if len(args) == 0 {
		theme, err := c.theme.Theme(ctx)
		if err != nil {
			return fmt.Errorf("failed to read theme: %w", err)
		}
		c.io.Printf("Theme: %s\n", theme)
		return nil
	}

	if args[0] == "toggle" {
		theme, err := c.theme.ToggleTheme(ctx)
		if err != nil {
			return fmt.Errorf("failed to toggle theme: %w", err)
		}
		c.io.Printf("✓ Theme: %s\n", theme)
		return nil
	}

	theme := models.Theme(strings.ToLower(args[0]))
	if err := c.theme.SetTheme(ctx, theme); err != nil {
		return err
	}
	c.io.Printf("✓ Theme: %s\n", theme)
	return nil
}

func (c *Cli) runExport(ctx context.Context) error {
	export, err := c.users.Export(ctx)
	if err != nil {
		return fmt.Errorf("failed to export users: %w", err)
	}

	enc := json.NewEncoder(c.io)
	enc.SetIndent("", "  ")
	if err := enc.Encode(export); err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	return nil
}

func (c *Cli) runClear(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("clear", flag.ContinueOnError)
	fs.SetOutput(c.io)
	yes := fs.Bool("yes", false, "skip confirmation")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	if !*yes {
		answer, err := c.io.ReadInput("Remove all users and history? Type 'yes' to confirm: ")
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if answer != "yes" {
			c.io.Println("Cancelled.")
			return nil
		}
	}

	if err := c.users.ClearAll(ctx); err != nil {
		return fmt.Errorf("failed to clear users: %w", err)
	}
	if err := c.history.Clear(ctx); err != nil {
		return err
	}

	c.io.Println("✓ All local data removed")
	return nil
}
