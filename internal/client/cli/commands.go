package cli

import (
	"context"
	"fmt"
)

// Run выполняет команду с аргументами (без имени команды)
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return c.runRegister(ctx)
	case "login":
		return c.runLogin(ctx)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "profile":
		return c.runProfile(ctx, args)
	case "subscribe":
		return c.runSubscribe(ctx, args)
	case "usage":
		return c.runUsage(ctx)
	case "translate":
		return c.runTranslate(ctx, args)
	case "detect":
		return c.runDetect(ctx, args)
	case "pronounce":
		return c.runPronounce(ctx, args)
	case "alternatives":
		return c.runAlternatives(ctx, args)
	case "transcribe":
		return c.runTranscribe(ctx, args)
	case "speak":
		return c.runSpeak(ctx, args)
	case "languages":
		return c.runLanguages()
	case "history":
		return c.runHistory(ctx, args)
	case "theme":
		return c.runTheme(ctx, args)
	case "export":
		return c.runExport(ctx)
	case "clear":
		return c.runClear(ctx, args)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}
}
