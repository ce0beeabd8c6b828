package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/iudanet/transconnection/internal/language"
	"github.com/iudanet/transconnection/internal/models"
)

// minutesPerTranslation списывается с квоты за каждый успешный перевод
const minutesPerTranslation = 1

// failure превращает неуспешный результат в ошибку с сообщением для пользователя
func failure(message string, err error) error {
	if err == nil {
		return errors.New(message)
	}
	return fmt.Errorf("%s: %w", message, err)
}

// codeOf возвращает код языка для имени или кода, иначе строку как есть
func codeOf(s string) string {
	if code, ok := language.Resolve(s); ok {
		return code
	}
	return s
}

// admit проверяет устройство и квоту. Для гостя возвращает GuestUserID
// без учёта расхода.
func (c *Cli) admit(ctx context.Context) (string, error) {
	user, err := c.auth.Current(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read session: %w", err)
	}
	if user == nil {
		return models.GuestUserID, nil
	}

	if err := c.checkDevice(ctx, user.ID); err != nil {
		return "", err
	}

	ok, err := c.meter.MayProceed(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to check usage: %w", err)
	}
	if !ok {
		return "", ErrQuotaExceeded
	}
	return user.ID, nil
}

// charge списывает минуты и печатает остаток; ошибки учёта не прерывают команду
func (c *Cli) charge(ctx context.Context, userID string) {
	if userID == models.GuestUserID {
		return
	}
	if err := c.meter.UpdateUsage(ctx, userID, minutesPerTranslation); err != nil {
		c.logger.Warn("usage not recorded", "user_id", userID, "error", err)
		return
	}
	remaining, err := c.meter.Remaining(ctx, userID)
	if err != nil {
		c.logger.Warn("failed to read remaining minutes", "user_id", userID, "error", err)
		return
	}
	c.io.Printf("Remaining this week: %.0f minutes\n", remaining)
}

func (c *Cli) runTranslate(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("%w: usage: translate <src> <tgt> <text>", ErrUsage)
	}
	source, target := args[0], args[1]
	text := strings.Join(args[2:], " ")

	userID, err := c.admit(ctx)
	if err != nil {
		return err
	}

	res, err := c.translator.TranslateText(ctx, text, source, target)
	if err != nil {
		return err
	}
	if !res.Success {
		return failure(res.UserMessage, res.Err)
	}

	c.io.Printf("%s → %s\n", res.SourceLanguage, res.TargetLanguage)
	c.io.Println(*res.TranslatedText)

	c.history.Add(ctx, models.HistoryEntry{
		UserID:         userID,
		Original:       text,
		Translated:     *res.TranslatedText,
		SourceLanguage: codeOf(source),
		TargetLanguage: codeOf(target),
		Type:           models.TranslationText,
		Timestamp:      res.Timestamp,
	})
	c.charge(ctx, userID)

	return nil
}

func (c *Cli) runDetect(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: usage: detect <text>", ErrUsage)
	}

	res, err := c.translator.DetectLanguage(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	if !res.Success {
		return failure(res.UserMessage, res.Err)
	}

	c.io.Printf("Language: %s (%s)\n", res.LanguageName, res.LanguageCode)
	c.io.Printf("Confidence: %.0f%%\n", res.Confidence*100)
	return nil
}

func (c *Cli) runPronounce(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: usage: pronounce <lang> <text>", ErrUsage)
	}

	res, err := c.translator.Pronunciation(ctx, strings.Join(args[1:], " "), args[0])
	if err != nil {
		return err
	}
	if !res.Success {
		return failure("Pronunciation failed", res.Err)
	}

	c.io.Println(res.Pronunciation)
	return nil
}

func (c *Cli) runAlternatives(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("alternatives", flag.ContinueOnError)
	fs.SetOutput(c.io)
	count := fs.Int("n", 0, "number of alternatives")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	rest := fs.Args()
	if len(rest) < 3 {
		return fmt.Errorf("%w: usage: alternatives [-n N] <src> <tgt> <text>", ErrUsage)
	}

	res, err := c.translator.AlternativeTranslations(ctx, strings.Join(rest[2:], " "), rest[0], rest[1], *count)
	if err != nil {
		return err
	}
	if !res.Success {
		return failure("Alternative translations failed", res.Err)
	}

	for i, alt := range res.Alternatives {
		c.io.Printf("%d. %s\n", i+1, alt)
	}
	return nil
}

func (c *Cli) runLanguages() error {
	c.io.Println("=== Supported Languages ===")
	for _, l := range c.translator.SupportedLanguages() {
		c.io.Printf("  %-4s %s\n", l.Code, l.Name)
	}
	c.io.Println()
	c.io.Println("Common pairs:")
	for _, p := range c.translator.CommonLanguagePairs() {
		c.io.Printf("  %s → %s\n", p.From, p.To)
	}
	return nil
}
