package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/iudanet/transconnection/internal/client/speech"
	"github.com/iudanet/transconnection/internal/language"
	"github.com/iudanet/transconnection/internal/models"
)

func (c *Cli) runTranscribe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("transcribe", flag.ContinueOnError)
	fs.SetOutput(c.io)
	from := fs.String("from", "", "language spoken in the recording")
	to := fs.String("to", "", "translate the transcript into this language")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: usage: transcribe [-from L] [-to L] <file>", ErrUsage)
	}
	audio := speech.AudioHandle(fs.Arg(0))

	userID, err := c.admit(ctx)
	if err != nil {
		return err
	}

	res, err := c.speech.TranscribeAudio(ctx, audio, *from)
	if err != nil {
		return err
	}
	if !res.Success {
		return failure(res.UserMessage, res.Err)
	}

	source := res.DetectedLanguage
	if source == "" {
		source = codeOf(*from)
	}
	if source == "" {
		source = language.DefaultCode
	}

	c.io.Printf("Transcript (%s):\n", language.DisplayName(source))
	c.io.Println(*res.Text)

	if *to == "" {
		return nil
	}

	tr, err := c.translator.TranslateText(ctx, *res.Text, source, *to)
	if err != nil {
		return err
	}
	if !tr.Success {
		return failure(tr.UserMessage, tr.Err)
	}

	c.io.Println()
	c.io.Printf("Translation (%s):\n", tr.TargetLanguage)
	c.io.Println(*tr.TranslatedText)

	c.history.Add(ctx, models.HistoryEntry{
		UserID:         userID,
		Original:       *res.Text,
		Translated:     *tr.TranslatedText,
		SourceLanguage: source,
		TargetLanguage: codeOf(*to),
		Type:           models.TranslationVoice,
		Timestamp:      tr.Timestamp,
	})
	c.charge(ctx, userID)

	return nil
}

func (c *Cli) runSpeak(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: usage: speak <lang> <text>", ErrUsage)
	}

	res, err := c.speech.Speak(ctx, strings.Join(args[1:], " "), args[0])
	if err != nil {
		return err
	}
	if !res.Success {
		if res.Clip != nil {
			c.io.Printf("Audio saved to %s\n", res.Clip.Path)
		}
		return failure(res.UserMessage, res.Err)
	}

	c.io.Printf("✓ Spoken with voice %s (%s)\n", res.Clip.Voice, res.Clip.Path)
	return nil
}
