package speech

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/iudanet/transconnection/internal/client/api"
	"github.com/iudanet/transconnection/internal/language"
)

// AudioClip синтезированная речь, сохранённая в кэше
type AudioClip struct {
	Path     string
	Voice    string
	Language string
	Size     int
}

// SynthesisResult результат синтеза речи
type SynthesisResult struct {
	Success     bool
	Clip        *AudioClip
	Err         error
	UserMessage string
}

type speechRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
	Voice string `json:"voice"`
}

// SynthesizeSpeech renders text with the voice for languageCode and
// stores the mp3 in the cache directory.
func (c *Client) SynthesizeSpeech(ctx context.Context, text, languageCode string) (*SynthesisResult, error) {
	if !c.api.Configured() {
		return nil, api.ErrNotConfigured
	}

	code, ok := language.Resolve(languageCode)
	if !ok {
		code = language.DefaultCode
	}
	voice := language.Voice(code)

	req := speechRequest{
		Model: c.speechModel,
		Input: text,
		Voice: voice,
	}

	audio, err := api.Execute(ctx, c.api, func(ctx context.Context) ([]byte, error) {
		return c.api.PostRaw(ctx, speechPath, req)
	})
	if err != nil {
		c.logger.Warn("speech synthesis failed", "voice", voice, "error", err)
		return &SynthesisResult{Err: err, UserMessage: synthesizeMessages.For(err)}, nil
	}

	clip, err := c.store(audio, voice, code)
	if err != nil {
		c.logger.Error("failed to cache synthesized speech", "error", err)
		return &SynthesisResult{Err: err, UserMessage: synthesizeMessages.Fallback}, nil
	}

	return &SynthesisResult{Success: true, Clip: clip}, nil
}

func (c *Client) store(audio []byte, voice, code string) (*AudioClip, error) {
	if err := os.MkdirAll(c.cacheDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create cache dir: %w", err)
	}

	path := filepath.Join(c.cacheDir, "tts-"+uuid.NewString()+".mp3")
	if err := os.WriteFile(path, audio, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write audio: %w", err)
	}

	return &AudioClip{Path: path, Voice: voice, Language: code, Size: len(audio)}, nil
}

// Speak synthesizes text and plays it
func (c *Client) Speak(ctx context.Context, text, languageCode string) (*SynthesisResult, error) {
	res, err := c.SynthesizeSpeech(ctx, text, languageCode)
	if err != nil || !res.Success {
		return res, err
	}

	if err := c.player.Play(ctx, res.Clip); err != nil {
		c.logger.Warn("playback failed", "path", res.Clip.Path, "error", err)
		return &SynthesisResult{Clip: res.Clip, Err: err, UserMessage: "Audio playback failed"}, nil
	}

	return res, nil
}
