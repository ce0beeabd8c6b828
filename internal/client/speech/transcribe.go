package speech

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iudanet/transconnection/internal/client/api"
	"github.com/iudanet/transconnection/internal/language"
)

// TranscriptionResult результат распознавания речи
type TranscriptionResult struct {
	Success          bool
	Text             *string
	DetectedLanguage string // код языка, "" если сервис его не вернул
	Duration         float64
	Err              error
	UserMessage      string
}

// AudioDetectionResult язык, определённый по записи
type AudioDetectionResult struct {
	Success          bool
	DetectedLanguage string
	LanguageName     string
	Confidence       float64
	Text             *string
	Err              error
	UserMessage      string
}

// whisperResponse ответ в формате verbose_json
type whisperResponse struct {
	Text     string  `json:"text"`
	Language string  `json:"language"`
	Duration float64 `json:"duration"`
}

// transcribe sends the audio file; the file is reopened on every attempt
func (c *Client) transcribe(ctx context.Context, audio AudioHandle, languageHint string) (*whisperResponse, error) {
	fields := map[string]string{
		"model":           c.transcriptionModel,
		"response_format": "verbose_json",
	}
	if languageHint != "" {
		if code, ok := language.Resolve(languageHint); ok {
			fields["language"] = code
		}
	}

	return api.Execute(ctx, c.api, func(ctx context.Context) (*whisperResponse, error) {
		f, err := os.Open(string(audio))
		if err != nil {
			return nil, fmt.Errorf("failed to open audio: %w", err)
		}
		defer f.Close()

		var resp whisperResponse
		err = c.api.PostMultipart(ctx, transcriptionPath, fields, api.FilePart{
			Field:    "file",
			FileName: filepath.Base(string(audio)),
			Content:  f,
		}, &resp)
		if err != nil {
			return nil, err
		}
		return &resp, nil
	})
}

// detectedCode maps the language reported by the service, which may be a
// code or an English name, to a code.
func detectedCode(reported string) (string, bool) {
	reported = strings.TrimSpace(reported)
	if reported == "" {
		return "", false
	}
	if code, ok := language.Resolve(reported); ok {
		return code, true
	}
	return strings.ToLower(reported), false
}

// TranscribeAudio turns recorded speech into text. languageHint may be a
// code or a name and may be empty.
func (c *Client) TranscribeAudio(ctx context.Context, audio AudioHandle, languageHint string) (*TranscriptionResult, error) {
	if !c.api.Configured() {
		return nil, api.ErrNotConfigured
	}

	resp, err := c.transcribe(ctx, audio, languageHint)
	if err != nil {
		c.logger.Warn("transcription failed", "error", err)
		return &TranscriptionResult{
			Err:         err,
			UserMessage: transcribeMessages.For(err),
		}, nil
	}

	text := strings.TrimSpace(resp.Text)
	code, _ := detectedCode(resp.Language)

	return &TranscriptionResult{
		Success:          true,
		Text:             &text,
		DetectedLanguage: code,
		Duration:         resp.Duration,
	}, nil
}

// DetectLanguageFromAudio transcribes without a hint and reports the
// language the service recognised.
func (c *Client) DetectLanguageFromAudio(ctx context.Context, audio AudioHandle) (*AudioDetectionResult, error) {
	if !c.api.Configured() {
		return nil, api.ErrNotConfigured
	}

	resp, err := c.transcribe(ctx, audio, "")
	if err != nil {
		c.logger.Warn("audio language detection failed", "error", err)
		return &AudioDetectionResult{
			DetectedLanguage: language.DefaultCode,
			LanguageName:     language.DefaultName,
			Confidence:       0,
			Err:              err,
			UserMessage:      detectMessages.For(err),
		}, nil
	}

	text := strings.TrimSpace(resp.Text)
	result := &AudioDetectionResult{
		Success:    true,
		Confidence: 0.9,
		Text:       &text,
	}

	code, known := detectedCode(resp.Language)
	result.DetectedLanguage = code
	if known {
		result.LanguageName = language.NameForCode(code)
	} else {
		result.LanguageName = "Unknown"
	}

	return result, nil
}
