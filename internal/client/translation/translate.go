package translation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/iudanet/transconnection/internal/client/api"
	"github.com/iudanet/transconnection/internal/language"
)

// DetectionConfidence уверенность, которую сообщает успешное определение языка
const DetectionConfidence = 0.95

var (
	translateMessages = api.Messages{
		InvalidRequest: "Invalid text format. Please try again.",
		Fallback:       "Translation failed",
	}
	detectMessages = api.Messages{
		InvalidRequest: "Invalid text format. Please try again.",
		Fallback:       "Language detection failed",
	}
)

// TranslationResult результат перевода. При Success == false
// TranslatedText равен nil, Err содержит причину, а UserMessage текст
// для показа пользователю.
type TranslationResult struct {
	Success        bool
	OriginalText   string
	TranslatedText *string
	SourceLanguage string
	TargetLanguage string
	Err            error
	UserMessage    string
	Timestamp      time.Time
}

// DetectionResult результат определения языка текста
type DetectionResult struct {
	Success      bool
	LanguageCode string
	LanguageName string
	Confidence   float64
	Err          error
	UserMessage  string
}

// TranslateText translates text between two languages given by name or
// code. Only a missing API key is returned as an error; every other
// failure is reported in the result.
func (c *Client) TranslateText(ctx context.Context, text, sourceLanguage, targetLanguage string) (*TranslationResult, error) {
	if !c.api.Configured() {
		return nil, api.ErrNotConfigured
	}

	source := language.DisplayName(sourceLanguage)
	target := language.DisplayName(targetLanguage)

	result := &TranslationResult{
		OriginalText:   text,
		SourceLanguage: source,
		TargetLanguage: target,
	}

	prompt := fmt.Sprintf("Translate the following text from %s to %s.\n"+
		"Provide only the translation without any additional text or explanations:\n\n\"%s\"",
		source, target, text)

	translated, err := c.complete(ctx, completion{
		system:      "You are a professional translator. Provide accurate and natural translations.",
		prompt:      prompt,
		maxTokens:   150,
		temperature: 0.3,
	})
	result.Timestamp = c.now().UTC()
	if err != nil {
		c.logger.Warn("translation failed", "source", source, "target", target, "error", err)
		result.Err = err
		result.UserMessage = translateMessages.For(err)
		return result, nil
	}

	result.Success = true
	result.TranslatedText = &translated
	return result, nil
}

// DetectLanguage asks the model for the ISO 639-1 code of text.
// On failure the result falls back to English with zero confidence.
func (c *Client) DetectLanguage(ctx context.Context, text string) (*DetectionResult, error) {
	if !c.api.Configured() {
		return nil, api.ErrNotConfigured
	}

	prompt := fmt.Sprintf("Detect the language of the following text and respond with only "+
		"the ISO 639-1 language code (e.g., 'en', 'es', 'fr'):\n\n\"%s\"", text)

	reply, err := c.complete(ctx, completion{
		system:      "You are a language detection expert. Respond with only the ISO 639-1 language code.",
		prompt:      prompt,
		maxTokens:   10,
		temperature: 0.1,
	})
	if err != nil {
		c.logger.Warn("language detection failed", "error", err)
		return &DetectionResult{
			LanguageCode: language.DefaultCode,
			LanguageName: language.DefaultName,
			Confidence:   0,
			Err:          err,
			UserMessage:  detectMessages.For(err),
		}, nil
	}

	code := strings.ToLower(strings.Trim(reply, " \t\n\"'`."))

	return &DetectionResult{
		Success:      true,
		LanguageCode: code,
		LanguageName: language.NameForCode(code),
		Confidence:   DetectionConfidence,
	}, nil
}
