package translation

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/iudanet/transconnection/internal/client/api"
	"github.com/iudanet/transconnection/internal/language"
)

// DefaultAlternatives число вариантов перевода по умолчанию
const DefaultAlternatives = 3

// PronunciationResult IPA-транскрипция текста
type PronunciationResult struct {
	Success       bool
	Text          string
	Language      string
	Pronunciation string
	Err           error
}

// AlternativesResult несколько вариантов перевода разного стиля
type AlternativesResult struct {
	Success        bool
	OriginalText   string
	Alternatives   []string
	SourceLanguage string
	TargetLanguage string
	Err            error
}

// ValidationResult оценка качества перевода моделью
type ValidationResult struct {
	Success        bool
	OriginalText   string
	TranslatedText string
	Validation     string
	Rating         int // 0 если модель не вернула "Rating: X/10"
	SourceLanguage string
	TargetLanguage string
	Err            error
}

var ratingPattern = regexp.MustCompile(`(?i)rating:\s*(\d+)\s*/\s*10`)

// Pronunciation returns an IPA transcription of text
func (c *Client) Pronunciation(ctx context.Context, text, lang string) (*PronunciationResult, error) {
	if !c.api.Configured() {
		return nil, api.ErrNotConfigured
	}

	name := language.DisplayName(lang)
	result := &PronunciationResult{Text: text, Language: name}

	prompt := fmt.Sprintf("Provide a pronunciation guide for the following %s text using IPA "+
		"(International Phonetic Alphabet):\n\n\"%s\"\n\nRespond with only the IPA pronunciation.", name, text)

	reply, err := c.complete(ctx, completion{
		system:      "You are a pronunciation expert. Provide IPA transcriptions.",
		prompt:      prompt,
		maxTokens:   100,
		temperature: 0.1,
	})
	if err != nil {
		c.logger.Warn("pronunciation failed", "error", err)
		result.Err = err
		return result, nil
	}

	result.Success = true
	result.Pronunciation = reply
	return result, nil
}

// AlternativeTranslations returns count differently styled translations
func (c *Client) AlternativeTranslations(ctx context.Context, text, sourceLanguage, targetLanguage string, count int) (*AlternativesResult, error) {
	if !c.api.Configured() {
		return nil, api.ErrNotConfigured
	}
	if count <= 0 {
		count = DefaultAlternatives
	}

	source := language.DisplayName(sourceLanguage)
	target := language.DisplayName(targetLanguage)
	result := &AlternativesResult{
		OriginalText:   text,
		Alternatives:   []string{},
		SourceLanguage: source,
		TargetLanguage: target,
	}

	prompt := fmt.Sprintf("Provide %d alternative translations for the following text from %s to %s.\n"+
		"Each translation should be slightly different in style or formality. "+
		"Respond with only the translations, one per line:\n\n\"%s\"", count, source, target, text)

	reply, err := c.complete(ctx, completion{
		system:      "You are a professional translator providing alternative translations.",
		prompt:      prompt,
		maxTokens:   200,
		temperature: 0.7,
	})
	if err != nil {
		c.logger.Warn("alternative translations failed", "error", err)
		result.Err = err
		return result, nil
	}

	for _, line := range strings.Split(reply, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			result.Alternatives = append(result.Alternatives, line)
		}
	}
	result.Success = true
	return result, nil
}

// ValidateTranslation asks the model to rate a translation from 1 to 10
func (c *Client) ValidateTranslation(ctx context.Context, originalText, translatedText, sourceLanguage, targetLanguage string) (*ValidationResult, error) {
	if !c.api.Configured() {
		return nil, api.ErrNotConfigured
	}

	source := language.DisplayName(sourceLanguage)
	target := language.DisplayName(targetLanguage)
	result := &ValidationResult{
		OriginalText:   originalText,
		TranslatedText: translatedText,
		SourceLanguage: source,
		TargetLanguage: target,
	}

	prompt := fmt.Sprintf("Rate the quality of this translation from %s to %s on a scale of 1-10, "+
		"where 10 is perfect.\nProvide a brief explanation for your rating.\n\n"+
		"Original: \"%s\"\nTranslation: \"%s\"\n\nRespond with: \"Rating: X/10 - [explanation]\"",
		source, target, originalText, translatedText)

	reply, err := c.complete(ctx, completion{
		system:      "You are a translation quality assessor.",
		prompt:      prompt,
		maxTokens:   150,
		temperature: 0.3,
	})
	if err != nil {
		c.logger.Warn("translation validation failed", "error", err)
		result.Err = err
		return result, nil
	}

	result.Success = true
	result.Validation = reply
	if m := ratingPattern.FindStringSubmatch(reply); m != nil {
		result.Rating, _ = strconv.Atoi(m[1])
	}
	return result, nil
}

// SupportedLanguages returns the language table
func (c *Client) SupportedLanguages() []language.Language {
	return language.Supported()
}

// IsLanguageSupported reports whether code names a supported language
func (c *Client) IsLanguageSupported(code string) bool {
	return language.IsSupported(code)
}

// CommonLanguagePairs returns the frequently used translation directions
func (c *Client) CommonLanguagePairs() []language.Pair {
	return language.CommonPairs()
}
