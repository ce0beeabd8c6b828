// Package language holds the table of languages the translator supports
// and the lookups between ISO 639-1 codes, English names and TTS voices.
package language

import (
	"strings"

	"golang.org/x/text/language"
)

// Default language used when a lookup misses
const (
	DefaultCode = "en"
	DefaultName = "English"
)

// Language is one supported language
type Language struct {
	Code string
	Name string
	Tag  language.Tag
}

var supported = []Language{
	{Code: "en", Name: "English", Tag: language.English},
	{Code: "es", Name: "Spanish", Tag: language.Spanish},
	{Code: "fr", Name: "French", Tag: language.French},
	{Code: "de", Name: "German", Tag: language.German},
	{Code: "it", Name: "Italian", Tag: language.Italian},
	{Code: "pt", Name: "Portuguese", Tag: language.Portuguese},
	{Code: "ru", Name: "Russian", Tag: language.Russian},
	{Code: "ja", Name: "Japanese", Tag: language.Japanese},
	{Code: "ko", Name: "Korean", Tag: language.Korean},
	{Code: "zh", Name: "Chinese", Tag: language.Chinese},
	{Code: "ar", Name: "Arabic", Tag: language.Arabic},
	{Code: "hi", Name: "Hindi", Tag: language.Hindi},
}

// Supported returns a copy of the language table in display order
func Supported() []Language {
	out := make([]Language, len(supported))
	copy(out, supported)
	return out
}

// Normalize turns a BCP 47 tag such as "en-US", "PT_br" or "zh-Hans"
// into the base code of a supported language.
func Normalize(code string) (string, bool) {
	code = strings.ReplaceAll(strings.TrimSpace(code), "_", "-")
	if code == "" {
		return "", false
	}

	tag, err := language.Parse(code)
	if err != nil {
		return "", false
	}

	// "und" и подобные дают угаданный base с низкой уверенностью
	base, confidence := tag.Base()
	if confidence < language.High {
		return "", false
	}

	for _, l := range supported {
		if b, _ := l.Tag.Base(); b == base {
			return l.Code, true
		}
	}

	return "", false
}

// IsSupported reports whether code names a supported language
func IsSupported(code string) bool {
	_, ok := Normalize(code)
	return ok
}

// NameForCode returns the English name for code, "English" if unknown
func NameForCode(code string) string {
	if name, ok := LookupName(code); ok {
		return name
	}
	return DefaultName
}

// LookupName returns the English name for code
func LookupName(code string) (string, bool) {
	norm, ok := Normalize(code)
	if !ok {
		return "", false
	}
	for _, l := range supported {
		if l.Code == norm {
			return l.Name, true
		}
	}
	return "", false
}

// CodeForName returns the code for an English language name
// (case-insensitive), "en" if unknown
func CodeForName(name string) string {
	if code, ok := LookupCode(name); ok {
		return code
	}
	return DefaultCode
}

// LookupCode returns the code for an English language name
func LookupCode(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, l := range supported {
		if strings.EqualFold(l.Name, name) {
			return l.Code, true
		}
	}
	return "", false
}

// Resolve accepts either a code ("fr", "fr-CA") or a name ("french")
// and returns the supported code.
func Resolve(s string) (string, bool) {
	if code, ok := LookupCode(s); ok {
		return code, true
	}
	return Normalize(s)
}

// DisplayName returns the English name for a code or name, or s itself
// when it is not in the table.
func DisplayName(s string) string {
	if code, ok := Resolve(s); ok {
		return NameForCode(code)
	}
	return strings.TrimSpace(s)
}
