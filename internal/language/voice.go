package language

// DefaultVoice голос синтеза речи для языков без отдельного голоса
const DefaultVoice = "onyx"

var voices = map[string]string{
	"en": "onyx",
	"es": "nova",
	"fr": "shimmer",
}

// Voice returns the TTS voice for a language code
func Voice(code string) string {
	if norm, ok := Normalize(code); ok {
		if v, ok := voices[norm]; ok {
			return v
		}
	}
	return DefaultVoice
}
