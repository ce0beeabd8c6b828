package language

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSupported(t *testing.T) {
	langs := Supported()
	assert.Len(t, langs, 12)
	assert.Equal(t, "en", langs[0].Code)
	assert.Equal(t, "English", langs[0].Name)

	// копия, а не сама таблица
	langs[0].Name = "changed"
	assert.Equal(t, "English", Supported()[0].Name)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{in: "en", want: "en", wantOK: true},
		{in: "EN", want: "en", wantOK: true},
		{in: "en-US", want: "en", wantOK: true},
		{in: "pt_BR", want: "pt", wantOK: true},
		{in: " ja ", want: "ja", wantOK: true},
		{in: "hi", want: "hi", wantOK: true},
		{in: "sv", wantOK: false},
		{in: "", wantOK: false},
		{in: "not a tag", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := Normalize(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNameForCode(t *testing.T) {
	assert.Equal(t, "Spanish", NameForCode("es"))
	assert.Equal(t, "Chinese", NameForCode("zh"))
	assert.Equal(t, "Arabic", NameForCode("ar"))
	assert.Equal(t, "English", NameForCode("xx"))
	assert.Equal(t, "English", NameForCode(""))
}

func TestCodeForName(t *testing.T) {
	assert.Equal(t, "fr", CodeForName("French"))
	assert.Equal(t, "fr", CodeForName("french"))
	assert.Equal(t, "ko", CodeForName(" Korean "))
	assert.Equal(t, "en", CodeForName("Klingon"))
}

func TestResolve(t *testing.T) {
	code, ok := Resolve("german")
	assert.True(t, ok)
	assert.Equal(t, "de", code)

	code, ok = Resolve("de-AT")
	assert.True(t, ok)
	assert.Equal(t, "de", code)

	_, ok = Resolve("Elvish")
	assert.False(t, ok)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Italian", DisplayName("it"))
	assert.Equal(t, "Italian", DisplayName("ITALIAN"))
	assert.Equal(t, "Swedish", DisplayName("Swedish"))
}

func TestVoice(t *testing.T) {
	assert.Equal(t, "onyx", Voice("en"))
	assert.Equal(t, "nova", Voice("es"))
	assert.Equal(t, "shimmer", Voice("fr-FR"))
	assert.Equal(t, "onyx", Voice("de"))
	assert.Equal(t, "onyx", Voice("??"))
}

func TestCommonPairs(t *testing.T) {
	pairs := CommonPairs()
	assert.Len(t, pairs, 8)
	assert.Equal(t, Pair{From: "en", To: "es"}, pairs[0])
	for _, p := range pairs {
		assert.True(t, IsSupported(p.From))
		assert.True(t, IsSupported(p.To))
	}
}
