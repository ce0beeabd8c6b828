package speech

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/transconnection/internal/client/api"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestClient(t *testing.T, url string, opts ...Option) *Client {
	t.Helper()

	apiClient := api.NewClient(url, "test-key",
		api.WithMinInterval(time.Millisecond),
		api.WithBackoff(func() retry.Backoff { return retry.NewConstant(time.Millisecond) }),
		api.WithLogger(discard),
	)
	base := []Option{WithLogger(discard), WithCacheDir(t.TempDir())}
	return New(apiClient, append(base, opts...)...)
}

func writeAudio(t *testing.T) AudioHandle {
	t.Helper()

	path := filepath.Join(t.TempDir(), "recording.m4a")
	require.NoError(t, os.WriteFile(path, []byte("fake m4a bytes"), 0o600))
	return AudioHandle(path)
}

// whisperServer записывает поля формы последнего запроса
type whisperServer struct {
	*httptest.Server
	calls atomic.Int32

	mu     sync.Mutex
	fields map[string]string
}

func (ws *whisperServer) field(name string) string {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.fields[name]
}

func newWhisperServer(t *testing.T, handler func(calls int32, w http.ResponseWriter)) *whisperServer {
	t.Helper()

	ws := &whisperServer{}
	ws.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/audio/transcriptions", r.URL.Path)
		assert.NoError(t, r.ParseMultipartForm(1<<20))

		fields := map[string]string{}
		for k, v := range r.MultipartForm.Value {
			fields[k] = v[0]
		}
		if f, hdr, err := r.FormFile("file"); assert.NoError(t, err) {
			content, _ := io.ReadAll(f)
			_ = f.Close()
			fields["file.name"] = hdr.Filename
			fields["file.content"] = string(content)
		}

		ws.mu.Lock()
		ws.fields = fields
		ws.mu.Unlock()

		handler(ws.calls.Add(1), w)
	}))
	t.Cleanup(ws.Close)

	return ws
}

func TestTranscribeAudio_Success(t *testing.T) {
	srv := newWhisperServer(t, func(_ int32, w http.ResponseWriter) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"text":     " Hola mundo ",
			"language": "spanish",
			"duration": 2.4,
		})
	})
	c := newTestClient(t, srv.URL)

	res, err := c.TranscribeAudio(context.Background(), writeAudio(t), "Spanish")
	require.NoError(t, err)
	require.True(t, res.Success)
	require.NotNil(t, res.Text)
	assert.Equal(t, "Hola mundo", *res.Text)
	assert.Equal(t, "es", res.DetectedLanguage)
	assert.InDelta(t, 2.4, res.Duration, 1e-9)

	assert.Equal(t, DefaultTranscriptionModel, srv.field("model"))
	assert.Equal(t, "es", srv.field("language"))
	assert.Equal(t, "verbose_json", srv.field("response_format"))
	assert.Equal(t, "recording.m4a", srv.field("file.name"))
	assert.Equal(t, "fake m4a bytes", srv.field("file.content"))
}

func TestTranscribeAudio_RetryResendsFile(t *testing.T) {
	srv := newWhisperServer(t, func(calls int32, w http.ResponseWriter) {
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = io.WriteString(w, `{"error":{"message":"slow down"}}`)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"text": "hello", "language": "en"})
	})
	c := newTestClient(t, srv.URL)

	res, err := c.TranscribeAudio(context.Background(), writeAudio(t), "")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.EqualValues(t, 2, srv.calls.Load())
	// повторная попытка отправила файл целиком
	assert.Equal(t, "fake m4a bytes", srv.field("file.content"))
	assert.Empty(t, srv.field("language"))
}

func TestTranscribeAudio_Failures(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		wantMessage string
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, wantMessage: api.MessageRateLimited},
		{name: "bad key", status: http.StatusUnauthorized, wantMessage: api.MessageAuthFailed},
		{name: "bad audio", status: http.StatusBadRequest, wantMessage: "Invalid audio format. Please try recording again."},
		{name: "server error", status: http.StatusInternalServerError, wantMessage: "Transcription failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newWhisperServer(t, func(_ int32, w http.ResponseWriter) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, `{"error":{"message":"nope"}}`)
			})
			c := newTestClient(t, srv.URL)

			res, err := c.TranscribeAudio(context.Background(), writeAudio(t), "en")
			require.NoError(t, err)
			assert.False(t, res.Success)
			assert.Nil(t, res.Text)
			assert.Equal(t, tt.wantMessage, res.UserMessage)
		})
	}
}

func TestTranscribeAudio_MissingFile(t *testing.T) {
	c := newTestClient(t, "http://127.0.0.1:1")

	res, err := c.TranscribeAudio(context.Background(), AudioHandle(filepath.Join(t.TempDir(), "nope.m4a")), "en")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "Transcription failed", res.UserMessage)
}

func TestDetectLanguageFromAudio(t *testing.T) {
	srv := newWhisperServer(t, func(_ int32, w http.ResponseWriter) {
		_ = json.NewEncoder(w).Encode(map[string]any{"text": "Guten Tag", "language": "german"})
	})
	c := newTestClient(t, srv.URL)

	res, err := c.DetectLanguageFromAudio(context.Background(), writeAudio(t))
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "de", res.DetectedLanguage)
	assert.Equal(t, "German", res.LanguageName)
}

func TestDetectLanguageFromAudio_UnknownLanguage(t *testing.T) {
	srv := newWhisperServer(t, func(_ int32, w http.ResponseWriter) {
		_ = json.NewEncoder(w).Encode(map[string]any{"text": "hej", "language": "swedish"})
	})
	c := newTestClient(t, srv.URL)

	res, err := c.DetectLanguageFromAudio(context.Background(), writeAudio(t))
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "swedish", res.DetectedLanguage)
	assert.Equal(t, "Unknown", res.LanguageName)
}

func TestDetectLanguageFromAudio_Failure(t *testing.T) {
	srv := newWhisperServer(t, func(_ int32, w http.ResponseWriter) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	c := newTestClient(t, srv.URL)

	res, err := c.DetectLanguageFromAudio(context.Background(), writeAudio(t))
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "en", res.DetectedLanguage)
	assert.Equal(t, "English", res.LanguageName)
	assert.Equal(t, api.MessageAuthFailed, res.UserMessage)
}

func TestNotConfigured(t *testing.T) {
	apiClient := api.NewClient("http://127.0.0.1:1", "", api.WithLogger(discard))
	c := New(apiClient)

	_, err := c.TranscribeAudio(context.Background(), "x.m4a", "")
	assert.ErrorIs(t, err, api.ErrNotConfigured)
	_, err = c.DetectLanguageFromAudio(context.Background(), "x.m4a")
	assert.ErrorIs(t, err, api.ErrNotConfigured)
	_, err = c.SynthesizeSpeech(context.Background(), "hi", "en")
	assert.ErrorIs(t, err, api.ErrNotConfigured)
}

func newSpeechServer(t *testing.T, voices *[]string) *httptest.Server {
	t.Helper()

	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/audio/speech", r.URL.Path)

		var req speechRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, DefaultSpeechModel, req.Model)

		mu.Lock()
		*voices = append(*voices, req.Voice)
		mu.Unlock()

		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("ID3 fake mp3"))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSynthesizeSpeech_Voices(t *testing.T) {
	tests := []struct {
		lang      string
		wantVoice string
	}{
		{lang: "en", wantVoice: "onyx"},
		{lang: "es", wantVoice: "nova"},
		{lang: "fr", wantVoice: "shimmer"},
		{lang: "de", wantVoice: "onyx"},
		{lang: "klingon", wantVoice: "onyx"},
	}

	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			var voices []string
			srv := newSpeechServer(t, &voices)
			c := newTestClient(t, srv.URL)

			res, err := c.SynthesizeSpeech(context.Background(), "hello", tt.lang)
			require.NoError(t, err)
			require.True(t, res.Success)
			assert.Equal(t, tt.wantVoice, res.Clip.Voice)
			assert.Equal(t, []string{tt.wantVoice}, voices)

			data, err := os.ReadFile(res.Clip.Path)
			require.NoError(t, err)
			assert.Equal(t, "ID3 fake mp3", string(data))
			assert.Equal(t, len(data), res.Clip.Size)
		})
	}
}

type recordingPlayer struct {
	played []*AudioClip
	err    error
}

func (p *recordingPlayer) Play(ctx context.Context, clip *AudioClip) error {
	p.played = append(p.played, clip)
	return p.err
}

func TestSpeak(t *testing.T) {
	var voices []string
	srv := newSpeechServer(t, &voices)

	player := &recordingPlayer{}
	c := newTestClient(t, srv.URL, WithPlayer(player))

	res, err := c.Speak(context.Background(), "bonjour", "fr")
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Len(t, player.played, 1)
	assert.Equal(t, res.Clip.Path, player.played[0].Path)
}

func TestSpeak_PlaybackFailure(t *testing.T) {
	var voices []string
	srv := newSpeechServer(t, &voices)

	player := &recordingPlayer{err: errors.New("no audio device")}
	c := newTestClient(t, srv.URL, WithPlayer(player))

	res, err := c.Speak(context.Background(), "hola", "es")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.NotNil(t, res.Clip)
	assert.Equal(t, "Audio playback failed", res.UserMessage)
}

func TestSynthesizeSpeech_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":{"message":"input too long"}}`)
	}))
	defer srv.Close()

	player := &recordingPlayer{}
	c := newTestClient(t, srv.URL, WithPlayer(player))

	res, err := c.Speak(context.Background(), "hola", "es")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Nil(t, res.Clip)
	assert.Equal(t, "Invalid text format. Please try again.", res.UserMessage)
	assert.Empty(t, player.played)
}
