// Package speech transcribes recorded audio and synthesizes speech
// through the remote audio API.
package speech

import (
	"log/slog"
	"os"
	"time"

	"github.com/iudanet/transconnection/internal/client/api"
)

// Модели по умолчанию
const (
	DefaultTranscriptionModel = "whisper-1"
	DefaultSpeechModel        = "tts-1"
)

const (
	transcriptionPath = "/audio/transcriptions"
	speechPath        = "/audio/speech"
)

var (
	transcribeMessages = api.Messages{
		InvalidRequest: "Invalid audio format. Please try recording again.",
		Fallback:       "Transcription failed",
	}
	detectMessages = api.Messages{
		InvalidRequest: "Invalid audio format. Please try recording again.",
		Fallback:       "Language detection failed",
	}
	synthesizeMessages = api.Messages{
		InvalidRequest: "Invalid text format. Please try again.",
		Fallback:       "Speech synthesis failed",
	}
)

// AudioHandle путь к записанному аудиофайлу
type AudioHandle string

// Client работает с распознаванием и синтезом речи
type Client struct {
	api                *api.Client
	transcriptionModel string
	speechModel        string
	cacheDir           string
	player             Player
	logger             *slog.Logger
	now                func() time.Time
}

// Option настраивает Client
type Option func(*Client)

// WithModels задаёт модели распознавания и синтеза; пустые значения
// оставляют модели по умолчанию
func WithModels(transcription, speech string) Option {
	return func(c *Client) {
		if transcription != "" {
			c.transcriptionModel = transcription
		}
		if speech != "" {
			c.speechModel = speech
		}
	}
}

// WithCacheDir задаёт каталог для синтезированного аудио
func WithCacheDir(dir string) Option {
	return func(c *Client) {
		if dir != "" {
			c.cacheDir = dir
		}
	}
}

// WithPlayer задаёт проигрыватель для Speak
func WithPlayer(p Player) Option {
	return func(c *Client) { c.player = p }
}

// WithLogger задаёт логгер
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a speech client on top of the shared API client
func New(apiClient *api.Client, opts ...Option) *Client {
	c := &Client{
		api:                apiClient,
		transcriptionModel: DefaultTranscriptionModel,
		speechModel:        DefaultSpeechModel,
		cacheDir:           os.TempDir(),
		player:             NopPlayer{},
		logger:             slog.Default(),
		now:                time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.player == nil {
		c.player = NopPlayer{}
	}
	return c
}
