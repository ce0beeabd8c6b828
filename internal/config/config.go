// Package config loads client settings from defaults, an optional .env
// file, TRANSCONNECT_* environment variables and command line flags, in
// that order of precedence (later wins).
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix префикс переменных окружения
const EnvPrefix = "TRANSCONNECT"

// Storage backends
const (
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
)

// Config настройки клиента
type Config struct {
	DBPath  string `envconfig:"DB_PATH" default:"transconnect.db"`
	Backend string `envconfig:"BACKEND" default:"bolt"`

	APIKey             string        `envconfig:"API_KEY"`
	BaseURL            string        `envconfig:"BASE_URL" default:"https://api.openai.com/v1"`
	ChatModel          string        `envconfig:"CHAT_MODEL" default:"gpt-3.5-turbo"`
	TranscriptionModel string        `envconfig:"TRANSCRIPTION_MODEL" default:"whisper-1"`
	SpeechModel        string        `envconfig:"SPEECH_MODEL" default:"tts-1"`
	HTTPTimeout        time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
	MinRequestInterval time.Duration `envconfig:"MIN_REQUEST_INTERVAL" default:"1s"`
	MaxRetries         int           `envconfig:"MAX_RETRIES" default:"3"`

	CacheDir string `envconfig:"CACHE_DIR"`
	Player   string `envconfig:"PLAYER"`
	DeviceID string `envconfig:"DEVICE_ID"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	ShowVersion bool `ignored:"true"`
}

// Load builds the configuration. envFile may be empty or missing.
// It returns the arguments left after flag parsing.
func Load(args []string, envFile string) (*Config, []string, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to process env: %w", err)
	}

	// ключ в привычной переменной OpenAI
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = os.TempDir()
	}

	flags := flag.NewFlagSet("transconnect", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	flags.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	flags.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to local database")
	flags.StringVar(&cfg.Backend, "backend", cfg.Backend, "Storage backend: bolt or sqlite")
	flags.StringVar(&cfg.APIKey, "api-key", cfg.APIKey, "API key of the translation service")
	flags.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "Base URL of the translation service")
	flags.StringVar(&cfg.CacheDir, "cache-dir", cfg.CacheDir, "Directory for synthesized audio")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")

	if err := flags.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	return &cfg, flags.Args(), nil
}

// Validate checks values that have no sensible fallback
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendBolt, BackendSQLite:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Backend)
	}
	if c.DBPath == "" {
		return errors.New("database path is empty")
	}
	if c.MinRequestInterval <= 0 {
		return fmt.Errorf("min request interval must be positive, got %s", c.MinRequestInterval)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be positive, got %s", c.HTTPTimeout)
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("max retries must be at least 1, got %d", c.MaxRetries)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
