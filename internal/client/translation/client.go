// Package translation translates and analyses text through the remote
// chat-completions API.
package translation

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/iudanet/transconnection/internal/client/api"
)

// DefaultModel модель chat-completions по умолчанию
const DefaultModel = "gpt-3.5-turbo"

const chatPath = "/chat/completions"

var errEmptyResponse = errors.New("empty response from model")

// Client переводит текст через chat-completions
type Client struct {
	api    *api.Client
	model  string
	logger *slog.Logger
	now    func() time.Time
}

// Option настраивает Client
type Option func(*Client)

// WithModel задаёт модель
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithLogger задаёт логгер
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithClock подменяет источник времени для меток результата
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// New creates a translation client on top of the shared API client
func New(apiClient *api.Client, opts ...Option) *Client {
	c := &Client{
		api:    apiClient,
		model:  DefaultModel,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// completion параметры одного запроса к модели
type completion struct {
	system      string
	prompt      string
	maxTokens   int
	temperature float64
}

// complete sends one chat request through the throttled, retrying client
// and returns the trimmed reply.
func (c *Client) complete(ctx context.Context, in completion) (string, error) {
	req := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: in.system},
			{Role: "user", Content: in.prompt},
		},
		MaxTokens:   in.maxTokens,
		Temperature: in.temperature,
	}

	return api.Execute(ctx, c.api, func(ctx context.Context) (string, error) {
		var resp chatResponse
		if err := c.api.PostJSON(ctx, chatPath, req, &resp); err != nil {
			return "", err
		}
		if len(resp.Choices) == 0 {
			return "", errEmptyResponse
		}
		return strings.TrimSpace(resp.Choices[0].Message.Content), nil
	})
}
