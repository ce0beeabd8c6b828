// Package api is the HTTP client of the remote translation service.
// Every call goes through Execute, which spaces requests at least the
// minimum interval apart and retries rate-limited responses with
// exponential backoff.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/time/rate"
)

// Значения по умолчанию
const (
	DefaultBaseURL     = "https://api.openai.com/v1"
	DefaultTimeout     = 30 * time.Second
	DefaultMinInterval = time.Second
	DefaultMaxRetries  = 3
	DefaultBaseBackoff = time.Second
)

// Client представляет HTTP клиент удалённого API
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *slog.Logger

	maxRetries  int
	baseBackoff func() retry.Backoff

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error

	// mu защищает резервирование слота отправки
	mu           sync.Mutex
	limiter      *rate.Limiter
	lastDispatch time.Time
}

// Option настраивает Client
type Option func(*Client)

// WithHTTPClient задаёт http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout задаёт таймаут одного запроса
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithMinInterval задаёт минимальный интервал между запросами
func WithMinInterval(d time.Duration) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Every(d), 1) }
}

// WithMaxRetries задаёт общее число попыток
func WithMaxRetries(n int) Option {
	return func(c *Client) { c.maxRetries = n }
}

// WithBackoff задаёт базовую стратегию ожидания между попытками;
// ограничение числа попыток накладывается клиентом.
func WithBackoff(factory func() retry.Backoff) Option {
	return func(c *Client) { c.baseBackoff = factory }
}

// WithClock подменяет часы и ожидание троттлинга
func WithClock(now func() time.Time, sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Client) {
		c.now = now
		c.sleep = sleep
	}
}

// WithLogger задаёт логгер
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// NewClient создает новый API клиент
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger:     slog.Default(),
		maxRetries: DefaultMaxRetries,
		baseBackoff: func() retry.Backoff {
			return retry.NewExponential(DefaultBaseBackoff)
		},
		now:     time.Now,
		sleep:   sleepContext,
		limiter: rate.NewLimiter(rate.Every(DefaultMinInterval), 1),
	}

	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.maxRetries < 1 {
		c.maxRetries = 1
	}
	c.httpClient = withLogging(c.httpClient, c.logger)

	return c
}

// Configured reports whether an API key is set
func (c *Client) Configured() bool {
	return strings.TrimSpace(c.apiKey) != ""
}

// PostJSON отправляет JSON и декодирует JSON-ответ в result
func (c *Client) PostJSON(ctx context.Context, path string, body, result any) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	respBody, err := c.doRequest(ctx, path, "application/json", bytes.NewReader(jsonData))
	if err != nil {
		return err
	}

	return decode(respBody, result)
}

// PostRaw отправляет JSON и возвращает тело ответа как есть (аудио)
func (c *Client) PostRaw(ctx context.Context, path string, body any) ([]byte, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	return c.doRequest(ctx, path, "application/json", bytes.NewReader(jsonData))
}

// FilePart файл multipart-запроса
type FilePart struct {
	Field    string
	FileName string
	Content  io.Reader
}

// PostMultipart отправляет multipart/form-data с полями и файлом
func (c *Client) PostMultipart(ctx context.Context, path string, fields map[string]string, file FilePart, result any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile(file.Field, file.FileName)
	if err != nil {
		return fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file.Content); err != nil {
		return fmt.Errorf("failed to read audio: %w", err)
	}

	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return fmt.Errorf("failed to write field %s: %w", name, err)
		}
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finish multipart body: %w", err)
	}

	respBody, err := c.doRequest(ctx, path, w.FormDataContentType(), &buf)
	if err != nil {
		return err
	}

	return decode(respBody, result)
}

func decode(respBody []byte, result any) error {
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// doRequest выполняет POST запрос и возвращает тело успешного ответа
func (c *Client) doRequest(ctx context.Context, path, contentType string, body io.Reader) ([]byte, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := strings.TrimSpace(string(respBody))
		var errResp errorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error.Message != "" {
			message = errResp.Error.Message
		}
		return nil, &StatusError{StatusCode: resp.StatusCode, Message: message}
	}

	return respBody, nil
}
