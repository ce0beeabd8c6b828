package api

import (
	"log/slog"
	"net/http"
	"time"
)

// loggingTransport логирует каждый запрос к API: метод, путь, статус,
// длительность. Заголовки и тело (ключ, тексты пользователя) не логируются.
type loggingTransport struct {
	next   http.RoundTripper
	logger *slog.Logger
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := t.next.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		t.logger.Log(req.Context(), slog.LevelWarn, "HTTP request failed",
			"method", req.Method,
			"path", req.URL.Path,
			"duration_ms", duration.Milliseconds(),
			"error", err,
		)
		return nil, err
	}

	// Уровень зависит от статуса: успешные запросы только в debug
	level := slog.LevelDebug
	if resp.StatusCode >= 500 {
		level = slog.LevelError
	} else if resp.StatusCode >= 400 {
		level = slog.LevelWarn
	}

	t.logger.Log(req.Context(), level, "HTTP request",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration_ms", duration.Milliseconds(),
		"content_length", resp.ContentLength,
	)
	return resp, nil
}

// withLogging возвращает копию hc с логирующим транспортом
func withLogging(hc *http.Client, logger *slog.Logger) *http.Client {
	wrapped := *hc
	next := hc.Transport
	if next == nil {
		next = http.DefaultTransport
	}
	wrapped.Transport = &loggingTransport{next: next, logger: logger}
	return &wrapped
}
