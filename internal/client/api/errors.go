package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotConfigured is returned when no API key is set
var ErrNotConfigured = errors.New("API key not configured")

// StatusError is a non-2xx response of the remote API
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	switch e.StatusCode {
	case http.StatusTooManyRequests:
		return fmt.Sprintf("rate limit exceeded: %s", e.Message)
	case http.StatusUnauthorized:
		return fmt.Sprintf("authentication failed: %s", e.Message)
	case http.StatusBadRequest:
		return fmt.Sprintf("invalid request: %s", e.Message)
	default:
		return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
	}
}

// errorResponse тело ошибки удалённого API
type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}
