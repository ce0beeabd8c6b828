package api

import (
	"errors"
	"net/http"
)

// Category is the coarse kind of a failed remote call
type Category int

const (
	CategoryOther Category = iota
	CategoryRateLimited
	CategoryAuthFailed
	CategoryInvalidRequest
)

func (c Category) String() string {
	switch c {
	case CategoryRateLimited:
		return "rate-limited"
	case CategoryAuthFailed:
		return "auth-failed"
	case CategoryInvalidRequest:
		return "invalid-request"
	default:
		return "other"
	}
}

// Classify maps an error from a remote call to its category.
// Transport errors and timeouts are CategoryOther.
func Classify(err error) Category {
	var se *StatusError
	if !errors.As(err, &se) {
		return CategoryOther
	}

	switch se.StatusCode {
	case http.StatusTooManyRequests:
		return CategoryRateLimited
	case http.StatusUnauthorized:
		return CategoryAuthFailed
	case http.StatusBadRequest:
		return CategoryInvalidRequest
	default:
		return CategoryOther
	}
}

// Сообщения для пользователя, общие для всех клиентов
const (
	MessageRateLimited = "Too many requests. Please wait a moment and try again."
	MessageAuthFailed  = "API key error. Please check your configuration."
)

// Messages are the user-facing texts of one operation family
type Messages struct {
	InvalidRequest string
	Fallback       string
}

// For returns the user-facing message for err
func (m Messages) For(err error) string {
	switch Classify(err) {
	case CategoryRateLimited:
		return MessageRateLimited
	case CategoryAuthFailed:
		return MessageAuthFailed
	case CategoryInvalidRequest:
		return m.InvalidRequest
	default:
		return m.Fallback
	}
}
