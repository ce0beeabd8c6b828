package validation

import "errors"

// ErrInvalid matches every *Error via errors.Is
var ErrInvalid = errors.New("validation failed")

// Error describes the first rejected registration field
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is reports ErrInvalid as the error's kind
func (e *Error) Is(target error) bool {
	return target == ErrInvalid
}
