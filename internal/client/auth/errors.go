package auth

import "errors"

// ErrInvalidCredentials indicates that the password does not match
var ErrInvalidCredentials = errors.New("invalid password")
