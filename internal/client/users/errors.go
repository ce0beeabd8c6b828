package users

import "errors"

var (
	// ErrDuplicateEmail indicates that another user already has the email
	ErrDuplicateEmail = errors.New("a user with this email already exists")

	// ErrDuplicateName indicates that another user already has the first and last name
	ErrDuplicateName = errors.New("a user with this name already exists")

	// ErrUserNotFound indicates that no user matches the lookup
	ErrUserNotFound = errors.New("user not found")
)
