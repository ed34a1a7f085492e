package service

import "errors"

// Common service errors.
var (
	// Account errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingCredentials = errors.New("email and password are required")

	// General errors
	ErrInternalError = errors.New("internal error")
)
