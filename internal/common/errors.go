// Package common defines shared constants and sentinel errors used across
// the authkeeper packages. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Credential errors.
	ErrDuplicateUser      = errors.New("user already exists")
	ErrUnknownUser        = errors.New("unknown user")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrHashing            = errors.New("hashing error")

	// Lockout and session errors.
	ErrLocked         = errors.New("account is locked")
	ErrInvalidSession = errors.New("invalid session")

	// Registration input errors.
	ErrValidation   = errors.New("validation error")
	ErrWeakPassword = errors.New("password is too weak")
)
