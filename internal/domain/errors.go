package domain

import "errors"

var (
	// ErrInvalidSession means the messaging-platform credential is unusable
	// (unauthorized, deactivated, or unregistered). It is the only error that
	// terminates an account's session loop.
	ErrInvalidSession = errors.New("invalid session")

	ErrAccountNotFound = errors.New("account not found")
)
