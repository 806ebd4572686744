package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that a user with this email or username
	// already exists. Also returned when a concurrent registration loses the
	// race against the unique constraints.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrProductNotFound indicates that product was not found in storage
	ErrProductNotFound = errors.New("product not found")
)
