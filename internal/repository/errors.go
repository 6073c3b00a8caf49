package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrConcurrencyConflict is returned when a versioned write lost a
	// race: the row exists but its version moved since it was read.
	// Callers reload and re-validate before retrying.
	ErrConcurrencyConflict = errors.New("concurrent modification detected")
)
