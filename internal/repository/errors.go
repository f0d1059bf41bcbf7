package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist or isn't owned by the caller
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a uniqueness invariant would be violated
	ErrConflict = errors.New("conflict")

	// ErrForeignKeyViolation is returned when a foreign key constraint fails
	ErrForeignKeyViolation = errors.New("foreign key violation")
)
