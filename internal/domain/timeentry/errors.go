package timeentry

import (
	"errors"
	"fmt"
)

var (
	// ErrEntryNotFound indicates the entry doesn't exist or belongs to someone else.
	ErrEntryNotFound = errors.New("time entry not found")
	// ErrActiveEntryConflict indicates the user already has a running entry.
	ErrActiveEntryConflict = errors.New("there is already an active time entry, end it before starting a new one")
	// ErrInvalidInput indicates invalid time entry input.
	ErrInvalidInput = errors.New("invalid time entry input")

	ErrProjectRequired    = fmt.Errorf("%w: project id is required", ErrInvalidInput)
	ErrDescriptionTooLong = fmt.Errorf("%w: description must be less than %d characters", ErrInvalidInput, maxDescriptionLength)
	ErrInvalidLimit       = fmt.Errorf("%w: limit must be a positive integer", ErrInvalidInput)
)
