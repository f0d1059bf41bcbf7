package project

import (
	"errors"
	"fmt"
)

var (
	// ErrProjectNotFound indicates the project doesn't exist or belongs to someone else.
	ErrProjectNotFound = errors.New("project not found")
	// ErrInvalidInput indicates invalid project input.
	ErrInvalidInput = errors.New("invalid project input")
	// ErrNameRequired indicates a blank project name.
	ErrNameRequired = fmt.Errorf("%w: project name is required", ErrInvalidInput)
	// ErrInvalidColor indicates a color that isn't a 6-digit hex code.
	ErrInvalidColor = fmt.Errorf("%w: color must be a valid hex color code", ErrInvalidInput)
)
