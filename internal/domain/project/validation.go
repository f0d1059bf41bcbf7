package project

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	maxNameLength        = 100
	maxDescriptionLength = 500
)

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// NormalizeName trims a project name and enforces its bounds.
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameRequired
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return "", fmt.Errorf("%w: name must be less than %d characters", ErrInvalidInput, maxNameLength)
	}
	return name, nil
}

// NormalizeDescription trims a description; blank descriptions become nil.
func NormalizeDescription(desc *string) (*string, error) {
	if desc == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*desc)
	if trimmed == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(trimmed) > maxDescriptionLength {
		return nil, fmt.Errorf("%w: description must be less than %d characters", ErrInvalidInput, maxDescriptionLength)
	}
	return &trimmed, nil
}

// NormalizeColor applies the default color and validates the hex form.
func NormalizeColor(color string) (string, error) {
	color = strings.TrimSpace(color)
	if color == "" {
		return DefaultColor, nil
	}
	if !hexColor.MatchString(color) {
		return "", ErrInvalidColor
	}
	return color, nil
}
