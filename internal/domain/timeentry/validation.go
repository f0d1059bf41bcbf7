package timeentry

import (
	"strings"
	"unicode/utf8"
)

const maxDescriptionLength = 500

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
		return nil, ErrDescriptionTooLong
	}
	return &trimmed, nil
}

func validateListOptions(opts ListOptions) error {
	if opts.Limit < 0 {
		return ErrInvalidLimit
	}
	return nil
}
