package mcp

import (
	"errors"
	"fmt"

	"github.com/LiamCoop/timetracker/internal/domain/project"
	"github.com/LiamCoop/timetracker/internal/domain/quote"
	"github.com/LiamCoop/timetracker/internal/domain/timeentry"
)

const codeInternal = "INTERNAL_ERROR"

// APIError represents an MCP tool error.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. Unknown errors map to a
// generic internal error.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, timeentry.ErrActiveEntryConflict):
		return &APIError{Code: "ACTIVE_ENTRY_CONFLICT", Message: err.Error(), RecoveryHint: "Call stop_tracking or use switch_tracking"}
	case errors.Is(err, timeentry.ErrEntryNotFound):
		return &APIError{Code: "NOT_FOUND", Message: "time entry not found", RecoveryHint: "Call get_active_entry or list_time_entries"}
	case errors.Is(err, project.ErrProjectNotFound):
		return &APIError{Code: "NOT_FOUND", Message: "project not found", RecoveryHint: "Call list_projects for valid IDs"}
	case errors.Is(err, quote.ErrNoQuotes):
		return &APIError{Code: "NOT_FOUND", Message: "no quotes available"}
	case errors.Is(err, project.ErrInvalidInput), errors.Is(err, timeentry.ErrInvalidInput), errors.Is(err, errInvalidArgument):
		return &APIError{Code: "BAD_REQUEST", Message: err.Error()}
	case errors.Is(err, ErrUnauthorized):
		return &APIError{Code: "UNAUTHORIZED", Message: "unauthorized"}
	default:
		return &APIError{Code: codeInternal, Message: "internal error"}
	}
}
