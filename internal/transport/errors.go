package transport

import (
	"errors"
	"net/http"

	"github.com/LiamCoop/timetracker/internal/domain/project"
	"github.com/LiamCoop/timetracker/internal/domain/quote"
	"github.com/LiamCoop/timetracker/internal/domain/timeentry"
	"github.com/LiamCoop/timetracker/internal/domain/user"
)

// errBadRequest marks request decoding and validation failures.
var errBadRequest = errors.New("bad request")

// MapError translates a service error into a status code, error code and
// client-safe message. Unknown errors become a generic 500.
func MapError(err error) (int, string, string) {
	switch {
	case errors.Is(err, timeentry.ErrActiveEntryConflict):
		return http.StatusBadRequest, CodeActiveEntryConflict, err.Error()
	case errors.Is(err, timeentry.ErrEntryNotFound):
		return http.StatusNotFound, CodeNotFound, "Time entry not found"
	case errors.Is(err, project.ErrProjectNotFound):
		return http.StatusNotFound, CodeNotFound, "Project not found"
	case errors.Is(err, quote.ErrNoQuotes):
		return http.StatusNotFound, CodeNotFound, "No quotes available"
	case errors.Is(err, errBadRequest),
		errors.Is(err, project.ErrInvalidInput),
		errors.Is(err, timeentry.ErrInvalidInput),
		errors.Is(err, user.ErrInvalidInput):
		return http.StatusBadRequest, CodeBadRequest, err.Error()
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, CodeUnauthorized, "Unauthorized"
	default:
		return http.StatusInternalServerError, CodeInternal, "Internal server error"
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code, message := MapError(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	} else {
		s.logger.Debug("request rejected", "path", r.URL.Path, "status", status, "error", err)
	}
	writeErrorBody(w, status, code, message)
}
