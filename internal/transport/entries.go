package transport

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/LiamCoop/timetracker/internal/domain/timeentry"
	"github.com/go-chi/chi/v5"
)

type switchResponse struct {
	Entry   *timeentry.TimeEntry `json:"entry"`
	Stopped *timeentry.TimeEntry `json:"stopped"`
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := timeentry.ListOptions{
		Active:    q.Get("active") == "true",
		Completed: q.Get("completed") == "true",
		ProjectID: q.Get("projectId"),
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			s.writeError(w, r, fmt.Errorf("%w: limit must be a positive integer", errBadRequest))
			return
		}
		opts.Limit = limit
	}

	entries, err := s.services.Entries.List(r.Context(), userID(r), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleStartEntry(w http.ResponseWriter, r *http.Request) {
	var req startEntryRequest
	if err := decode(r, &req, false); err != nil {
		s.writeError(w, r, err)
		return
	}

	entry, err := s.services.Entries.Start(r.Context(), userID(r), timeentry.StartRequest{
		ProjectID:   req.ProjectID,
		Description: req.Description,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleSwitchEntry(w http.ResponseWriter, r *http.Request) {
	var req startEntryRequest
	if err := decode(r, &req, false); err != nil {
		s.writeError(w, r, err)
		return
	}

	entry, stopped, err := s.services.Entries.Switch(r.Context(), userID(r), timeentry.StartRequest{
		ProjectID:   req.ProjectID,
		Description: req.Description,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, switchResponse{Entry: entry, Stopped: stopped})
}

func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	var req stopEntryRequest
	if err := decode(r, &req, true); err != nil {
		s.writeError(w, r, err)
		return
	}

	entry, err := s.services.Entries.Update(r.Context(), userID(r), chi.URLParam(r, "id"), timeentry.Patch{
		EndTime:     req.EndTime,
		Description: req.Description.Patch(),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// handleStopEntry also serves page-unload beacons, which arrive as
// text/plain or with no body at all.
func (s *Server) handleStopEntry(w http.ResponseWriter, r *http.Request) {
	var req stopEntryRequest
	if err := decode(r, &req, true); err != nil {
		s.writeError(w, r, err)
		return
	}

	entry, err := s.services.Entries.Stop(r.Context(), userID(r), chi.URLParam(r, "id"), timeentry.StopRequest{
		EndTime:     req.EndTime,
		Description: req.Description.Patch(),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	if err := s.services.Entries.Delete(r.Context(), userID(r), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeSuccess(w)
}

func (s *Server) handleWeeklyEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := s.services.Entries.Weekly(r.Context(), userID(r), r.URL.Query().Get("projectId"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
