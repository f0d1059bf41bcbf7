package transport

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/LiamCoop/timetracker/internal/domain/activity"
)

func (s *Server) handleSummaries(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.services.Summaries.Summaries(r.Context(), userID(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleWeeklyTime(w http.ResponseWriter, r *http.Request) {
	days, err := s.services.Summaries.WeeklyTime(r.Context(), userID(r), r.URL.Query().Get("projectId"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, days)
}

func (s *Server) handleDailyQuote(w http.ResponseWriter, r *http.Request) {
	q, err := s.services.Quotes.Random(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	var opts activity.ListOptions
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			s.writeError(w, r, fmt.Errorf("%w: limit must be a positive integer", errBadRequest))
			return
		}
		opts.Limit = limit
	}
	if projectID := r.URL.Query().Get("projectId"); projectID != "" {
		opts.ProjectID = &projectID
	}

	entries, err := s.services.Activity.Recent(r.Context(), userID(r), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
