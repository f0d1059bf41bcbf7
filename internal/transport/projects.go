package transport

import (
	"net/http"

	"github.com/LiamCoop/timetracker/internal/domain/project"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	opts := project.ListOptions{IncludeInactive: r.URL.Query().Get("includeInactive") == "true"}
	projects, err := s.services.Projects.List(r.Context(), userID(r), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := decode(r, &req, false); err != nil {
		s.writeError(w, r, err)
		return
	}

	proj, err := s.services.Projects.Create(r.Context(), userID(r), project.CreateRequest{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, proj)
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	var req updateProjectRequest
	if err := decode(r, &req, false); err != nil {
		s.writeError(w, r, err)
		return
	}

	proj, err := s.services.Projects.Update(r.Context(), userID(r), chi.URLParam(r, "id"), project.UpdateRequest{
		Name:        req.Name,
		Description: req.Description.Patch(),
		Color:       req.Color,
		IsActive:    req.IsActive,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, proj)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.services.Projects.Archive(r.Context(), userID(r), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeSuccess(w)
}
