package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/LiamCoop/timetracker/internal/clock"
	"github.com/LiamCoop/timetracker/internal/domain/activity"
	"github.com/LiamCoop/timetracker/internal/repository"
	"github.com/google/uuid"
)

// Service handles project operations.
type Service struct {
	repo        Repository
	activities  activity.Repository
	invalidator Invalidator
	clock       clock.Clock
	logger      *slog.Logger
}

// NewService creates a new project service. activities, invalidator and
// clk may be nil.
func NewService(repo Repository, activities activity.Repository, invalidator Invalidator, clk clock.Clock, logger *slog.Logger) *Service {
	if clk == nil {
		clk = clock.Real(nil)
	}
	return &Service{repo: repo, activities: activities, invalidator: invalidator, clock: clk, logger: logger}
}

// CreateRequest defines project creation inputs.
type CreateRequest struct {
	Name        string
	Description *string
	Color       string
}

// UpdateRequest defines a partial project update. Nil fields are kept.
type UpdateRequest struct {
	Name        *string
	Description *string
	Color       *string
	IsActive    *bool
}

// Create creates a new active project.
func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (*Project, error) {
	name, err := NormalizeName(req.Name)
	if err != nil {
		return nil, err
	}
	desc, err := NormalizeDescription(req.Description)
	if err != nil {
		return nil, err
	}
	color, err := NormalizeColor(req.Color)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	proj := &Project{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        name,
		Description: desc,
		Color:       color,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, proj); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	s.recordChange(ctx, proj, activity.TypeProjectCreated, fmt.Sprintf("created project %q", proj.Name))
	return proj, nil
}

// Get fetches a project owned by userID.
func (s *Service) Get(ctx context.Context, userID, id string) (*Project, error) {
	proj, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return proj, nil
}

// GetActive fetches a project that can accept new time entries.
func (s *Service) GetActive(ctx context.Context, userID, id string) (*Project, error) {
	proj, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if !proj.IsActive {
		return nil, ErrProjectNotFound
	}
	return proj, nil
}

// List returns the user's projects. Without IncludeInactive only active
// projects are returned, most recently updated first.
func (s *Service) List(ctx context.Context, userID string, opts ListOptions) ([]Project, error) {
	projects, err := s.repo.List(ctx, userID, opts)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return projects, nil
}

// Update applies a partial update. Setting IsActive back to true restores
// an archived project.
func (s *Service) Update(ctx context.Context, userID, id string, req UpdateRequest) (*Project, error) {
	proj, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name, err := NormalizeName(*req.Name)
		if err != nil {
			return nil, err
		}
		proj.Name = name
	}
	if req.Description != nil {
		desc, err := NormalizeDescription(req.Description)
		if err != nil {
			return nil, err
		}
		proj.Description = desc
	}
	if req.Color != nil {
		color, err := NormalizeColor(*req.Color)
		if err != nil {
			return nil, err
		}
		proj.Color = color
	}
	if req.IsActive != nil {
		proj.IsActive = *req.IsActive
	}
	proj.UpdatedAt = s.clock.Now()

	if err := s.save(ctx, proj); err != nil {
		return nil, err
	}

	s.recordChange(ctx, proj, activity.TypeProjectUpdated, fmt.Sprintf("updated project %q", proj.Name))
	return proj, nil
}

// Archive soft-deletes a project. Its time entries keep referencing it.
func (s *Service) Archive(ctx context.Context, userID, id string) error {
	proj, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}

	proj.IsActive = false
	proj.UpdatedAt = s.clock.Now()
	if err := s.save(ctx, proj); err != nil {
		return err
	}

	s.recordChange(ctx, proj, activity.TypeProjectArchived, fmt.Sprintf("archived project %q", proj.Name))
	return nil
}

func (s *Service) save(ctx context.Context, proj *Project) error {
	if err := s.repo.Update(ctx, proj); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("updating project: %w", err)
	}
	return nil
}

func (s *Service) recordChange(ctx context.Context, proj *Project, kind activity.Type, summary string) {
	if s.invalidator != nil {
		if err := s.invalidator.Invalidate(ctx, proj.UserID); err != nil && s.logger != nil {
			s.logger.Warn("failed to invalidate summaries", "user_id", proj.UserID, "error", err)
		}
	}
	if s.activities != nil {
		err := s.activities.Log(ctx, &activity.Entry{
			UserID:    proj.UserID,
			ProjectID: &proj.ID,
			Type:      kind,
			Summary:   summary,
			CreatedAt: s.clock.Now(),
		})
		if err != nil && s.logger != nil {
			s.logger.Warn("failed to log activity", "user_id", proj.UserID, "type", kind, "error", err)
		}
	}
}
