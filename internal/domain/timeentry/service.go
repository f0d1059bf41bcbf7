package timeentry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/LiamCoop/timetracker/internal/clock"
	"github.com/LiamCoop/timetracker/internal/domain/activity"
	"github.com/LiamCoop/timetracker/internal/domain/project"
	"github.com/LiamCoop/timetracker/internal/repository"
	"github.com/google/uuid"
)

// Service manages the time entry lifecycle. A user has at most one running
// entry at any time.
type Service struct {
	entries     Repository
	projects    ProjectRepository
	activities  activity.Repository
	invalidator Invalidator
	clock       clock.Clock
	logger      *slog.Logger
}

// NewService creates a new time entry service. activities, invalidator and
// clk may be nil.
func NewService(entries Repository, projects ProjectRepository, activities activity.Repository, invalidator Invalidator, clk clock.Clock, logger *slog.Logger) *Service {
	if clk == nil {
		clk = clock.Real(nil)
	}
	return &Service{
		entries:     entries,
		projects:    projects,
		activities:  activities,
		invalidator: invalidator,
		clock:       clk,
		logger:      logger,
	}
}

// StartRequest defines the inputs for starting tracking.
type StartRequest struct {
	ProjectID   string
	Description *string
}

// StopRequest defines the inputs for stopping an entry. EndTime defaults
// to now; a nil Description keeps the current one.
type StopRequest struct {
	EndTime     *time.Time
	Description *string
}

// Patch amends an entry. A running entry without EndTime is closed now.
type Patch struct {
	EndTime     *time.Time
	Description *string
}

// Start begins tracking against an active project owned by userID.
func (s *Service) Start(ctx context.Context, userID string, req StartRequest) (*TimeEntry, error) {
	entry, err := s.newEntry(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	if err := s.entries.CreateActive(ctx, entry); err != nil {
		return nil, translateCreateErr(err)
	}

	s.recordChange(ctx, entry, activity.TypeEntryStarted, fmt.Sprintf("started tracking %s", projectName(entry)))
	return entry, nil
}

// Switch stops the running entry, if any, and starts a new one atomically.
// It returns the new entry and the entry that was stopped (nil when nothing
// was running).
func (s *Service) Switch(ctx context.Context, userID string, req StartRequest) (*TimeEntry, *TimeEntry, error) {
	entry, err := s.newEntry(ctx, userID, req)
	if err != nil {
		return nil, nil, err
	}

	stopped, err := s.entries.Switch(ctx, userID, entry.StartTime, entry)
	if err != nil {
		return nil, nil, translateCreateErr(err)
	}

	if stopped != nil {
		s.recordChange(ctx, stopped, activity.TypeEntryStopped, fmt.Sprintf("stopped after %d minutes", stopped.Minutes()))
	}
	s.recordChange(ctx, entry, activity.TypeEntryStarted, fmt.Sprintf("started tracking %s", projectName(entry)))
	return entry, stopped, nil
}

// Stop closes an entry. Stopping an already closed entry overwrites its end
// time and duration.
func (s *Service) Stop(ctx context.Context, userID, entryID string, req StopRequest) (*TimeEntry, error) {
	entry, err := s.Get(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}
	return s.stop(ctx, entry, req)
}

// StopActive closes whatever entry is running for userID.
func (s *Service) StopActive(ctx context.Context, userID string, req StopRequest) (*TimeEntry, error) {
	entry, err := s.Active(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.stop(ctx, entry, req)
}

func (s *Service) stop(ctx context.Context, entry *TimeEntry, req StopRequest) (*TimeEntry, error) {
	desc, err := NormalizeDescription(req.Description)
	if err != nil {
		return nil, err
	}

	now := s.now()
	end := now
	if req.EndTime != nil {
		end = req.EndTime.Truncate(time.Millisecond)
	}
	entry.Close(end, now)
	if req.Description != nil {
		entry.Description = desc
	}
	entry.UpdatedAt = now

	if err := s.save(ctx, entry); err != nil {
		return nil, err
	}

	s.recordChange(ctx, entry, activity.TypeEntryStopped, fmt.Sprintf("stopped after %d minutes", entry.Minutes()))
	return entry, nil
}

// Update amends an entry's end time and description, recomputing duration.
// A running entry is closed: at patch.EndTime if given, otherwise now.
func (s *Service) Update(ctx context.Context, userID, entryID string, patch Patch) (*TimeEntry, error) {
	entry, err := s.Get(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}
	desc, err := NormalizeDescription(patch.Description)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var end time.Time
	switch {
	case patch.EndTime != nil:
		end = patch.EndTime.Truncate(time.Millisecond)
	case entry.Running():
		end = now
	default:
		end = *entry.EndTime
	}
	wasRunning := entry.Running()
	entry.Close(end, now)
	if patch.Description != nil {
		entry.Description = desc
	}
	entry.UpdatedAt = now

	if err := s.save(ctx, entry); err != nil {
		return nil, err
	}

	if wasRunning {
		s.recordChange(ctx, entry, activity.TypeEntryStopped, fmt.Sprintf("stopped after %d minutes", entry.Minutes()))
	} else {
		s.recordChange(ctx, entry, activity.TypeEntryUpdated, fmt.Sprintf("updated entry, now %d minutes", entry.Minutes()))
	}
	return entry, nil
}

// Delete removes an entry permanently.
func (s *Service) Delete(ctx context.Context, userID, entryID string) error {
	entry, err := s.Get(ctx, userID, entryID)
	if err != nil {
		return err
	}

	if err := s.entries.Delete(ctx, userID, entryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEntryNotFound
		}
		return fmt.Errorf("deleting time entry: %w", err)
	}

	s.recordChange(ctx, entry, activity.TypeEntryDeleted, fmt.Sprintf("deleted %d minute entry", entry.Minutes()))
	return nil
}

// Get fetches an entry owned by userID.
func (s *Service) Get(ctx context.Context, userID, entryID string) (*TimeEntry, error) {
	entry, err := s.entries.Get(ctx, userID, entryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("getting time entry: %w", err)
	}
	return entry, nil
}

// Active returns the user's running entry, or ErrEntryNotFound.
func (s *Service) Active(ctx context.Context, userID string) (*TimeEntry, error) {
	entry, err := s.entries.GetActive(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("getting active time entry: %w", err)
	}
	return entry, nil
}

// List returns the user's entries, newest first, each with its project.
func (s *Service) List(ctx context.Context, userID string, opts ListOptions) ([]TimeEntry, error) {
	if err := validateListOptions(opts); err != nil {
		return nil, err
	}
	if opts.Active {
		opts.Completed = false
	}
	entries, err := s.entries.List(ctx, userID, opts)
	if err != nil {
		return nil, fmt.Errorf("listing time entries: %w", err)
	}
	return entries, nil
}

// Weekly returns the completed entries of a project that started in the
// current Sunday-based week.
func (s *Service) Weekly(ctx context.Context, userID, projectID string) ([]TimeEntry, error) {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return nil, ErrProjectRequired
	}
	weekStart := clock.StartOfWeek(s.now())
	weekEnd := weekStart.AddDate(0, 0, 7)
	return s.List(ctx, userID, ListOptions{
		Completed: true,
		ProjectID: projectID,
		Since:     &weekStart,
		Until:     &weekEnd,
	})
}

func (s *Service) newEntry(ctx context.Context, userID string, req StartRequest) (*TimeEntry, error) {
	projectID := strings.TrimSpace(req.ProjectID)
	if projectID == "" {
		return nil, ErrProjectRequired
	}
	desc, err := NormalizeDescription(req.Description)
	if err != nil {
		return nil, err
	}

	proj, err := s.projects.Get(ctx, userID, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, project.ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	if !proj.IsActive {
		return nil, project.ErrProjectNotFound
	}

	now := s.now()
	return &TimeEntry{
		ID:          uuid.NewString(),
		UserID:      userID,
		ProjectID:   proj.ID,
		StartTime:   now,
		Description: desc,
		CreatedAt:   now,
		UpdatedAt:   now,
		Project:     proj,
	}, nil
}

func (s *Service) save(ctx context.Context, entry *TimeEntry) error {
	if err := s.entries.Update(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEntryNotFound
		}
		return fmt.Errorf("updating time entry: %w", err)
	}
	return nil
}

// now is truncated to the storage precision so returned entries match what
// a later read produces.
func (s *Service) now() time.Time {
	return s.clock.Now().Truncate(time.Millisecond)
}

func translateCreateErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrConflict):
		return ErrActiveEntryConflict
	case errors.Is(err, repository.ErrForeignKeyViolation):
		return project.ErrProjectNotFound
	default:
		return fmt.Errorf("creating time entry: %w", err)
	}
}

func projectName(entry *TimeEntry) string {
	if entry.Project != nil {
		return fmt.Sprintf("%q", entry.Project.Name)
	}
	return entry.ProjectID
}

func (s *Service) recordChange(ctx context.Context, entry *TimeEntry, kind activity.Type, summary string) {
	if s.invalidator != nil {
		if err := s.invalidator.Invalidate(ctx, entry.UserID); err != nil && s.logger != nil {
			s.logger.Warn("failed to invalidate summaries", "user_id", entry.UserID, "error", err)
		}
	}
	if s.activities != nil {
		err := s.activities.Log(ctx, &activity.Entry{
			UserID:    entry.UserID,
			EntryID:   &entry.ID,
			ProjectID: &entry.ProjectID,
			Type:      kind,
			Summary:   summary,
			CreatedAt: s.clock.Now(),
		})
		if err != nil && s.logger != nil {
			s.logger.Warn("failed to log activity", "user_id", entry.UserID, "type", kind, "error", err)
		}
	}
	if s.logger != nil {
		s.logger.Debug("time entry changed", "user_id", entry.UserID, "entry_id", entry.ID, "type", kind)
	}
}
