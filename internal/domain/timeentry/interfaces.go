package timeentry

import (
	"context"
	"time"

	"github.com/LiamCoop/timetracker/internal/domain/project"
)

// Repository provides persistence for time entries. All lookups are scoped
// to the owning user.
type Repository interface {
	// CreateActive inserts a running entry, failing with
	// repository.ErrConflict if the user already has one.
	CreateActive(ctx context.Context, entry *TimeEntry) error
	// Switch closes the user's running entry at stopAt (if any) and inserts
	// next in the same transaction. It returns the closed entry or nil.
	Switch(ctx context.Context, userID string, stopAt time.Time, next *TimeEntry) (*TimeEntry, error)
	Get(ctx context.Context, userID, id string) (*TimeEntry, error)
	GetActive(ctx context.Context, userID string) (*TimeEntry, error)
	Update(ctx context.Context, entry *TimeEntry) error
	Delete(ctx context.Context, userID, id string) error
	List(ctx context.Context, userID string, opts ListOptions) ([]TimeEntry, error)
}

// ProjectRepository provides the project lookup needed to validate starts.
type ProjectRepository interface {
	Get(ctx context.Context, userID, id string) (*project.Project, error)
}

// Invalidator is notified when a user's entries change.
type Invalidator interface {
	Invalidate(ctx context.Context, userID string) error
}
