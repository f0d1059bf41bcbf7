package summary

import (
	"context"

	"github.com/LiamCoop/timetracker/internal/domain/project"
	"github.com/LiamCoop/timetracker/internal/domain/timeentry"
)

// ProjectLister lists a user's projects.
type ProjectLister interface {
	List(ctx context.Context, userID string, opts project.ListOptions) ([]project.Project, error)
}

// EntryLister lists a user's time entries.
type EntryLister interface {
	List(ctx context.Context, userID string, opts timeentry.ListOptions) ([]timeentry.TimeEntry, error)
}

// Cache stores computed results per user. Get reports whether key was found
// and decoded into dst. Generation changes whenever the user's results are
// invalidated.
type Cache interface {
	Get(ctx context.Context, userID, key string, dst any) (bool, error)
	Set(ctx context.Context, userID, key string, value any) error
	Generation(ctx context.Context, userID string) (int64, error)
}
