package timeentry

import (
	"time"

	"github.com/LiamCoop/timetracker/internal/domain/project"
)

// TimeEntry is one work session against a project. EndTime and Duration
// are nil while the entry is running.
type TimeEntry struct {
	ID          string           `json:"id"`
	UserID      string           `json:"userId"`
	ProjectID   string           `json:"projectId"`
	StartTime   time.Time        `json:"startTime"`
	EndTime     *time.Time       `json:"endTime"`
	Description *string          `json:"description"`
	Duration    *int             `json:"duration"` // minutes
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
	Project     *project.Project `json:"project,omitempty"`
}

// Running reports whether the entry has not been closed yet.
func (e *TimeEntry) Running() bool {
	return e.EndTime == nil
}

// Close sets EndTime to end (clamped, see ClampEnd) and recomputes Duration.
// Closing an already closed entry overwrites its previous end.
func (e *TimeEntry) Close(end, now time.Time) {
	end = ClampEnd(e.StartTime, end, now)
	minutes := DurationMinutes(e.StartTime, end)
	e.EndTime = &end
	e.Duration = &minutes
}

// Minutes returns the stored duration, or 0 while running.
func (e *TimeEntry) Minutes() int {
	if e.Duration == nil {
		return 0
	}
	return *e.Duration
}
