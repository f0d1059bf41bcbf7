package timeentry

import "time"

// ListOptions filters time entry listings. Results are newest first.
type ListOptions struct {
	Active bool
	// Completed is ignored when Active is set.
	Completed bool
	ProjectID string
	// Since and Until bound StartTime to [Since, Until).
	Since *time.Time
	Until *time.Time
	Limit int
}
