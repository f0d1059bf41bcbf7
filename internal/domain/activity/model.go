package activity

import "time"

// Type identifies a lifecycle event.
type Type string

const (
	TypeEntryStarted    Type = "entry_started"
	TypeEntryStopped    Type = "entry_stopped"
	TypeEntryUpdated    Type = "entry_updated"
	TypeEntryDeleted    Type = "entry_deleted"
	TypeProjectCreated  Type = "project_created"
	TypeProjectUpdated  Type = "project_updated"
	TypeProjectArchived Type = "project_archived"
)

// Entry is one row of a user's activity log.
type Entry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	EntryID   *string   `json:"entryId,omitempty"`
	ProjectID *string   `json:"projectId,omitempty"`
	Type      Type      `json:"type"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"createdAt"`
}
