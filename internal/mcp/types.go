package mcp

import (
	"github.com/LiamCoop/timetracker/internal/domain/project"
	"github.com/LiamCoop/timetracker/internal/domain/summary"
	"github.com/LiamCoop/timetracker/internal/domain/timeentry"
)

type ListProjectsParams struct {
	IncludeInactive bool `json:"include_inactive,omitempty" jsonschema:"also return archived projects"`
}

type CreateProjectParams struct {
	Name        string `json:"name" jsonschema:"project display name, at most 100 characters"`
	Description string `json:"description,omitempty" jsonschema:"optional project description"`
	Color       string `json:"color,omitempty" jsonschema:"hex colour such as #3B82F6"`
}

type TrackingParams struct {
	ProjectID   string `json:"project_id" jsonschema:"the project to track time against"`
	Description string `json:"description,omitempty" jsonschema:"what is being worked on"`
}

type StopTrackingParams struct {
	EndTime     string `json:"end_time,omitempty" jsonschema:"RFC 3339 end time, defaults to now"`
	Description string `json:"description,omitempty" jsonschema:"replaces the entry description when set"`
}

type ListTimeEntriesParams struct {
	ProjectID string `json:"project_id,omitempty" jsonschema:"only entries of this project"`
	Completed bool   `json:"completed,omitempty" jsonschema:"only finished entries"`
	Limit     int    `json:"limit,omitempty" jsonschema:"maximum number of entries"`
}

type WeeklyTimeParams struct {
	ProjectID string `json:"project_id" jsonschema:"the project to break down"`
}

type ProjectsResult struct {
	Projects []project.Project `json:"projects"`
}

type EntryResult struct {
	Entry   *timeentry.TimeEntry `json:"entry"`
	Stopped *timeentry.TimeEntry `json:"stopped,omitempty"`
}

type EntriesResult struct {
	Entries []timeentry.TimeEntry `json:"entries"`
}

type SummariesResult struct {
	Summaries []summary.ProjectSummary `json:"summaries"`
}

type WeeklyTimeResult struct {
	Days []summary.DayTotal `json:"days"`
}
