package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/LiamCoop/timetracker/internal/domain/project"
	"github.com/LiamCoop/timetracker/internal/domain/timeentry"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

var errInvalidArgument = errors.New("invalid argument")

func registerTools(server *sdkmcp.Server, svc Services, logger *slog.Logger) {
	runner := toolRunner{logger: logger}

	// Projects
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List projects, most recently updated first",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in ListProjectsParams) (*sdkmcp.CallToolResult, any, error) {
		return runner.call(ctx, req, func(userID string) (any, error) {
			projects, err := svc.Projects.List(ctx, userID, project.ListOptions{IncludeInactive: in.IncludeInactive})
			return ProjectsResult{Projects: projects}, err
		})
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_project",
		Description: "Create a project to track time against",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in CreateProjectParams) (*sdkmcp.CallToolResult, any, error) {
		return runner.call(ctx, req, func(userID string) (any, error) {
			return svc.Projects.Create(ctx, userID, project.CreateRequest{
				Name:        in.Name,
				Description: optional(in.Description),
				Color:       in.Color,
			})
		})
	})

	// Tracking
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "start_tracking",
		Description: "Start a time entry for a project. Fails if another entry is running",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in TrackingParams) (*sdkmcp.CallToolResult, any, error) {
		return runner.call(ctx, req, func(userID string) (any, error) {
			entry, err := svc.Entries.Start(ctx, userID, startRequest(in))
			return EntryResult{Entry: entry}, err
		})
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "switch_tracking",
		Description: "Stop the running entry, if any, and start a new one for a project",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in TrackingParams) (*sdkmcp.CallToolResult, any, error) {
		return runner.call(ctx, req, func(userID string) (any, error) {
			entry, stopped, err := svc.Entries.Switch(ctx, userID, startRequest(in))
			return EntryResult{Entry: entry, Stopped: stopped}, err
		})
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "stop_tracking",
		Description: "Stop the running time entry and record its duration",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in StopTrackingParams) (*sdkmcp.CallToolResult, any, error) {
		return runner.call(ctx, req, func(userID string) (any, error) {
			req := timeentry.StopRequest{Description: optional(in.Description)}
			if in.EndTime != "" {
				end, err := time.Parse(time.RFC3339, in.EndTime)
				if err != nil {
					return nil, fmt.Errorf("%w: end_time must be RFC 3339", errInvalidArgument)
				}
				req.EndTime = &end
			}
			entry, err := svc.Entries.StopActive(ctx, userID, req)
			return EntryResult{Entry: entry}, err
		})
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_active_entry",
		Description: "Get the running time entry",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, _ struct{}) (*sdkmcp.CallToolResult, any, error) {
		return runner.call(ctx, req, func(userID string) (any, error) {
			entry, err := svc.Entries.Active(ctx, userID)
			return EntryResult{Entry: entry}, err
		})
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_time_entries",
		Description: "List time entries, newest first",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in ListTimeEntriesParams) (*sdkmcp.CallToolResult, any, error) {
		return runner.call(ctx, req, func(userID string) (any, error) {
			entries, err := svc.Entries.List(ctx, userID, timeentry.ListOptions{
				ProjectID: in.ProjectID,
				Completed: in.Completed,
				Limit:     in.Limit,
			})
			return EntriesResult{Entries: entries}, err
		})
	})

	// Reports
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_time_summaries",
		Description: "Minutes tracked per project today, this week and this month",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, _ struct{}) (*sdkmcp.CallToolResult, any, error) {
		return runner.call(ctx, req, func(userID string) (any, error) {
			summaries, err := svc.Summaries.Summaries(ctx, userID)
			return SummariesResult{Summaries: summaries}, err
		})
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_weekly_time",
		Description: "Minutes tracked on a project for each day of the current week, Sunday first",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in WeeklyTimeParams) (*sdkmcp.CallToolResult, any, error) {
		return runner.call(ctx, req, func(userID string) (any, error) {
			days, err := svc.Summaries.WeeklyTime(ctx, userID, in.ProjectID)
			return WeeklyTimeResult{Days: days}, err
		})
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_daily_quote",
		Description: "Get a random motivational quote",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, _ struct{}) (*sdkmcp.CallToolResult, any, error) {
		return runner.call(ctx, req, func(string) (any, error) {
			return svc.Quotes.Random(ctx)
		})
	})
}

type toolRunner struct {
	logger *slog.Logger
}

// call runs fn for the authenticated user and renders its value or error
// as tool content. Internal errors are logged before being masked.
func (t toolRunner) call(ctx context.Context, req *sdkmcp.CallToolRequest, fn func(userID string) (any, error)) (*sdkmcp.CallToolResult, any, error) {
	userID := getUserID(ctx)
	if userID == "" {
		return errorResult(MapError(ErrUnauthorized)), nil, nil
	}
	v, err := fn(userID)
	if err != nil {
		apiErr := MapError(err)
		if apiErr.Code == codeInternal && t.logger != nil {
			t.logger.ErrorContext(ctx, "tool call failed",
				"tool", toolName(req),
				"user_id", userID,
				"error", err,
			)
		}
		return errorResult(apiErr), nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, nil, fmt.Errorf("encoding result: %w", err)
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil, nil
}

func errorResult(apiErr *APIError) *sdkmcp.CallToolResult {
	data, _ := json.Marshal(apiErr)
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}
}

func toolName(req *sdkmcp.CallToolRequest) string {
	if req == nil || req.Params == nil {
		return ""
	}
	return req.Params.Name
}

func startRequest(in TrackingParams) timeentry.StartRequest {
	return timeentry.StartRequest{ProjectID: in.ProjectID, Description: optional(in.Description)}
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
