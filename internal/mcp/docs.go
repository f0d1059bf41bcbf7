package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `timetracker records how long you spend on projects.

- One time entry runs at a time. start_tracking fails while another entry is running; switch_tracking stops it first.
- stop_tracking closes the running entry and stores its duration in whole minutes, rounded half up.
- get_time_summaries totals completed entries per project for today, this week (weeks start Sunday) and this month.
- Running entries are not counted until they are stopped.`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "timetracker://docs/workflow",
		Name:        "workflow",
		Title:       "Tracking workflow",
		Description: "How to track time with the timetracker tools",
		Content: `# Tracking workflow

1. Call list_projects. If the project you need is missing, call create_project.
2. Call get_active_entry to see whether something is already running.
3. Use start_tracking when nothing runs, or switch_tracking to move to another project.
4. Call stop_tracking when the work is done. Pass end_time to backdate the stop.

## Reports

- get_time_summaries: minutes per project for today, this week and this month.
- get_weekly_time: minutes for one project on each day of the current week.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
