package mcp

import (
	"context"
	"log/slog"

	"github.com/LiamCoop/timetracker/internal/domain/project"
	"github.com/LiamCoop/timetracker/internal/domain/quote"
	"github.com/LiamCoop/timetracker/internal/domain/summary"
	"github.com/LiamCoop/timetracker/internal/domain/timeentry"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// ProjectService defines project operations needed by MCP.
type ProjectService interface {
	Create(ctx context.Context, userID string, req project.CreateRequest) (*project.Project, error)
	List(ctx context.Context, userID string, opts project.ListOptions) ([]project.Project, error)
}

// EntryService defines time entry operations needed by MCP.
type EntryService interface {
	Start(ctx context.Context, userID string, req timeentry.StartRequest) (*timeentry.TimeEntry, error)
	Switch(ctx context.Context, userID string, req timeentry.StartRequest) (*timeentry.TimeEntry, *timeentry.TimeEntry, error)
	StopActive(ctx context.Context, userID string, req timeentry.StopRequest) (*timeentry.TimeEntry, error)
	Active(ctx context.Context, userID string) (*timeentry.TimeEntry, error)
	List(ctx context.Context, userID string, opts timeentry.ListOptions) ([]timeentry.TimeEntry, error)
}

// SummaryService defines aggregation reads needed by MCP.
type SummaryService interface {
	Summaries(ctx context.Context, userID string) ([]summary.ProjectSummary, error)
	WeeklyTime(ctx context.Context, userID, projectID string) ([]summary.DayTotal, error)
}

// QuoteService defines quote reads needed by MCP.
type QuoteService interface {
	Random(ctx context.Context) (*quote.Quote, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Projects  ProjectService
	Entries   EntryService
	Summaries SummaryService
	Quotes    QuoteService
}

// Config contains server configuration.
type Config struct {
	Services    Services
	Resolver    UserResolver
	AuthEnabled bool
	// DefaultUser is used whenever auth is off, and always over stdio.
	DefaultUser   string
	TransportMode string // "stdio" or "http"
	Version       string
	Logger        *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	version := cfg.Version
	if version == "" {
		version = "dev"
	}
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "timetracker",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	// Stdio is local only and never authenticates.
	if cfg.TransportMode == "stdio" || !cfg.AuthEnabled {
		server.AddReceivingMiddleware(noAuthMiddleware(cfg.DefaultUser))
	} else {
		server.AddReceivingMiddleware(authMiddleware(cfg.Resolver, cfg.Logger))
	}
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services, cfg.Logger)

	return server
}
