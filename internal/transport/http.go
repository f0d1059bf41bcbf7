package transport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/LiamCoop/timetracker/internal/domain/activity"
	"github.com/LiamCoop/timetracker/internal/domain/project"
	"github.com/LiamCoop/timetracker/internal/domain/quote"
	"github.com/LiamCoop/timetracker/internal/domain/summary"
	"github.com/LiamCoop/timetracker/internal/domain/timeentry"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// ProjectService defines project operations needed over HTTP.
type ProjectService interface {
	Create(ctx context.Context, userID string, req project.CreateRequest) (*project.Project, error)
	List(ctx context.Context, userID string, opts project.ListOptions) ([]project.Project, error)
	Update(ctx context.Context, userID, id string, req project.UpdateRequest) (*project.Project, error)
	Archive(ctx context.Context, userID, id string) error
}

// EntryService defines time entry operations needed over HTTP.
type EntryService interface {
	Start(ctx context.Context, userID string, req timeentry.StartRequest) (*timeentry.TimeEntry, error)
	Switch(ctx context.Context, userID string, req timeentry.StartRequest) (*timeentry.TimeEntry, *timeentry.TimeEntry, error)
	Stop(ctx context.Context, userID, entryID string, req timeentry.StopRequest) (*timeentry.TimeEntry, error)
	Update(ctx context.Context, userID, entryID string, patch timeentry.Patch) (*timeentry.TimeEntry, error)
	Delete(ctx context.Context, userID, entryID string) error
	List(ctx context.Context, userID string, opts timeentry.ListOptions) ([]timeentry.TimeEntry, error)
	Weekly(ctx context.Context, userID, projectID string) ([]timeentry.TimeEntry, error)
}

// SummaryService defines aggregation reads needed over HTTP.
type SummaryService interface {
	Summaries(ctx context.Context, userID string) ([]summary.ProjectSummary, error)
	WeeklyTime(ctx context.Context, userID, projectID string) ([]summary.DayTotal, error)
}

// QuoteService defines quote reads needed over HTTP.
type QuoteService interface {
	Random(ctx context.Context) (*quote.Quote, error)
}

// ActivityService defines activity reads needed over HTTP.
type ActivityService interface {
	Recent(ctx context.Context, userID string, opts activity.ListOptions) ([]activity.Entry, error)
}

// Services contains all domain services served over HTTP.
type Services struct {
	Projects  ProjectService
	Entries   EntryService
	Summaries SummaryService
	Quotes    QuoteService
	Activity  ActivityService
}

// Options configures the router. Nil handlers are not mounted.
type Options struct {
	// Auth identifies the caller on /api and /mcp routes.
	Auth           func(http.Handler) http.Handler
	AllowedOrigins []string
	Logger         *slog.Logger
	MCP            http.Handler
	Webhook        http.Handler
}

// Server holds the HTTP handlers.
type Server struct {
	services Services
	logger   *slog.Logger
}

// NewServer creates an HTTP router with middleware.
func NewServer(services Services, opts Options) *chi.Mux {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(SessionMiddleware)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "Mcp-Session-Id", "Mcp-Protocol-Version"},
		ExposedHeaders: []string{"Mcp-Session-Id"},
		MaxAge:         300,
	}))

	srv := &Server{services: services, logger: logger}

	r.Get("/health", srv.handleHealth)
	if opts.Webhook != nil {
		r.Method(http.MethodPost, "/webhooks/clerk", opts.Webhook)
	}

	r.Group(func(r chi.Router) {
		if opts.Auth != nil {
			r.Use(opts.Auth)
		}
		r.Use(requireUser)

		r.Route("/api", func(r chi.Router) {
			r.Get("/projects", srv.handleListProjects)
			r.Post("/projects", srv.handleCreateProject)
			r.Patch("/projects/{id}", srv.handleUpdateProject)
			r.Delete("/projects/{id}", srv.handleDeleteProject)

			r.Get("/time-entries", srv.handleListEntries)
			r.Post("/time-entries", srv.handleStartEntry)
			r.Post("/time-entries/switch", srv.handleSwitchEntry)
			r.Get("/time-entries/weekly", srv.handleWeeklyEntries)
			r.Patch("/time-entries/{id}", srv.handleUpdateEntry)
			r.Post("/time-entries/{id}/stop", srv.handleStopEntry)
			r.Delete("/time-entries/{id}", srv.handleDeleteEntry)

			r.Get("/time-summaries", srv.handleSummaries)
			r.Get("/weekly-time", srv.handleWeeklyTime)
			r.Get("/daily-quotes", srv.handleDailyQuote)
			r.Get("/activity", srv.handleActivity)
		})

		if opts.MCP != nil {
			r.Handle("/mcp", opts.MCP)
		}
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// RequestLogger logs one line per request.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			attrs := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
			}
			if sessionID, ok := SessionIDFromContext(r.Context()); ok {
				attrs = append(attrs, "mcp_session", sessionID)
			}
			level := slog.LevelInfo
			if r.URL.Path == "/health" {
				level = slog.LevelDebug
			}
			logger.Log(r.Context(), level, "http request", attrs...)
		})
	}
}

func userID(r *http.Request) string {
	id, _ := UserFromContext(r.Context())
	return id
}
