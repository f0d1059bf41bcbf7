package testserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/LiamCoop/timetracker/internal/clock"
	"github.com/LiamCoop/timetracker/internal/domain/activity"
	"github.com/LiamCoop/timetracker/internal/domain/project"
	"github.com/LiamCoop/timetracker/internal/domain/quote"
	"github.com/LiamCoop/timetracker/internal/domain/summary"
	"github.com/LiamCoop/timetracker/internal/domain/timeentry"
	"github.com/LiamCoop/timetracker/internal/domain/user"
	"github.com/LiamCoop/timetracker/internal/mcp"
	"github.com/LiamCoop/timetracker/internal/store"
	"github.com/LiamCoop/timetracker/internal/transport"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

// Start is the instant the fake clock begins at: Friday 2026-10-16 09:00 UTC.
var Start = time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

// TestServer is the full HTTP stack over an in-memory database.
type TestServer struct {
	Server *httptest.Server
	DB     *store.DB
	Clock  *clock.FakeClock
	Users  *user.Service
	Token  string
	UserID string

	apiKeys *store.APIKeyRepository
}

// New starts a server with one user who authenticates with token.
func New(t *testing.T, token, userID string) *TestServer {
	t.Helper()

	db, err := store.Open("sqlite", ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(nil))

	clk := clock.Fake(Start)

	userRepo := store.NewUserRepository(db)
	projectRepo := store.NewProjectRepository(db)
	entryRepo := store.NewEntryRepository(db)
	quoteRepo := store.NewQuoteRepository(db)
	activityRepo := store.NewActivityRepository(db)
	apiKeys := store.NewAPIKeyRepository(db)

	userSvc := user.NewService(userRepo, clk, nil)
	projectSvc := project.NewService(projectRepo, activityRepo, nil, clk, nil)
	entrySvc := timeentry.NewService(entryRepo, projectRepo, activityRepo, nil, clk, nil)
	summarySvc := summary.NewService(projectRepo, entryRepo, nil, clk, nil)
	quoteSvc := quote.NewService(quoteRepo, clk, nil)
	activitySvc := activity.NewService(activityRepo, nil)

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Projects:  projectSvc,
			Entries:   entrySvc,
			Summaries: summarySvc,
			Quotes:    quoteSvc,
		},
		Resolver:      apiKeys,
		AuthEnabled:   true,
		TransportMode: "http",
	})
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{Stateless: true, JSONResponse: true},
	)

	router := transport.NewServer(transport.Services{
		Projects:  projectSvc,
		Entries:   entrySvc,
		Summaries: summarySvc,
		Quotes:    quoteSvc,
		Activity:  activitySvc,
	}, transport.Options{
		Auth: transport.AuthMiddleware(apiKeys, nil),
		MCP:  mcpHandler,
	})
	server := httptest.NewServer(router)

	ts := &TestServer{
		Server:  server,
		DB:      db,
		Clock:   clk,
		Users:   userSvc,
		Token:   token,
		UserID:  userID,
		apiKeys: apiKeys,
	}

	require.NoError(t, ts.AddUser(userID, token))

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return ts
}

// AddUser creates a user who authenticates with token.
func (ts *TestServer) AddUser(userID, token string) error {
	ctx := context.Background()
	if _, err := ts.Users.Ensure(ctx, userID, userID+"@example.com", nil); err != nil {
		return err
	}
	return ts.apiKeys.Add(ctx, token, userID, "test")
}
