package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/LiamCoop/timetracker/internal/cache"
	"github.com/LiamCoop/timetracker/internal/clock"
	"github.com/LiamCoop/timetracker/internal/config"
	"github.com/LiamCoop/timetracker/internal/domain/activity"
	"github.com/LiamCoop/timetracker/internal/domain/project"
	"github.com/LiamCoop/timetracker/internal/domain/quote"
	"github.com/LiamCoop/timetracker/internal/domain/summary"
	"github.com/LiamCoop/timetracker/internal/domain/timeentry"
	"github.com/LiamCoop/timetracker/internal/domain/user"
	"github.com/LiamCoop/timetracker/internal/mcp"
	"github.com/LiamCoop/timetracker/internal/store"
	"github.com/redis/go-redis/v9"
)

// app holds the configured dependencies shared by all commands.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	db     *store.DB
	clock  clock.Clock
	redis  *redis.Client

	users     *user.Service
	projects  *project.Service
	entries   *timeentry.Service
	summaries *summary.Service
	quotes    *quote.Service
	activity  *activity.Service
	apiKeys   *store.APIKeyRepository

	closeLog func()
}

// newApp loads config, opens and migrates the database and builds the
// services. Logs go to logOut unless a log file is configured.
func newApp(ctx context.Context, logOut io.Writer) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	logger, closeLog := newLogger(cfg.Log, logOut)

	loc, err := clock.LoadLocation(cfg.Clock.Timezone)
	if err != nil {
		closeLog()
		return nil, err
	}

	if err := ensureDBDir(cfg.DB.Driver, cfg.DB.DSN); err != nil {
		closeLog()
		return nil, fmt.Errorf("failed to prepare database path: %w", err)
	}
	db, err := store.Open(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		closeLog()
		return nil, err
	}
	if err := db.Migrate(logger); err != nil {
		_ = db.Close()
		closeLog()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	a := &app{
		cfg:      cfg,
		logger:   logger,
		db:       db,
		clock:    clock.Real(loc),
		apiKeys:  store.NewAPIKeyRepository(db),
		closeLog: closeLog,
	}

	// Services take interfaces; keep them nil rather than typed nil when
	// Redis is not configured.
	var summaryCache summary.Cache
	var invalidator timeentry.Invalidator
	var projectInvalidator project.Invalidator
	if cfg.Cache.RedisURL != "" {
		rdb, err := cache.Connect(ctx, cfg.Cache.RedisURL)
		if err != nil {
			logger.Warn("redis unavailable, summaries will not be cached", "error", err)
		} else {
			a.redis = rdb
			c := cache.NewSummaryCache(rdb, cfg.Cache.TTL)
			summaryCache, invalidator, projectInvalidator = c, c, c
		}
	}

	projectRepo := store.NewProjectRepository(db)
	entryRepo := store.NewEntryRepository(db)
	activityRepo := store.NewActivityRepository(db)

	a.users = user.NewService(store.NewUserRepository(db), a.clock, logger)
	a.projects = project.NewService(projectRepo, activityRepo, projectInvalidator, a.clock, logger)
	a.entries = timeentry.NewService(entryRepo, projectRepo, activityRepo, invalidator, a.clock, logger)
	a.summaries = summary.NewService(projectRepo, entryRepo, summaryCache, a.clock, logger)
	a.quotes = quote.NewService(store.NewQuoteRepository(db), a.clock, logger)
	a.activity = activity.NewService(activityRepo, logger)

	return a, nil
}

func (a *app) Close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close database", "error", err)
	}
	a.closeLog()
}

// mcpConfig exposes the services to the MCP tool surface.
func (a *app) mcpConfig(mode string) mcp.Config {
	return mcp.Config{
		Services: mcp.Services{
			Projects:  a.projects,
			Entries:   a.entries,
			Summaries: a.summaries,
			Quotes:    a.quotes,
		},
		Resolver:      a.apiKeys,
		AuthEnabled:   a.cfg.Auth.Enabled,
		DefaultUser:   a.cfg.Auth.DefaultUser,
		TransportMode: mode,
		Version:       version,
		Logger:        a.logger,
	}
}

// ensureDefaultUser creates the user every request acts as when auth is
// disabled, so foreign keys hold.
func (a *app) ensureDefaultUser(ctx context.Context) error {
	if a.cfg.Auth.Enabled {
		return nil
	}
	if _, err := a.users.Ensure(ctx, a.cfg.Auth.DefaultUser, "", nil); err != nil {
		return fmt.Errorf("failed to ensure default user: %w", err)
	}
	return nil
}

func ensureDBDir(driver, dsn string) error {
	if driver != "sqlite" || dsn == "" || dsn == ":memory:" || strings.HasPrefix(dsn, "file:") {
		return nil
	}
	dir := filepath.Dir(dsn)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
