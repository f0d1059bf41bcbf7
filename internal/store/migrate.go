package store

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/LiamCoop/timetracker/migrations"
	"github.com/pressly/goose/v3"
)

// Migrate applies all pending migrations.
func (db *DB) Migrate(logger *slog.Logger) error {
	goose.SetBaseFS(migrations.FS)
	if logger != nil {
		goose.SetLogger(gooseLogger{logger: logger})
	} else {
		goose.SetLogger(goose.NopLogger())
	}

	dialect := "sqlite3"
	if db.dialect == DialectPostgres {
		dialect = "postgres"
	}
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.Up(db.DB, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

type gooseLogger struct {
	logger *slog.Logger
}

func (l gooseLogger) Printf(format string, v ...any) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "migrate")
}

func (l gooseLogger) Fatalf(format string, v ...any) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "migrate")
}
