package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/LiamCoop/timetracker/internal/domain/project"
	"github.com/LiamCoop/timetracker/internal/domain/timeentry"
	"github.com/LiamCoop/timetracker/internal/repository"
)

const entrySelect = `
	SELECT
		e.id, e.user_id, e.project_id, e.start_time, e.end_time,
		e.description, e.duration, e.created_at, e.updated_at,
		p.id, p.user_id, p.name, p.description, p.color, p.is_active, p.created_at, p.updated_at
	FROM time_entries e
	JOIN projects p ON p.id = e.project_id
`

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// EntryRepository implements timeentry.Repository.
type EntryRepository struct {
	db *DB
}

// NewEntryRepository creates a new EntryRepository
func NewEntryRepository(db *DB) *EntryRepository {
	return &EntryRepository{db: db}
}

// CreateActive inserts a running entry unless the user already has one.
// The partial unique index on running entries turns concurrent starts into
// repository.ErrConflict as well.
func (r *EntryRepository) CreateActive(ctx context.Context, entry *timeentry.TimeEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var existing string
	err = tx.QueryRowContext(ctx,
		r.db.rebind(`SELECT id FROM time_entries WHERE user_id = ? AND end_time IS NULL`),
		entry.UserID,
	).Scan(&existing)
	switch {
	case err == nil:
		return repository.ErrConflict
	case !errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("failed to check active entry: %w", err)
	}

	if err := r.insert(ctx, tx, entry); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return translateWriteErr("commit transaction", err)
	}
	return nil
}

// Switch closes the running entry (if any) at stopAt and inserts next in
// one transaction.
func (r *EntryRepository) Switch(ctx context.Context, userID string, stopAt time.Time, next *timeentry.TimeEntry) (*timeentry.TimeEntry, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	active, err := scanEntry(tx.QueryRowContext(ctx,
		r.db.rebind(entrySelect+` WHERE e.user_id = ? AND e.end_time IS NULL`),
		userID,
	))
	switch {
	case err == nil:
		active.Close(stopAt, stopAt)
		active.UpdatedAt = stopAt
		if err := r.update(ctx, tx, active); err != nil {
			return nil, err
		}
	case errors.Is(err, sql.ErrNoRows):
		active = nil
	default:
		return nil, fmt.Errorf("failed to get active entry: %w", err)
	}

	if err := r.insert(ctx, tx, next); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, translateWriteErr("commit transaction", err)
	}
	return active, nil
}

// Get retrieves an entry owned by userID, with its project.
func (r *EntryRepository) Get(ctx context.Context, userID, id string) (*timeentry.TimeEntry, error) {
	entry, err := scanEntry(r.db.QueryRowContext(ctx,
		r.db.rebind(entrySelect+` WHERE e.id = ? AND e.user_id = ?`),
		id, userID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get time entry: %w", err)
	}
	return entry, nil
}

// GetActive retrieves the user's running entry.
func (r *EntryRepository) GetActive(ctx context.Context, userID string) (*timeentry.TimeEntry, error) {
	entry, err := scanEntry(r.db.QueryRowContext(ctx,
		r.db.rebind(entrySelect+` WHERE e.user_id = ? AND e.end_time IS NULL`),
		userID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active time entry: %w", err)
	}
	return entry, nil
}

// Update saves end time, description and duration.
func (r *EntryRepository) Update(ctx context.Context, entry *timeentry.TimeEntry) error {
	return r.update(ctx, r.db, entry)
}

// Delete removes an entry permanently.
func (r *EntryRepository) Delete(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx,
		r.db.rebind(`DELETE FROM time_entries WHERE id = ? AND user_id = ?`),
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete time entry: %w", err)
	}
	return requireAffected(result)
}

// List returns entries matching opts, newest first.
func (r *EntryRepository) List(ctx context.Context, userID string, opts timeentry.ListOptions) ([]timeentry.TimeEntry, error) {
	conditions := []string{"e.user_id = ?"}
	args := []any{userID}

	if opts.Active {
		conditions = append(conditions, "e.end_time IS NULL")
	}
	if opts.Completed {
		conditions = append(conditions, "e.end_time IS NOT NULL")
	}
	if opts.ProjectID != "" {
		conditions = append(conditions, "e.project_id = ?")
		args = append(args, opts.ProjectID)
	}
	if opts.Since != nil {
		conditions = append(conditions, "e.start_time >= ?")
		args = append(args, toMillis(*opts.Since))
	}
	if opts.Until != nil {
		conditions = append(conditions, "e.start_time < ?")
		args = append(args, toMillis(*opts.Until))
	}

	query := entrySelect + ` WHERE ` + strings.Join(conditions, " AND ") + ` ORDER BY e.start_time DESC`
	if opts.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, r.db.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}
	defer rows.Close()

	entries := []timeentry.TimeEntry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time entry: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating time entry rows: %w", err)
	}
	return entries, nil
}

func (r *EntryRepository) insert(ctx context.Context, q querier, entry *timeentry.TimeEntry) error {
	query := `
		INSERT INTO time_entries (
			id, user_id, project_id, start_time, end_time,
			description, duration, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := q.ExecContext(ctx, r.db.rebind(query),
		entry.ID,
		entry.UserID,
		entry.ProjectID,
		toMillis(entry.StartTime),
		toNullMillis(entry.EndTime),
		entry.Description,
		entry.Duration,
		toMillis(entry.CreatedAt),
		toMillis(entry.UpdatedAt),
	)
	if err != nil {
		return translateWriteErr("create time entry", err)
	}
	return nil
}

func (r *EntryRepository) update(ctx context.Context, q querier, entry *timeentry.TimeEntry) error {
	query := `
		UPDATE time_entries
		SET end_time = ?, description = ?, duration = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`

	result, err := q.ExecContext(ctx, r.db.rebind(query),
		toNullMillis(entry.EndTime),
		entry.Description,
		entry.Duration,
		toMillis(entry.UpdatedAt),
		entry.ID,
		entry.UserID,
	)
	if err != nil {
		return translateWriteErr("update time entry", err)
	}
	return requireAffected(result)
}

func translateWriteErr(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return repository.ErrConflict
	case isForeignKeyViolation(err):
		return repository.ErrForeignKeyViolation
	default:
		return fmt.Errorf("failed to %s: %w", op, err)
	}
}

func scanEntry(row rowScanner) (*timeentry.TimeEntry, error) {
	var (
		e                              timeentry.TimeEntry
		p                              project.Project
		start, created, updated        int64
		end                            sql.NullInt64
		duration                       sql.NullInt64
		projectCreated, projectUpdated int64
	)
	if err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.ProjectID,
		&start,
		&end,
		&e.Description,
		&duration,
		&created,
		&updated,
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.Description,
		&p.Color,
		&p.IsActive,
		&projectCreated,
		&projectUpdated,
	); err != nil {
		return nil, err
	}

	e.StartTime = fromMillis(start)
	e.EndTime = fromNullMillis(end)
	if duration.Valid {
		minutes := int(duration.Int64)
		e.Duration = &minutes
	}
	e.CreatedAt = fromMillis(created)
	e.UpdatedAt = fromMillis(updated)
	p.CreatedAt = fromMillis(projectCreated)
	p.UpdatedAt = fromMillis(projectUpdated)
	e.Project = &p
	return &e, nil
}
