package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/LiamCoop/timetracker/internal/domain/activity"
	"github.com/google/uuid"
)

// ActivityRepository implements activity.Repository.
type ActivityRepository struct {
	db *DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Log inserts a new activity entry
func (r *ActivityRepository) Log(ctx context.Context, entry *activity.Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO activity_log (id, user_id, entry_id, project_id, activity_type, summary, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, r.db.rebind(query),
		entry.ID,
		entry.UserID,
		entry.EntryID,
		entry.ProjectID,
		string(entry.Type),
		entry.Summary,
		toMillis(entry.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to log activity: %w", err)
	}
	return nil
}

// List returns activity entries matching the given filters, newest first
func (r *ActivityRepository) List(ctx context.Context, userID string, opts activity.ListOptions) ([]activity.Entry, error) {
	conditions := []string{"user_id = ?"}
	args := []any{userID}

	if opts.ProjectID != nil {
		conditions = append(conditions, "project_id = ?")
		args = append(args, *opts.ProjectID)
	}
	if opts.Type != nil {
		conditions = append(conditions, "activity_type = ?")
		args = append(args, string(*opts.Type))
	}

	query := `
		SELECT id, user_id, entry_id, project_id, activity_type, summary, created_at
		FROM activity_log
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY created_at DESC, id`
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, r.db.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer rows.Close()

	entries := []activity.Entry{}
	for rows.Next() {
		var entry activity.Entry
		var kind string
		var createdAt int64
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.EntryID,
			&entry.ProjectID,
			&kind,
			&entry.Summary,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan activity entry: %w", err)
		}
		entry.Type = activity.Type(kind)
		entry.CreatedAt = fromMillis(createdAt)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity rows: %w", err)
	}
	return entries, nil
}
