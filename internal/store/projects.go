package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/LiamCoop/timetracker/internal/domain/project"
	"github.com/LiamCoop/timetracker/internal/repository"
)

const projectColumns = `id, user_id, name, description, color, is_active, created_at, updated_at`

// ProjectRepository implements project.Repository.
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create creates a new project
func (r *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	query := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, r.db.rebind(query),
		proj.ID,
		proj.UserID,
		proj.Name,
		proj.Description,
		proj.Color,
		proj.IsActive,
		toMillis(proj.CreatedAt),
		toMillis(proj.UpdatedAt),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// Get retrieves a project owned by userID
func (r *ProjectRepository) Get(ctx context.Context, userID, id string) (*project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ? AND user_id = ?`

	proj, err := scanProject(r.db.QueryRowContext(ctx, r.db.rebind(query), id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return proj, nil
}

// List returns a user's projects, active first and most recently updated
// first within each group.
func (r *ProjectRepository) List(ctx context.Context, userID string, opts project.ListOptions) ([]project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE user_id = ?`
	args := []any{userID}
	if !opts.IncludeInactive {
		query += ` AND is_active = ?`
		args = append(args, true)
	}
	query += ` ORDER BY is_active DESC, updated_at DESC`

	rows, err := r.db.QueryContext(ctx, r.db.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []project.Project{}
	for rows.Next() {
		proj, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *proj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}
	return projects, nil
}

// Update saves a project's mutable fields.
func (r *ProjectRepository) Update(ctx context.Context, proj *project.Project) error {
	query := `
		UPDATE projects
		SET name = ?, description = ?, color = ?, is_active = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`

	result, err := r.db.ExecContext(ctx, r.db.rebind(query),
		proj.Name,
		proj.Description,
		proj.Color,
		proj.IsActive,
		toMillis(proj.UpdatedAt),
		proj.ID,
		proj.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	return requireAffected(result)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*project.Project, error) {
	var proj project.Project
	var createdAt, updatedAt int64
	if err := row.Scan(
		&proj.ID,
		&proj.UserID,
		&proj.Name,
		&proj.Description,
		&proj.Color,
		&proj.IsActive,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}
	proj.CreatedAt = fromMillis(createdAt)
	proj.UpdatedAt = fromMillis(updatedAt)
	return &proj, nil
}
