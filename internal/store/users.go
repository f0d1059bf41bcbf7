package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/LiamCoop/timetracker/internal/domain/user"
	"github.com/LiamCoop/timetracker/internal/repository"
)

// UserRepository implements user.Repository.
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// Upsert inserts a user or refreshes the profile of an existing one.
func (r *UserRepository) Upsert(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (id, email, name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			email = excluded.email,
			name = excluded.name,
			updated_at = excluded.updated_at
	`

	_, err := r.db.ExecContext(ctx, r.db.rebind(query),
		u.ID,
		u.Email,
		u.Name,
		toMillis(u.CreatedAt),
		toMillis(u.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

// Get retrieves a user by ID
func (r *UserRepository) Get(ctx context.Context, id string) (*user.User, error) {
	query := `SELECT id, email, name, created_at, updated_at FROM users WHERE id = ?`

	var u user.User
	var createdAt, updatedAt int64
	err := r.db.QueryRowContext(ctx, r.db.rebind(query), id).Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	u.CreatedAt = fromMillis(createdAt)
	u.UpdatedAt = fromMillis(updatedAt)
	return &u, nil
}

// Delete removes a user; owned rows go with it through ON DELETE CASCADE.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, r.db.rebind(`DELETE FROM users WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return requireAffected(result)
}

func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
