package store

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/LiamCoop/timetracker/internal/repository"
)

const tokenPrefix = "tt_"

// APIKeyRepository stores hashed bearer tokens and resolves them to users.
type APIKeyRepository struct {
	db *DB
}

// NewAPIKeyRepository creates a new APIKeyRepository
func NewAPIKeyRepository(db *DB) *APIKeyRepository {
	return &APIKeyRepository{db: db}
}

// Create mints a new token for userID. Only its hash is stored; the token
// itself is returned once.
func (r *APIKeyRepository) Create(ctx context.Context, userID, description string) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	token := tokenPrefix + hex.EncodeToString(raw)
	if err := r.Add(ctx, token, userID, description); err != nil {
		return "", err
	}
	return token, nil
}

// Add stores a caller-chosen token for userID.
func (r *APIKeyRepository) Add(ctx context.Context, token, userID, description string) error {
	var desc *string
	if description != "" {
		desc = &description
	}
	_, err := r.db.ExecContext(ctx,
		r.db.rebind(`INSERT INTO api_keys (key_hash, user_id, description, created_at) VALUES (?, ?, ?, ?)`),
		HashToken(token), userID, desc, toMillis(time.Now()),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to create api key: %w", err)
	}
	return nil
}

// ResolveUser maps a bearer token to its user and records the use.
func (r *APIKeyRepository) ResolveUser(ctx context.Context, token string) (string, error) {
	hash := HashToken(token)

	var userID string
	err := r.db.QueryRowContext(ctx,
		r.db.rebind(`SELECT user_id FROM api_keys WHERE key_hash = ?`),
		hash,
	).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", repository.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve api key: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		r.db.rebind(`UPDATE api_keys SET last_used = ? WHERE key_hash = ?`),
		toMillis(time.Now()), hash,
	)
	if err != nil {
		return "", fmt.Errorf("failed to touch api key: %w", err)
	}
	return userID, nil
}

// HashToken returns the stored form of a token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
