package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/LiamCoop/timetracker/internal/clock"
	"github.com/LiamCoop/timetracker/internal/repository"
)

// Service mirrors identity-provider accounts into the local store.
type Service struct {
	repo   Repository
	clock  clock.Clock
	logger *slog.Logger
}

// NewService creates a new user service. clk may be nil.
func NewService(repo Repository, clk clock.Clock, logger *slog.Logger) *Service {
	if clk == nil {
		clk = clock.Real(nil)
	}
	return &Service{repo: repo, clock: clk, logger: logger}
}

// SyncRequest carries the identity-provider view of a user.
type SyncRequest struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
}

// Sync creates or updates the local copy of a user. Webhook deliveries may
// be retried, so creation is an upsert.
func (s *Service) Sync(ctx context.Context, req SyncRequest) (*User, error) {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		return nil, ErrInvalidInput
	}

	now := s.clock.Now()
	u := &User{
		ID:        id,
		Email:     strings.TrimSpace(req.Email),
		Name:      DisplayName(req.FirstName, req.LastName),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Upsert(ctx, u); err != nil {
		return nil, fmt.Errorf("upserting user: %w", err)
	}
	return u, nil
}

// Ensure makes sure a user row exists without overwriting an existing one's
// profile fields.
func (s *Service) Ensure(ctx context.Context, id, email string, name *string) (*User, error) {
	existing, err := s.repo.Get(ctx, id)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("loading user: %w", err)
	}

	var first string
	if name != nil {
		first = *name
	}
	return s.Sync(ctx, SyncRequest{ID: id, Email: email, FirstName: first})
}

// Delete removes a user and, through cascading constraints, everything they
// own. Deleting an unknown user is not an error.
func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}
	err := s.repo.Delete(ctx, id)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("deleting user: %w", err)
	}
	return nil
}

// DisplayName joins first and last names, returning nil when both are blank.
func DisplayName(first, last string) *string {
	first = strings.TrimSpace(first)
	last = strings.TrimSpace(last)
	var name string
	switch {
	case first != "" && last != "":
		name = first + " " + last
	case first != "":
		name = first
	case last != "":
		name = last
	default:
		return nil
	}
	return &name
}
