package activity

import (
	"context"
	"fmt"
	"log/slog"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

// Service handles activity log reads.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new activity service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Recent returns the newest activity for a user.
func (s *Service) Recent(ctx context.Context, userID string, opts ListOptions) ([]Entry, error) {
	if opts.Limit <= 0 {
		opts.Limit = defaultLimit
	}
	if opts.Limit > maxLimit {
		opts.Limit = maxLimit
	}
	entries, err := s.repo.List(ctx, userID, opts)
	if err != nil {
		return nil, fmt.Errorf("listing activity: %w", err)
	}
	return entries, nil
}
