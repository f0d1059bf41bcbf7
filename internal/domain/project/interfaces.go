package project

import "context"

// Repository provides persistence for projects. Every method is scoped to
// the owning user.
type Repository interface {
	Create(ctx context.Context, proj *Project) error
	Get(ctx context.Context, userID, id string) (*Project, error)
	List(ctx context.Context, userID string, opts ListOptions) ([]Project, error)
	Update(ctx context.Context, proj *Project) error
}

// ListOptions filters project listings.
type ListOptions struct {
	IncludeInactive bool
}

// Invalidator is notified when a user's projects change.
type Invalidator interface {
	Invalidate(ctx context.Context, userID string) error
}
