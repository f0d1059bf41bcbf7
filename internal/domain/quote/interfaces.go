package quote

import "context"

// Repository provides persistence for quotes. Quotes are global, not
// owned by a user.
type Repository interface {
	Create(ctx context.Context, q *Quote) error
	ListActive(ctx context.Context) ([]Quote, error)
}
