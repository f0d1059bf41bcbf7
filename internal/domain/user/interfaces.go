package user

import "context"

// Repository provides persistence for users.
type Repository interface {
	Upsert(ctx context.Context, u *User) error
	Get(ctx context.Context, id string) (*User, error)
	Delete(ctx context.Context, id string) error
}
