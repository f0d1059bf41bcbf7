package user_test

import (
	"context"
	"testing"

	"github.com/LiamCoop/timetracker/internal/domain/user"
	"github.com/LiamCoop/timetracker/internal/repository"
	"github.com/LiamCoop/timetracker/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDisplayName(t *testing.T) {
	require.Equal(t, "Ada Lovelace", *user.DisplayName("Ada", "Lovelace"))
	require.Equal(t, "Ada", *user.DisplayName(" Ada ", ""))
	require.Equal(t, "Lovelace", *user.DisplayName("", "Lovelace"))
	require.Nil(t, user.DisplayName("", " "))
}

func TestUserService_SyncUpserts(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.UserRepository{}
	repo.On("Upsert", ctx, mock.MatchedBy(func(u *user.User) bool {
		return u.ID == "user_1" && u.Email == "ada@example.com" && u.Name != nil && *u.Name == "Ada"
	})).Return(nil).Twice()

	svc := user.NewService(repo, nil, nil)
	req := user.SyncRequest{ID: "user_1", Email: "ada@example.com", FirstName: "Ada"}
	_, err := svc.Sync(ctx, req)
	require.NoError(t, err)
	_, err = svc.Sync(ctx, req)
	require.NoError(t, err)
	repo.AssertExpectations(t)

	_, err = svc.Sync(ctx, user.SyncRequest{})
	require.ErrorIs(t, err, user.ErrInvalidInput)
}

func TestUserService_DeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.UserRepository{}
	repo.On("Delete", ctx, "gone").Return(repository.ErrNotFound)

	svc := user.NewService(repo, nil, nil)
	require.NoError(t, svc.Delete(ctx, "gone"))
}

func TestUserService_EnsureKeepsExisting(t *testing.T) {
	ctx := context.Background()

	existing := &user.User{ID: "local", Email: "me@example.com"}
	repo := &mocks.UserRepository{}
	repo.On("Get", ctx, "local").Return(existing, nil)

	svc := user.NewService(repo, nil, nil)
	u, err := svc.Ensure(ctx, "local", "other@example.com", nil)
	require.NoError(t, err)
	require.Same(t, existing, u)
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}
