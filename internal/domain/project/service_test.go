package project_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/LiamCoop/timetracker/internal/clock"
	"github.com/LiamCoop/timetracker/internal/domain/activity"
	"github.com/LiamCoop/timetracker/internal/domain/project"
	"github.com/LiamCoop/timetracker/internal/repository"
	"github.com/LiamCoop/timetracker/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProjectService_CreateDefaults(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

	repo := &mocks.ProjectRepository{}
	repo.On("Create", ctx, mock.AnythingOfType("*project.Project")).Return(nil)
	activities := &mocks.ActivityRepository{}
	activities.On("Log", ctx, mock.MatchedBy(func(e *activity.Entry) bool {
		return e.Type == activity.TypeProjectCreated && e.UserID == "user1" && e.CreatedAt.Equal(now)
	})).Return(nil)
	inv := &mocks.Invalidator{}
	inv.On("Invalidate", ctx, "user1").Return(nil)

	svc := project.NewService(repo, activities, inv, clock.Fake(now), nil)
	desc := "   "
	proj, err := svc.Create(ctx, "user1", project.CreateRequest{Name: "  Client Work ", Description: &desc})
	require.NoError(t, err)
	require.NotEmpty(t, proj.ID)
	require.Equal(t, "Client Work", proj.Name)
	require.Nil(t, proj.Description)
	require.Equal(t, project.DefaultColor, proj.Color)
	require.True(t, proj.IsActive)
	require.True(t, proj.CreatedAt.Equal(now))
	require.True(t, proj.UpdatedAt.Equal(now))

	repo.AssertExpectations(t)
	activities.AssertExpectations(t)
	inv.AssertExpectations(t)
}

func TestProjectService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	svc := project.NewService(&mocks.ProjectRepository{}, nil, nil, nil, nil)

	_, err := svc.Create(ctx, "user1", project.CreateRequest{Name: "   "})
	require.ErrorIs(t, err, project.ErrNameRequired)
	require.ErrorIs(t, err, project.ErrInvalidInput)

	_, err = svc.Create(ctx, "user1", project.CreateRequest{Name: strings.Repeat("x", 101)})
	require.ErrorIs(t, err, project.ErrInvalidInput)

	_, err = svc.Create(ctx, "user1", project.CreateRequest{Name: "ok", Color: "blue"})
	require.ErrorIs(t, err, project.ErrInvalidColor)

	long := strings.Repeat("d", 501)
	_, err = svc.Create(ctx, "user1", project.CreateRequest{Name: "ok", Description: &long})
	require.ErrorIs(t, err, project.ErrInvalidInput)
}

func TestProjectService_UpdateAndRestore(t *testing.T) {
	ctx := context.Background()

	existing := &project.Project{ID: "p1", UserID: "user1", Name: "Old", Color: "#000000", IsActive: false}
	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, "user1", "p1").Return(existing, nil)
	repo.On("Update", ctx, existing).Return(nil)

	now := time.Date(2026, 10, 16, 12, 30, 0, 0, time.UTC)
	svc := project.NewService(repo, nil, nil, clock.Fake(now), nil)
	name := "New"
	color := "#abcdef"
	active := true
	proj, err := svc.Update(ctx, "user1", "p1", project.UpdateRequest{Name: &name, Color: &color, IsActive: &active})
	require.NoError(t, err)
	require.Equal(t, "New", proj.Name)
	require.Equal(t, "#abcdef", proj.Color)
	require.True(t, proj.IsActive)
	require.True(t, proj.UpdatedAt.Equal(now))
}

func TestProjectService_ForeignProjectIsNotFound(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, "user2", "p1").Return(nil, repository.ErrNotFound)

	svc := project.NewService(repo, nil, nil, nil, nil)
	err := svc.Archive(ctx, "user2", "p1")
	require.ErrorIs(t, err, project.ErrProjectNotFound)

	_, err = svc.GetActive(ctx, "user2", "p1")
	require.ErrorIs(t, err, project.ErrProjectNotFound)
}

func TestProjectService_ArchiveSoftDeletes(t *testing.T) {
	ctx := context.Background()

	existing := &project.Project{ID: "p1", UserID: "user1", Name: "Side", Color: project.DefaultColor, IsActive: true}
	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, "user1", "p1").Return(existing, nil)
	repo.On("Update", ctx, mock.MatchedBy(func(p *project.Project) bool { return !p.IsActive })).Return(nil)

	svc := project.NewService(repo, nil, nil, nil, nil)
	require.NoError(t, svc.Archive(ctx, "user1", "p1"))

	_, err := svc.GetActive(ctx, "user1", "p1")
	require.ErrorIs(t, err, project.ErrProjectNotFound)
	repo.AssertExpectations(t)
}
