package store

import (
	"context"
	"testing"
	"time"

	"github.com/LiamCoop/timetracker/internal/domain/project"
	"github.com/LiamCoop/timetracker/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestProjectRepository_CreateAndGet(t *testing.T) {
	db := NewTestDB(t)
	seedUser(t, db, "u1")
	repo := NewProjectRepository(db)
	ctx := context.Background()

	desc := "Billable"
	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	proj := &project.Project{
		ID: "p1", UserID: "u1", Name: "Client", Description: &desc, Color: "#abcdef",
		IsActive: true, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, repo.Create(ctx, proj))

	got, err := repo.Get(ctx, "u1", "p1")
	require.NoError(t, err)
	require.Equal(t, "Client", got.Name)
	require.Equal(t, "Billable", *got.Description)
	require.Equal(t, "#abcdef", got.Color)
	require.True(t, got.IsActive)
	require.True(t, now.Equal(got.CreatedAt))
}

func TestProjectRepository_UserIsolation(t *testing.T) {
	db := NewTestDB(t)
	seedUser(t, db, "u1")
	seedUser(t, db, "u2")
	seedProject(t, db, "u1", "p1", true)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	_, err := repo.Get(ctx, "u2", "p1")
	require.ErrorIs(t, err, repository.ErrNotFound)

	list, err := repo.List(ctx, "u2", project.ListOptions{IncludeInactive: true})
	require.NoError(t, err)
	require.Empty(t, list)

	proj, err := repo.Get(ctx, "u1", "p1")
	require.NoError(t, err)
	proj.UserID = "u2"
	require.ErrorIs(t, repo.Update(ctx, proj), repository.ErrNotFound)
}

func TestProjectRepository_ListOrdering(t *testing.T) {
	db := NewTestDB(t)
	seedUser(t, db, "u1")
	repo := NewProjectRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	for i, tc := range []struct {
		id     string
		active bool
	}{{"old", true}, {"archived", false}, {"new", true}} {
		at := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(ctx, &project.Project{
			ID: tc.id, UserID: "u1", Name: tc.id, Color: project.DefaultColor,
			IsActive: tc.active, CreatedAt: at, UpdatedAt: at,
		}))
	}

	active, err := repo.List(ctx, "u1", project.ListOptions{})
	require.NoError(t, err)
	require.Equal(t, []string{"new", "old"}, projectIDs(active))

	all, err := repo.List(ctx, "u1", project.ListOptions{IncludeInactive: true})
	require.NoError(t, err)
	require.Equal(t, []string{"new", "old", "archived"}, projectIDs(all))
}

func TestProjectRepository_CreateForUnknownUser(t *testing.T) {
	db := NewTestDB(t)
	now := time.Now()
	err := NewProjectRepository(db).Create(context.Background(), &project.Project{
		ID: "p1", UserID: "ghost", Name: "x", Color: project.DefaultColor, IsActive: true, CreatedAt: now, UpdatedAt: now,
	})
	require.ErrorIs(t, err, repository.ErrForeignKeyViolation)
}

func projectIDs(list []project.Project) []string {
	ids := make([]string, len(list))
	for i, p := range list {
		ids[i] = p.ID
	}
	return ids
}
