package timeentry_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/LiamCoop/timetracker/internal/clock"
	"github.com/LiamCoop/timetracker/internal/domain/activity"
	"github.com/LiamCoop/timetracker/internal/domain/project"
	"github.com/LiamCoop/timetracker/internal/domain/timeentry"
	"github.com/LiamCoop/timetracker/internal/repository"
	"github.com/LiamCoop/timetracker/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var friday = time.Date(2026, 10, 16, 14, 0, 0, 0, time.UTC)

func activeProject() *project.Project {
	return &project.Project{ID: "p1", UserID: "user1", Name: "Client", Color: project.DefaultColor, IsActive: true}
}

func newService(entries *mocks.EntryRepository, projects *mocks.ProjectRepository, clk clock.Clock) *timeentry.Service {
	return timeentry.NewService(entries, projects, nil, nil, clk, nil)
}

func TestTimeEntryService_Start(t *testing.T) {
	ctx := context.Background()
	clk := clock.Fake(friday)

	projects := &mocks.ProjectRepository{}
	projects.On("Get", ctx, "user1", "p1").Return(activeProject(), nil)
	entries := &mocks.EntryRepository{}
	entries.On("CreateActive", ctx, mock.AnythingOfType("*timeentry.TimeEntry")).Return(nil)
	activities := &mocks.ActivityRepository{}
	activities.On("Log", ctx, mock.MatchedBy(func(e *activity.Entry) bool {
		return e.Type == activity.TypeEntryStarted
	})).Return(nil)
	inv := &mocks.Invalidator{}
	inv.On("Invalidate", ctx, "user1").Return(nil)

	svc := timeentry.NewService(entries, projects, activities, inv, clk, nil)
	desc := "  writing docs "
	entry, err := svc.Start(ctx, "user1", timeentry.StartRequest{ProjectID: "p1", Description: &desc})
	require.NoError(t, err)
	require.NotEmpty(t, entry.ID)
	require.True(t, entry.Running())
	require.Nil(t, entry.Duration)
	require.Equal(t, friday, entry.StartTime)
	require.Equal(t, "writing docs", *entry.Description)
	require.Equal(t, "Client", entry.Project.Name)

	entries.AssertExpectations(t)
	activities.AssertExpectations(t)
	inv.AssertExpectations(t)
}

func TestTimeEntryService_StartRejectsSecondActive(t *testing.T) {
	ctx := context.Background()

	projects := &mocks.ProjectRepository{}
	projects.On("Get", ctx, "user1", "p1").Return(activeProject(), nil)
	entries := &mocks.EntryRepository{}
	entries.On("CreateActive", ctx, mock.Anything).Return(repository.ErrConflict)

	svc := newService(entries, projects, clock.Fake(friday))
	_, err := svc.Start(ctx, "user1", timeentry.StartRequest{ProjectID: "p1"})
	require.ErrorIs(t, err, timeentry.ErrActiveEntryConflict)
}

func TestTimeEntryService_StartValidation(t *testing.T) {
	ctx := context.Background()

	inactive := activeProject()
	inactive.IsActive = false
	projects := &mocks.ProjectRepository{}
	projects.On("Get", ctx, "user1", "archived").Return(inactive, nil)
	projects.On("Get", ctx, "user1", "foreign").Return(nil, repository.ErrNotFound)
	entries := &mocks.EntryRepository{}

	svc := newService(entries, projects, clock.Fake(friday))

	_, err := svc.Start(ctx, "user1", timeentry.StartRequest{ProjectID: "  "})
	require.ErrorIs(t, err, timeentry.ErrProjectRequired)
	require.ErrorIs(t, err, timeentry.ErrInvalidInput)

	_, err = svc.Start(ctx, "user1", timeentry.StartRequest{ProjectID: "archived"})
	require.ErrorIs(t, err, project.ErrProjectNotFound)

	_, err = svc.Start(ctx, "user1", timeentry.StartRequest{ProjectID: "foreign"})
	require.ErrorIs(t, err, project.ErrProjectNotFound)

	long := strings.Repeat("a", 501)
	_, err = svc.Start(ctx, "user1", timeentry.StartRequest{ProjectID: "p1", Description: &long})
	require.ErrorIs(t, err, timeentry.ErrDescriptionTooLong)

	entries.AssertNotCalled(t, "CreateActive", mock.Anything, mock.Anything)
}

func TestTimeEntryService_StopComputesDuration(t *testing.T) {
	ctx := context.Background()
	clk := clock.Fake(friday.Add(125 * time.Second))

	running := &timeentry.TimeEntry{ID: "e1", UserID: "user1", ProjectID: "p1", StartTime: friday}
	entries := &mocks.EntryRepository{}
	entries.On("Get", ctx, "user1", "e1").Return(running, nil)
	entries.On("Update", ctx, running).Return(nil)

	svc := newService(entries, &mocks.ProjectRepository{}, clk)
	stopped, err := svc.Stop(ctx, "user1", "e1", timeentry.StopRequest{})
	require.NoError(t, err)
	require.Equal(t, 2, *stopped.Duration)
	require.Equal(t, friday.Add(125*time.Second), *stopped.EndTime)
}

func TestTimeEntryService_StopClampsEndBeforeStart(t *testing.T) {
	ctx := context.Background()
	clk := clock.Fake(friday.Add(10 * time.Minute))

	running := &timeentry.TimeEntry{ID: "e1", UserID: "user1", ProjectID: "p1", StartTime: friday}
	entries := &mocks.EntryRepository{}
	entries.On("Get", ctx, "user1", "e1").Return(running, nil)
	entries.On("Update", ctx, running).Return(nil)

	svc := newService(entries, &mocks.ProjectRepository{}, clk)
	early := friday.Add(-time.Hour)
	stopped, err := svc.Stop(ctx, "user1", "e1", timeentry.StopRequest{EndTime: &early})
	require.NoError(t, err)
	require.Equal(t, friday.Add(10*time.Minute), *stopped.EndTime)
	require.Equal(t, 10, *stopped.Duration)
}

func TestTimeEntryService_StopTwiceLastWriteWins(t *testing.T) {
	ctx := context.Background()
	clk := clock.Fake(friday.Add(time.Hour))

	end := friday.Add(20 * time.Minute)
	duration := 20
	closed := &timeentry.TimeEntry{ID: "e1", UserID: "user1", ProjectID: "p1", StartTime: friday, EndTime: &end, Duration: &duration}
	entries := &mocks.EntryRepository{}
	entries.On("Get", ctx, "user1", "e1").Return(closed, nil)
	entries.On("Update", ctx, closed).Return(nil)

	svc := newService(entries, &mocks.ProjectRepository{}, clk)
	stopped, err := svc.Stop(ctx, "user1", "e1", timeentry.StopRequest{})
	require.NoError(t, err)
	require.Equal(t, 60, *stopped.Duration)
}

func TestTimeEntryService_StopForeignEntry(t *testing.T) {
	ctx := context.Background()

	entries := &mocks.EntryRepository{}
	entries.On("Get", ctx, "user2", "e1").Return(nil, repository.ErrNotFound)

	svc := newService(entries, &mocks.ProjectRepository{}, clock.Fake(friday))
	_, err := svc.Stop(ctx, "user2", "e1", timeentry.StopRequest{})
	require.ErrorIs(t, err, timeentry.ErrEntryNotFound)

	err = svc.Delete(ctx, "user2", "e1")
	require.ErrorIs(t, err, timeentry.ErrEntryNotFound)
}

func TestTimeEntryService_UpdateKeepsEndOfClosedEntry(t *testing.T) {
	ctx := context.Background()
	clk := clock.Fake(friday.Add(3 * time.Hour))

	end := friday.Add(45 * time.Minute)
	duration := 45
	desc := "old"
	closed := &timeentry.TimeEntry{ID: "e1", UserID: "user1", ProjectID: "p1", StartTime: friday, EndTime: &end, Duration: &duration, Description: &desc}
	entries := &mocks.EntryRepository{}
	entries.On("Get", ctx, "user1", "e1").Return(closed, nil)
	entries.On("Update", ctx, closed).Return(nil)

	svc := newService(entries, &mocks.ProjectRepository{}, clk)
	blank := ""
	updated, err := svc.Update(ctx, "user1", "e1", timeentry.Patch{Description: &blank})
	require.NoError(t, err)
	require.Equal(t, end, *updated.EndTime)
	require.Equal(t, 45, *updated.Duration)
	require.Nil(t, updated.Description)
}

func TestTimeEntryService_UpdateClosesRunningEntry(t *testing.T) {
	ctx := context.Background()
	clk := clock.Fake(friday.Add(90 * time.Second))

	desc := "keep me"
	running := &timeentry.TimeEntry{ID: "e1", UserID: "user1", ProjectID: "p1", StartTime: friday, Description: &desc}
	entries := &mocks.EntryRepository{}
	entries.On("Get", ctx, "user1", "e1").Return(running, nil)
	entries.On("Update", ctx, running).Return(nil)

	svc := newService(entries, &mocks.ProjectRepository{}, clk)
	updated, err := svc.Update(ctx, "user1", "e1", timeentry.Patch{})
	require.NoError(t, err)
	require.False(t, updated.Running())
	require.Equal(t, 2, *updated.Duration)
	require.Equal(t, "keep me", *updated.Description)
}

func TestTimeEntryService_Switch(t *testing.T) {
	ctx := context.Background()
	clk := clock.Fake(friday.Add(30 * time.Minute))

	end := friday.Add(30 * time.Minute)
	duration := 30
	previous := &timeentry.TimeEntry{ID: "e0", UserID: "user1", ProjectID: "p0", StartTime: friday, EndTime: &end, Duration: &duration}

	projects := &mocks.ProjectRepository{}
	projects.On("Get", ctx, "user1", "p1").Return(activeProject(), nil)
	entries := &mocks.EntryRepository{}
	entries.On("Switch", ctx, "user1", friday.Add(30*time.Minute), mock.AnythingOfType("*timeentry.TimeEntry")).Return(previous, nil)

	svc := newService(entries, projects, clk)
	next, stopped, err := svc.Switch(ctx, "user1", timeentry.StartRequest{ProjectID: "p1"})
	require.NoError(t, err)
	require.Equal(t, "p1", next.ProjectID)
	require.True(t, next.Running())
	require.Same(t, previous, stopped)
}

func TestTimeEntryService_ActiveNone(t *testing.T) {
	ctx := context.Background()

	entries := &mocks.EntryRepository{}
	entries.On("GetActive", ctx, "user1").Return(nil, repository.ErrNotFound)

	svc := newService(entries, &mocks.ProjectRepository{}, clock.Fake(friday))
	_, err := svc.Active(ctx, "user1")
	require.ErrorIs(t, err, timeentry.ErrEntryNotFound)

	_, err = svc.StopActive(ctx, "user1", timeentry.StopRequest{})
	require.ErrorIs(t, err, timeentry.ErrEntryNotFound)
}

func TestTimeEntryService_ListValidation(t *testing.T) {
	ctx := context.Background()
	svc := newService(&mocks.EntryRepository{}, &mocks.ProjectRepository{}, clock.Fake(friday))

	_, err := svc.List(ctx, "user1", timeentry.ListOptions{Limit: -1})
	require.ErrorIs(t, err, timeentry.ErrInvalidLimit)

}

func TestTimeEntryService_ListActiveWinsOverCompleted(t *testing.T) {
	ctx := context.Background()

	running := []timeentry.TimeEntry{{ID: "e1"}}
	entries := &mocks.EntryRepository{}
	entries.On("List", ctx, "user1", timeentry.ListOptions{Active: true}).Return(running, nil)

	svc := newService(entries, &mocks.ProjectRepository{}, clock.Fake(friday))
	list, err := svc.List(ctx, "user1", timeentry.ListOptions{Active: true, Completed: true})
	require.NoError(t, err)
	require.Equal(t, running, list)
	entries.AssertExpectations(t)
}

func TestTimeEntryService_WeeklyUsesSundayWeek(t *testing.T) {
	ctx := context.Background()

	sunday := time.Date(2026, 10, 11, 0, 0, 0, 0, time.UTC)
	nextSunday := sunday.AddDate(0, 0, 7)
	entries := &mocks.EntryRepository{}
	entries.On("List", ctx, "user1", timeentry.ListOptions{
		Completed: true,
		ProjectID: "p1",
		Since:     &sunday,
		Until:     &nextSunday,
	}).Return([]timeentry.TimeEntry{{ID: "e1"}}, nil)

	svc := newService(entries, &mocks.ProjectRepository{}, clock.Fake(friday))
	list, err := svc.Weekly(ctx, "user1", "p1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	entries.AssertExpectations(t)
}
