package mocks

import (
	"context"
	"time"

	"github.com/LiamCoop/timetracker/internal/domain/activity"
	"github.com/LiamCoop/timetracker/internal/domain/project"
	"github.com/LiamCoop/timetracker/internal/domain/quote"
	"github.com/LiamCoop/timetracker/internal/domain/timeentry"
	"github.com/LiamCoop/timetracker/internal/domain/user"
	"github.com/stretchr/testify/mock"
)

// ProjectRepository is a mock for project.Repository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, userID, id string) (*project.Project, error) {
	args := m.Called(ctx, userID, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) List(ctx context.Context, userID string, opts project.ListOptions) ([]project.Project, error) {
	args := m.Called(ctx, userID, opts)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Update(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

// EntryRepository is a mock for timeentry.Repository.
type EntryRepository struct {
	mock.Mock
}

func (m *EntryRepository) CreateActive(ctx context.Context, entry *timeentry.TimeEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *EntryRepository) Switch(ctx context.Context, userID string, stopAt time.Time, next *timeentry.TimeEntry) (*timeentry.TimeEntry, error) {
	args := m.Called(ctx, userID, stopAt, next)
	if entry, ok := args.Get(0).(*timeentry.TimeEntry); ok {
		return entry, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EntryRepository) Get(ctx context.Context, userID, id string) (*timeentry.TimeEntry, error) {
	args := m.Called(ctx, userID, id)
	if entry, ok := args.Get(0).(*timeentry.TimeEntry); ok {
		return entry, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EntryRepository) GetActive(ctx context.Context, userID string) (*timeentry.TimeEntry, error) {
	args := m.Called(ctx, userID)
	if entry, ok := args.Get(0).(*timeentry.TimeEntry); ok {
		return entry, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EntryRepository) Update(ctx context.Context, entry *timeentry.TimeEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *EntryRepository) Delete(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *EntryRepository) List(ctx context.Context, userID string, opts timeentry.ListOptions) ([]timeentry.TimeEntry, error) {
	args := m.Called(ctx, userID, opts)
	if list, ok := args.Get(0).([]timeentry.TimeEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// UserRepository is a mock for user.Repository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Upsert(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *UserRepository) Get(ctx context.Context, id string) (*user.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// QuoteRepository is a mock for quote.Repository.
type QuoteRepository struct {
	mock.Mock
}

func (m *QuoteRepository) Create(ctx context.Context, q *quote.Quote) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *QuoteRepository) ListActive(ctx context.Context) ([]quote.Quote, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]quote.Quote); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, entry *activity.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, userID string, opts activity.ListOptions) ([]activity.Entry, error) {
	args := m.Called(ctx, userID, opts)
	if list, ok := args.Get(0).([]activity.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// Invalidator is a mock for the cache invalidation hooks.
type Invalidator struct {
	mock.Mock
}

func (m *Invalidator) Invalidate(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
