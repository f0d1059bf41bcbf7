package summary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/LiamCoop/timetracker/internal/clock"
	"github.com/LiamCoop/timetracker/internal/domain/project"
	"github.com/LiamCoop/timetracker/internal/domain/timeentry"
	"golang.org/x/sync/singleflight"
)

// Service serves aggregated totals, optionally through a cache.
type Service struct {
	projects ProjectLister
	entries  EntryLister
	cache    Cache
	clock    clock.Clock
	logger   *slog.Logger
	group    singleflight.Group
}

// NewService creates a new summary service. cache and clk may be nil.
func NewService(projects ProjectLister, entries EntryLister, cache Cache, clk clock.Clock, logger *slog.Logger) *Service {
	if clk == nil {
		clk = clock.Real(nil)
	}
	return &Service{projects: projects, entries: entries, cache: cache, clock: clk, logger: logger}
}

// Summaries returns per-project totals for today, this week and this month.
func (s *Service) Summaries(ctx context.Context, userID string) ([]ProjectSummary, error) {
	now := s.clock.Now()
	key := "summary:" + now.Format(DateLayout)

	var out []ProjectSummary
	err := s.cached(ctx, userID, key, &out, func() (any, error) {
		windows := NewWindows(now)
		since := windows.Earliest()
		until := windows.Week.End

		projects, err := s.projects.List(ctx, userID, project.ListOptions{})
		if err != nil {
			return nil, fmt.Errorf("listing projects: %w", err)
		}
		entries, err := s.entries.List(ctx, userID, timeentry.ListOptions{
			Completed: true,
			Since:     &since,
			Until:     &until,
		})
		if err != nil {
			return nil, fmt.Errorf("listing time entries: %w", err)
		}
		return Summarize(projects, entries, now), nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// WeeklyTime returns the seven-day breakdown of a project's completed time
// for the current week. Unknown or foreign projects yield all zeros.
func (s *Service) WeeklyTime(ctx context.Context, userID, projectID string) ([]DayTotal, error) {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return nil, timeentry.ErrProjectRequired
	}
	now := s.clock.Now()
	key := "weekly:" + projectID + ":" + now.Format(DateLayout)

	var out []DayTotal
	err := s.cached(ctx, userID, key, &out, func() (any, error) {
		week := NewWindows(now).Week
		entries, err := s.entries.List(ctx, userID, timeentry.ListOptions{
			Completed: true,
			ProjectID: projectID,
			Since:     &week.Start,
			Until:     &week.End,
		})
		if err != nil {
			return nil, fmt.Errorf("listing time entries: %w", err)
		}
		return DailyBreakdown(entries, now), nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// cached loads key into dst from the cache, or computes it with load,
// collapsing concurrent loads of the same key. dst must be a pointer to the
// type load returns. Keys carry the user's cache generation, read before
// loading, so a result computed across an invalidation is stored under a
// key no later read uses.
func (s *Service) cached(ctx context.Context, userID, key string, dst any, load func() (any, error)) error {
	useCache := s.cache != nil
	if useCache {
		gen, err := s.cache.Generation(ctx, userID)
		if err != nil {
			s.warn("summary cache generation read failed", userID, key, err)
			useCache = false
		}
		key = fmt.Sprintf("%s@%d", key, gen)
	}
	if useCache {
		found, err := s.cache.Get(ctx, userID, key, dst)
		if err != nil {
			s.warn("summary cache read failed", userID, key, err)
		} else if found {
			return nil
		}
	}

	v, err, _ := s.group.Do(userID+":"+key, func() (any, error) {
		v, err := load()
		if err != nil {
			return nil, err
		}
		if useCache {
			if err := s.cache.Set(ctx, userID, key, v); err != nil {
				s.warn("summary cache write failed", userID, key, err)
			}
		}
		return v, nil
	})
	if err != nil {
		return err
	}

	switch dst := dst.(type) {
	case *[]ProjectSummary:
		*dst = v.([]ProjectSummary)
	case *[]DayTotal:
		*dst = v.([]DayTotal)
	default:
		return fmt.Errorf("unsupported cache target %T", dst)
	}
	return nil
}

func (s *Service) warn(msg, userID, key string, err error) {
	if s.logger != nil {
		s.logger.Warn(msg, "user_id", userID, "key", key, "error", err)
	}
}
