package summary

import (
	"time"

	"github.com/LiamCoop/timetracker/internal/domain/project"
	"github.com/LiamCoop/timetracker/internal/domain/timeentry"
)

// Summarize totals completed entries per active project over the windows
// derived from now. Running entries contribute nothing. Projects with no
// time in any window are dropped; the input order is kept.
func Summarize(projects []project.Project, entries []timeentry.TimeEntry, now time.Time) []ProjectSummary {
	windows := NewWindows(now)

	totals := make(map[string]*ProjectSummary, len(projects))
	out := make([]*ProjectSummary, 0, len(projects))
	for _, p := range projects {
		if !p.IsActive {
			continue
		}
		s := &ProjectSummary{Project: ProjectRef{ID: p.ID, Name: p.Name, Color: p.Color}}
		totals[p.ID] = s
		out = append(out, s)
	}

	for _, e := range entries {
		if e.Running() {
			continue
		}
		s, ok := totals[e.ProjectID]
		if !ok {
			continue
		}
		start := e.StartTime.In(now.Location())
		minutes := e.Minutes()
		if windows.Today.Contains(start) {
			s.Today += minutes
		}
		if windows.Week.Contains(start) {
			s.ThisWeek += minutes
		}
		if windows.Month.Contains(start) {
			s.ThisMonth += minutes
		}
	}

	result := make([]ProjectSummary, 0, len(out))
	for _, s := range out {
		if s.Today == 0 && s.ThisWeek == 0 && s.ThisMonth == 0 {
			continue
		}
		result = append(result, *s)
	}
	return result
}

// DailyBreakdown returns seven day totals, Sunday through Saturday, for the
// week containing now. Entries are bucketed by the local calendar date of
// their start time; running entries contribute nothing.
func DailyBreakdown(entries []timeentry.TimeEntry, now time.Time) []DayTotal {
	week := NewWindows(now).Week
	days := make([]DayTotal, 7)
	index := make(map[string]int, 7)
	for i := range days {
		d := week.Start.AddDate(0, 0, i)
		days[i] = DayTotal{Day: d.Weekday().String(), Date: d.Format(DateLayout)}
		index[days[i].Date] = i
	}

	for _, e := range entries {
		if e.Running() {
			continue
		}
		date := e.StartTime.In(now.Location()).Format(DateLayout)
		if i, ok := index[date]; ok {
			days[i].Minutes += e.Minutes()
		}
	}
	return days
}
