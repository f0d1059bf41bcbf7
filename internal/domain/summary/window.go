package summary

import (
	"time"

	"github.com/LiamCoop/timetracker/internal/clock"
)

// Window is a half-open [Start, End) interval.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Windows are the calendar windows relative to a single "now". Today and
// Month end at now; Week spans the whole Sunday-to-Saturday week.
type Windows struct {
	Today Window
	Week  Window
	Month Window
}

// NewWindows computes the windows in now's location.
func NewWindows(now time.Time) Windows {
	weekStart := clock.StartOfWeek(now)
	return Windows{
		Today: Window{Start: clock.StartOfDay(now), End: now},
		Week:  Window{Start: weekStart, End: weekStart.AddDate(0, 0, 7)},
		Month: Window{Start: clock.StartOfMonth(now), End: now},
	}
}

// Earliest returns the earliest start across all windows. Early in a month
// the week can begin in the previous month.
func (w Windows) Earliest() time.Time {
	if w.Week.Start.Before(w.Month.Start) {
		return w.Week.Start
	}
	return w.Month.Start
}
