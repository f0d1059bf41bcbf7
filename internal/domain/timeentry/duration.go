package timeentry

import "time"

const millisPerMinute = int64(time.Minute / time.Millisecond)

// DurationMinutes returns the whole minutes between start and end, rounding
// half up. Negative spans yield 0.
func DurationMinutes(start, end time.Time) int {
	ms := end.Sub(start).Milliseconds()
	if ms <= 0 {
		return 0
	}
	return int((ms + millisPerMinute/2) / millisPerMinute)
}

// ClampEnd resolves the end time used to close an entry. Clients may report
// an end before the start (deferred unload calls, skewed clocks); such ends
// are replaced with now, and never fall before start.
func ClampEnd(start, end, now time.Time) time.Time {
	if end.Before(start) {
		end = now
	}
	if end.Before(start) {
		end = start
	}
	return end
}
