package summary

// ProjectRef is the slice of a project shown next to its totals.
type ProjectRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ProjectSummary holds a project's minute totals per window.
type ProjectSummary struct {
	Project   ProjectRef `json:"project"`
	Today     int        `json:"today"`
	ThisWeek  int        `json:"thisWeek"`
	ThisMonth int        `json:"thisMonth"`
}

// DayTotal is one day of the weekly breakdown.
type DayTotal struct {
	Day     string `json:"day"`
	Date    string `json:"date"`
	Minutes int    `json:"minutes"`
}

// DateLayout formats DayTotal.Date.
const DateLayout = "2006-01-02"
