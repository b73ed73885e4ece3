package scheduling

import (
	"time"

	"clinic-booking/internal/domain/entity"
)

// Window is the working start/end range a doctor covers on a given weekday.
type Window struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Contains reports whether the half-open interval [start,end) lies fully
// inside the window.
func (w Window) Contains(start, end string) bool {
	return start >= w.StartTime && end <= w.EndTime
}

// ResolveAvailability resolves the working window for date from a doctor's
// recurring weekly availability entries.
//
// Entries must be given in stored list order: when a doctor has more than one
// entry for the same weekday, the first matching entry with IsAvailable set
// wins. This first-match-wins rule is a contract, not an accident; callers
// and tests rely on it being deterministic.
func ResolveAvailability(entries []entity.WeeklyAvailability, date time.Time) (Window, bool) {
	day := entity.WeekdayName(date.Weekday())
	for _, e := range entries {
		if e.Day == day && e.IsAvailable {
			return Window{StartTime: e.StartTime, EndTime: e.EndTime}, true
		}
	}
	return Window{}, false
}
