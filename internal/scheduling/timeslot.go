package scheduling

import (
	"fmt"
	"regexp"
	"time"
)

// Slot is a half-open [StartTime, EndTime) interval within a single day.
// Times are zero-padded 24-hour "HH:MM" strings, which makes lexicographic
// comparison equivalent to chronological comparison.
type Slot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

var clockTimeRe = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

// ValidClockTime reports whether s is a well-formed zero-padded "HH:MM" time.
func ValidClockTime(s string) bool {
	return clockTimeRe.MatchString(s)
}

// ValidateInterval checks that both bounds are well-formed and start < end.
func ValidateInterval(start, end string) error {
	if !ValidClockTime(start) || !ValidClockTime(end) {
		return ErrInvalidTime
	}
	if start >= end {
		return ErrInvalidInterval
	}
	return nil
}

// ToMinutes converts "HH:MM" to minutes since midnight.
func ToMinutes(s string) (int, error) {
	if !ValidClockTime(s) {
		return 0, ErrInvalidTime
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	return h*60 + m, nil
}

// FromMinutes converts minutes since midnight to a zero-padded "HH:MM" string.
func FromMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// FormatClock renders the time-of-day of t as "HH:MM".
func FormatClock(t time.Time) string {
	return t.Format("15:04")
}

// Overlaps reports whether the half-open intervals [s1,e1) and [s2,e2)
// intersect. String comparison is chronological because the format is
// fixed-width zero-padded; callers must validate bounds first.
func Overlaps(s1, e1, s2, e2 string) bool {
	return s1 < e2 && s2 < e1
}

// Overlaps reports whether s and other intersect.
func (s Slot) Overlaps(other Slot) bool {
	return Overlaps(s.StartTime, s.EndTime, other.StartTime, other.EndTime)
}

// OverlapsAny reports whether [start,end) intersects any of busy.
func OverlapsAny(start, end string, busy []Slot) bool {
	for _, b := range busy {
		if Overlaps(start, end, b.StartTime, b.EndTime) {
			return true
		}
	}
	return false
}
