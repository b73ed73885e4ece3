package scheduling

import (
	"testing"
	"time"

	"clinic-booking/internal/domain/entity"
)

// 2026-03-02 is a Monday, 2026-03-01 a Sunday.
var (
	monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	sunday = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
)

func weekdayEntries() []entity.WeeklyAvailability {
	return []entity.WeeklyAvailability{
		{Day: entity.DayMonday, StartTime: "10:00", EndTime: "18:00", IsAvailable: true},
		{Day: entity.DayTuesday, StartTime: "09:00", EndTime: "17:00", IsAvailable: true},
		{Day: entity.DayWednesday, StartTime: "09:00", EndTime: "13:00", IsAvailable: false},
	}
}

func TestResolveAvailability_MatchesWeekday(t *testing.T) {
	window, ok := ResolveAvailability(weekdayEntries(), monday)
	if !ok {
		t.Fatal("expected a window for monday")
	}
	if window.StartTime != "10:00" || window.EndTime != "18:00" {
		t.Fatalf("expected 10:00-18:00, got %s-%s", window.StartTime, window.EndTime)
	}
}

func TestResolveAvailability_NoEntryForDay(t *testing.T) {
	if _, ok := ResolveAvailability(weekdayEntries(), sunday); ok {
		t.Fatal("expected no window for sunday")
	}
}

func TestResolveAvailability_SkipsUnavailableEntry(t *testing.T) {
	wednesday := monday.AddDate(0, 0, 2)
	if _, ok := ResolveAvailability(weekdayEntries(), wednesday); ok {
		t.Fatal("expected no window when the entry is marked unavailable")
	}
}

func TestResolveAvailability_FirstMatchWins(t *testing.T) {
	entries := []entity.WeeklyAvailability{
		{Day: entity.DayMonday, StartTime: "08:00", EndTime: "12:00", IsAvailable: false},
		{Day: entity.DayMonday, StartTime: "10:00", EndTime: "18:00", IsAvailable: true},
		{Day: entity.DayMonday, StartTime: "14:00", EndTime: "20:00", IsAvailable: true},
	}

	window, ok := ResolveAvailability(entries, monday)
	if !ok {
		t.Fatal("expected a window")
	}
	// The first entry with IsAvailable set wins; later duplicates are ignored.
	if window.StartTime != "10:00" || window.EndTime != "18:00" {
		t.Fatalf("expected first available entry 10:00-18:00, got %s-%s", window.StartTime, window.EndTime)
	}
}

func TestResolveAvailability_Idempotent(t *testing.T) {
	entries := weekdayEntries()
	first, ok1 := ResolveAvailability(entries, monday)
	second, ok2 := ResolveAvailability(entries, monday)
	if ok1 != ok2 || first != second {
		t.Fatalf("expected identical results, got %+v/%v and %+v/%v", first, ok1, second, ok2)
	}
}

func TestWindowContains(t *testing.T) {
	w := Window{StartTime: "09:00", EndTime: "17:00"}

	cases := []struct {
		start, end string
		want       bool
	}{
		{"09:00", "09:30", true},
		{"16:30", "17:00", true},
		{"08:30", "09:30", false},
		{"16:45", "17:15", false},
	}

	for _, c := range cases {
		if got := w.Contains(c.start, c.end); got != c.want {
			t.Errorf("Contains(%s, %s) = %v, want %v", c.start, c.end, got, c.want)
		}
	}
}
