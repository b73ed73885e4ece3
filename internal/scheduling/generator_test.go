package scheduling

import (
	"errors"
	"testing"
)

func TestGenerateFreeSlots_EmptyBookings(t *testing.T) {
	window := Window{StartTime: "10:00", EndTime: "18:00"}

	slots, err := GenerateFreeSlots(window, 30, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 16 {
		t.Fatalf("expected 16 slots, got %d", len(slots))
	}
	if slots[0].StartTime != "10:00" || slots[0].EndTime != "10:30" {
		t.Fatalf("expected first slot 10:00-10:30, got %s-%s", slots[0].StartTime, slots[0].EndTime)
	}
	last := slots[len(slots)-1]
	if last.StartTime != "17:30" || last.EndTime != "18:00" {
		t.Fatalf("expected last slot 17:30-18:00, got %s-%s", last.StartTime, last.EndTime)
	}

	// Slots must be contiguous and non-overlapping.
	for i := 1; i < len(slots); i++ {
		if slots[i].StartTime != slots[i-1].EndTime {
			t.Fatalf("slot %d is not contiguous: %s-%s after %s-%s",
				i, slots[i].StartTime, slots[i].EndTime, slots[i-1].StartTime, slots[i-1].EndTime)
		}
	}
}

func TestGenerateFreeSlots_Exhaustiveness(t *testing.T) {
	// An empty window of size W with duration D yields exactly floor(W/D) slots.
	cases := []struct {
		window   Window
		duration int
		want     int
	}{
		{Window{"09:00", "17:00"}, 60, 8},
		{Window{"09:00", "10:45"}, 30, 3},
		{Window{"09:00", "09:20"}, 30, 0},
		{Window{"08:00", "12:00"}, 45, 5},
	}

	for _, c := range cases {
		slots, err := GenerateFreeSlots(c.window, c.duration, nil)
		if err != nil {
			t.Fatalf("unexpected error for %v: %v", c.window, err)
		}
		if len(slots) != c.want {
			t.Errorf("window %s-%s duration %d: expected %d slots, got %d",
				c.window.StartTime, c.window.EndTime, c.duration, c.want, len(slots))
		}
	}
}

func TestGenerateFreeSlots_RespectsBookings(t *testing.T) {
	window := Window{StartTime: "10:00", EndTime: "18:00"}
	booked := []Slot{
		{StartTime: "14:00", EndTime: "14:30"},
		{StartTime: "16:15", EndTime: "16:45"},
	}

	slots, err := GenerateFreeSlots(window, 30, booked)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 16 candidates minus 14:00-14:30 and the two candidates clipped by
	// the off-grid 16:15-16:45 booking.
	if len(slots) != 13 {
		t.Fatalf("expected 13 slots, got %d", len(slots))
	}
	for _, s := range slots {
		if OverlapsAny(s.StartTime, s.EndTime, booked) {
			t.Fatalf("free slot %s-%s overlaps a booking", s.StartTime, s.EndTime)
		}
	}
}

func TestGenerateFreeSlots_FullyBooked(t *testing.T) {
	window := Window{StartTime: "09:00", EndTime: "10:00"}
	booked := []Slot{{StartTime: "09:00", EndTime: "10:00"}}

	slots, err := GenerateFreeSlots(window, 30, booked)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no free slots, got %d", len(slots))
	}
}

func TestGenerateFreeSlots_Errors(t *testing.T) {
	window := Window{StartTime: "09:00", EndTime: "17:00"}

	if _, err := GenerateFreeSlots(window, 0, nil); !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("expected ErrInvalidDuration, got %v", err)
	}
	if _, err := GenerateFreeSlots(Window{StartTime: "9:00", EndTime: "17:00"}, 30, nil); !errors.Is(err, ErrInvalidTime) {
		t.Fatalf("expected ErrInvalidTime, got %v", err)
	}
	if _, err := GenerateFreeSlots(Window{StartTime: "17:00", EndTime: "09:00"}, 30, nil); !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("expected ErrInvalidInterval, got %v", err)
	}
}
