package scheduling

import (
	"errors"
	"testing"
)

func TestValidClockTime(t *testing.T) {
	cases := []struct {
		in    string
		valid bool
	}{
		{"00:00", true},
		{"09:30", true},
		{"23:59", true},
		{"9:30", false},
		{"24:00", false},
		{"10:60", false},
		{"10-30", false},
		{"", false},
		{"10:30:00", false},
	}

	for _, c := range cases {
		if got := ValidClockTime(c.in); got != c.valid {
			t.Errorf("ValidClockTime(%q) = %v, want %v", c.in, got, c.valid)
		}
	}
}

func TestToMinutes(t *testing.T) {
	m, err := ToMinutes("14:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m != 870 {
		t.Fatalf("expected 870, got %d", m)
	}

	if _, err := ToMinutes("25:00"); !errors.Is(err, ErrInvalidTime) {
		t.Fatalf("expected ErrInvalidTime, got %v", err)
	}
}

func TestFromMinutes(t *testing.T) {
	if got := FromMinutes(870); got != "14:30" {
		t.Fatalf("expected %q, got %q", "14:30", got)
	}
	if got := FromMinutes(5); got != "00:05" {
		t.Fatalf("expected zero-padded %q, got %q", "00:05", got)
	}
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name           string
		s1, e1, s2, e2 string
		want           bool
	}{
		{"identical", "10:00", "10:30", "10:00", "10:30", true},
		{"partial", "10:00", "11:00", "10:30", "11:30", true},
		{"contained", "10:00", "12:00", "10:30", "11:00", true},
		{"touching ends", "10:00", "10:30", "10:30", "11:00", false},
		{"disjoint", "08:00", "09:00", "10:00", "11:00", false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Overlaps(c.s1, c.e1, c.s2, c.e2); got != c.want {
				t.Fatalf("Overlaps(%s-%s, %s-%s) = %v, want %v", c.s1, c.e1, c.s2, c.e2, got, c.want)
			}
			// Overlap must be symmetric regardless of argument order.
			if got := Overlaps(c.s2, c.e2, c.s1, c.e1); got != c.want {
				t.Fatalf("Overlaps is not symmetric for %s-%s vs %s-%s", c.s1, c.e1, c.s2, c.e2)
			}
		})
	}
}

func TestValidateInterval(t *testing.T) {
	if err := ValidateInterval("09:00", "17:00"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateInterval("9:00", "17:00"); !errors.Is(err, ErrInvalidTime) {
		t.Fatalf("expected ErrInvalidTime, got %v", err)
	}
	if err := ValidateInterval("17:00", "09:00"); !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("expected ErrInvalidInterval, got %v", err)
	}
	if err := ValidateInterval("09:00", "09:00"); !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("expected ErrInvalidInterval for empty interval, got %v", err)
	}
}

func TestOverlapsAny(t *testing.T) {
	busy := []Slot{
		{StartTime: "09:00", EndTime: "09:30"},
		{StartTime: "14:00", EndTime: "14:30"},
	}

	if !OverlapsAny("14:15", "14:45", busy) {
		t.Fatal("expected overlap with 14:00-14:30")
	}
	if OverlapsAny("09:30", "10:00", busy) {
		t.Fatal("expected no overlap for adjacent interval")
	}
	if OverlapsAny("10:00", "11:00", nil) {
		t.Fatal("expected no overlap with empty busy list")
	}
}
