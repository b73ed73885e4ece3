package entity

import (
	"testing"
	"time"
)

func TestWeekdayName(t *testing.T) {
	tests := []struct {
		day  time.Weekday
		want string
	}{
		{time.Sunday, "sunday"},
		{time.Monday, "monday"},
		{time.Wednesday, "wednesday"},
		{time.Saturday, "saturday"},
	}
	for _, tt := range tests {
		if got := WeekdayName(tt.day); got != tt.want {
			t.Errorf("WeekdayName(%v) = %q, want %q", tt.day, got, tt.want)
		}
	}
}

func TestValidWeekday(t *testing.T) {
	for _, day := range []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"} {
		if !ValidWeekday(day) {
			t.Errorf("ValidWeekday(%q) = false, want true", day)
		}
	}
	for _, day := range []string{"Monday", "MON", "weekday", ""} {
		if ValidWeekday(day) {
			t.Errorf("ValidWeekday(%q) = true, want false", day)
		}
	}
}
