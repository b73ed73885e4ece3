package entity

import (
	"time"

	"github.com/google/uuid"
)

// Weekday name constants, matching time.Weekday order (Sunday = 0).
const (
	DaySunday    = "sunday"
	DayMonday    = "monday"
	DayTuesday   = "tuesday"
	DayWednesday = "wednesday"
	DayThursday  = "thursday"
	DayFriday    = "friday"
	DaySaturday  = "saturday"
)

var weekdayNames = [7]string{
	DaySunday, DayMonday, DayTuesday, DayWednesday, DayThursday, DayFriday, DaySaturday,
}

// WeekdayName returns the lowercase day name for a time.Weekday.
func WeekdayName(d time.Weekday) string {
	return weekdayNames[int(d)%7]
}

// ValidWeekday reports whether day is one of the known lowercase day names.
func ValidWeekday(day string) bool {
	for _, name := range weekdayNames {
		if name == day {
			return true
		}
	}
	return false
}

// WeeklyAvailability represents one recurring working window of a doctor on a
// given weekday. StartTime/EndTime are zero-padded "HH:MM" strings.
type WeeklyAvailability struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID    uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	Day         string    `gorm:"type:varchar(10);not null" json:"day"`
	StartTime   string    `gorm:"type:char(5);not null" json:"start_time"`
	EndTime     string    `gorm:"type:char(5);not null" json:"end_time"`
	Position    int       `gorm:"not null;default:0" json:"-"`
	IsAvailable bool      `gorm:"not null;default:true" json:"is_available"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (WeeklyAvailability) TableName() string {
	return "weekly_availabilities"
}
