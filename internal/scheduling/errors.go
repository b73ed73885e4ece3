package scheduling

import "errors"

var (
	ErrInvalidTime     = errors.New("invalid time format, use zero-padded HH:MM")
	ErrInvalidInterval = errors.New("start time must be before end time")
	ErrInvalidDuration = errors.New("slot duration must be positive")
	ErrUnavailableDay  = errors.New("doctor is not available on this day")
	ErrOutsideHours    = errors.New("requested time is outside the doctor's working hours")
	ErrPastDate        = errors.New("appointment date cannot be in the past")
	ErrPastTime        = errors.New("appointment time has already passed")
	ErrPatientConflict = errors.New("patient has an overlapping appointment at this time")
	ErrDoctorConflict  = errors.New("doctor has an overlapping appointment at this time")
)
