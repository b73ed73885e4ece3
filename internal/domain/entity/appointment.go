package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled  AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed  AppointmentStatus = "confirmed"
	AppointmentStatusInProgress AppointmentStatus = "in_progress"
	AppointmentStatusCompleted  AppointmentStatus = "completed"
	AppointmentStatusCancelled  AppointmentStatus = "cancelled"
	AppointmentStatusNoShow     AppointmentStatus = "no_show"
)

// AppointmentType represents the kind of visit
type AppointmentType string

const (
	AppointmentTypeConsultation AppointmentType = "consultation"
	AppointmentTypeFollowUp     AppointmentType = "follow_up"
	AppointmentTypeEmergency    AppointmentType = "emergency"
	AppointmentTypeSurgery      AppointmentType = "surgery"
	AppointmentTypeCheckup      AppointmentType = "checkup"
)

// Appointment represents a booked time interval between a patient and a doctor.
// StartTime/EndTime are zero-padded "HH:MM" strings; AppointmentDate carries
// only the calendar date (time component is midnight).
type Appointment struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID       uuid.UUID         `gorm:"type:uuid;not null;index:idx_appointments_patient_date" json:"patient_id"`
	DoctorID        uuid.UUID         `gorm:"type:uuid;not null;index:idx_appointments_doctor_date" json:"doctor_id"`
	AppointmentDate time.Time         `gorm:"type:date;not null;index:idx_appointments_patient_date;index:idx_appointments_doctor_date" json:"appointment_date"`
	StartTime       string            `gorm:"type:char(5);not null" json:"start_time"`
	EndTime         string            `gorm:"type:char(5);not null" json:"end_time"`
	Duration        int               `gorm:"not null;default:30" json:"duration"`
	Type            AppointmentType   `gorm:"type:varchar(20);not null;default:'consultation'" json:"type"`
	Status          AppointmentStatus `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	Department      string            `gorm:"type:varchar(100)" json:"department,omitempty"`
	Reason          string            `gorm:"type:text" json:"reason,omitempty"`
	Notes           string            `gorm:"type:text" json:"notes,omitempty"`
	CancelledBy     *uuid.UUID        `gorm:"type:uuid" json:"cancelled_by,omitempty"`
	CancelReason    string            `gorm:"type:text" json:"cancel_reason,omitempty"`
	CreatedBy       uuid.UUID         `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  DoctorProfile  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsTerminal reports whether no further lifecycle transitions are permitted.
func (a *Appointment) IsTerminal() bool {
	switch a.Status {
	case AppointmentStatusCompleted, AppointmentStatusCancelled, AppointmentStatusNoShow:
		return true
	}
	return false
}

// IsCancellable reports whether the appointment may still be cancelled.
// Cancellation is only allowed before the visit has started.
func (a *Appointment) IsCancellable() bool {
	return a.Status == AppointmentStatusScheduled || a.Status == AppointmentStatusConfirmed
}

// IsReschedulable reports whether the appointment may be moved to a new slot.
// A no_show may be rescheduled by a doctor; completed and cancelled may not.
func (a *Appointment) IsReschedulable() bool {
	return a.Status != AppointmentStatusCompleted && a.Status != AppointmentStatusCancelled
}

// CanTransitionTo reports whether a status change is a valid forward move in
// the lifecycle. Transitions are one-directional: scheduled -> confirmed ->
// in_progress -> completed, and any pre-terminal state -> cancelled/no_show.
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	if a.IsTerminal() {
		return false
	}
	switch next {
	case AppointmentStatusCancelled:
		return a.IsCancellable()
	case AppointmentStatusNoShow:
		return true
	case AppointmentStatusConfirmed:
		return a.Status == AppointmentStatusScheduled
	case AppointmentStatusInProgress:
		return a.Status == AppointmentStatusConfirmed
	case AppointmentStatusCompleted:
		return a.Status == AppointmentStatusInProgress
	}
	return false
}

// ValidAppointmentType reports whether t is one of the known visit types.
func ValidAppointmentType(t AppointmentType) bool {
	switch t {
	case AppointmentTypeConsultation, AppointmentTypeFollowUp, AppointmentTypeEmergency,
		AppointmentTypeSurgery, AppointmentTypeCheckup:
		return true
	}
	return false
}

// ValidAppointmentStatus reports whether s is one of the known statuses.
func ValidAppointmentStatus(s AppointmentStatus) bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusConfirmed, AppointmentStatusInProgress,
		AppointmentStatusCompleted, AppointmentStatusCancelled, AppointmentStatusNoShow:
		return true
	}
	return false
}
