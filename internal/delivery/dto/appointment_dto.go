package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	// PatientID is required when a doctor or admin books on behalf of a
	// patient; patients always book for themselves.
	PatientID       uuid.UUID `json:"patient_id" validate:"omitempty"`
	DoctorID        uuid.UUID `json:"doctor_id" validate:"required"`
	AppointmentDate string    `json:"appointment_date" validate:"required"` // Format: YYYY-MM-DD
	StartTime       string    `json:"start_time" validate:"required,hhmm"`
	EndTime         string    `json:"end_time" validate:"required,hhmm"`
	Type            string    `json:"type" validate:"omitempty,oneof=consultation follow_up emergency surgery checkup"`
	Department      string    `json:"department" validate:"omitempty"`
	Reason          string    `json:"reason" validate:"omitempty"`
	Notes           string    `json:"notes" validate:"omitempty"`
}

type UpdateAppointmentRequest struct {
	Type       string `json:"type" validate:"omitempty,oneof=consultation follow_up emergency surgery checkup"`
	Department string `json:"department" validate:"omitempty"`
	Reason     string `json:"reason" validate:"omitempty"`
	Notes      string `json:"notes" validate:"omitempty"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=scheduled confirmed in_progress completed cancelled no_show"`
}

type RescheduleAppointmentRequest struct {
	AppointmentDate string `json:"appointment_date" validate:"required"` // Format: YYYY-MM-DD
	StartTime       string `json:"start_time" validate:"required,hhmm"`
	EndTime         string `json:"end_time" validate:"required,hhmm"`
}

type CancelAppointmentRequest struct {
	CancelReason string `json:"cancel_reason" validate:"omitempty"`
}

type CheckBookableRequest struct {
	PatientID       uuid.UUID  `json:"patient_id" validate:"omitempty"`
	DoctorID        uuid.UUID  `json:"doctor_id" validate:"required"`
	AppointmentDate string     `json:"appointment_date" validate:"required"`
	StartTime       string     `json:"start_time" validate:"required,hhmm"`
	EndTime         string     `json:"end_time" validate:"required,hhmm"`
	ExcludeID       *uuid.UUID `json:"exclude_id" validate:"omitempty"`
}

// Response DTOs

type AppointmentResponse struct {
	ID              uuid.UUID  `json:"id"`
	PatientID       uuid.UUID  `json:"patient_id"`
	DoctorID        uuid.UUID  `json:"doctor_id"`
	PatientName     string     `json:"patient_name,omitempty"`
	DoctorName      string     `json:"doctor_name,omitempty"`
	AppointmentDate string     `json:"appointment_date"`
	StartTime       string     `json:"start_time"`
	EndTime         string     `json:"end_time"`
	Duration        int        `json:"duration"`
	Type            string     `json:"type"`
	Status          string     `json:"status"`
	Department      string     `json:"department,omitempty"`
	Reason          string     `json:"reason,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	CancelledBy     *uuid.UUID `json:"cancelled_by,omitempty"`
	CancelReason    string     `json:"cancel_reason,omitempty"`
	CreatedBy       uuid.UUID  `json:"created_by"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
