package dto

import (
	"github.com/google/uuid"
)

// Request DTOs

type CreateDoctorRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	FullName        string `json:"full_name" validate:"required,min=2"`
	LicenseNumber   string `json:"license_number" validate:"required"`
	Specialization  string `json:"specialization" validate:"required"`
	Department      string `json:"department" validate:"required"`
	Biography       string `json:"biography" validate:"omitempty"`
	ConsultationFee string `json:"consultation_fee" validate:"omitempty"`
}

type UpdateDoctorRequest struct {
	Email           string `json:"email" validate:"omitempty,email"`
	Password        string `json:"password" validate:"omitempty,min=6"`
	FullName        string `json:"full_name" validate:"omitempty,min=2"`
	LicenseNumber   string `json:"license_number" validate:"omitempty"`
	Specialization  string `json:"specialization" validate:"omitempty"`
	Department      string `json:"department" validate:"omitempty"`
	Biography       string `json:"biography" validate:"omitempty"`
	ConsultationFee string `json:"consultation_fee" validate:"omitempty"`
	IsActive        *bool  `json:"is_active" validate:"omitempty"`
}

// Response DTOs

type DoctorProfileResponse struct {
	UserID          uuid.UUID `json:"user_id"`
	LicenseNumber   string    `json:"license_number"`
	Specialization  string    `json:"specialization"`
	Department      string    `json:"department"`
	Biography       string    `json:"biography,omitempty"`
	ConsultationFee string    `json:"consultation_fee"`
}

type DoctorResponse struct {
	ID              uuid.UUID                    `json:"id"`
	Email           string                       `json:"email"`
	FullName        string                       `json:"full_name"`
	LicenseNumber   string                       `json:"license_number"`
	Specialization  string                       `json:"specialization"`
	Department      string                       `json:"department"`
	Biography       string                       `json:"biography,omitempty"`
	ConsultationFee string                       `json:"consultation_fee"`
	IsActive        bool                         `json:"is_active"`
	Availability    []WeeklyAvailabilityResponse `json:"availability,omitempty"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
