package dto

import (
	"github.com/google/uuid"
)

// Request DTOs

type WeeklyAvailabilityEntry struct {
	Day         string `json:"day" validate:"required,oneof=sunday monday tuesday wednesday thursday friday saturday"`
	StartTime   string `json:"start_time" validate:"required,hhmm"`
	EndTime     string `json:"end_time" validate:"required,hhmm"`
	IsAvailable bool   `json:"is_available"`
}

type SetWeeklyAvailabilityRequest struct {
	Entries []WeeklyAvailabilityEntry `json:"entries" validate:"required,dive"`
}

// Response DTOs

type WeeklyAvailabilityResponse struct {
	Day         string `json:"day"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsAvailable bool   `json:"is_available"`
}

type WeeklyAvailabilityListResponse struct {
	DoctorID uuid.UUID                    `json:"doctor_id"`
	Entries  []WeeklyAvailabilityResponse `json:"entries"`
}

type SlotResponse struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// AvailableSlotsResponse is the read-path availability answer: the resolved
// working window plus the free and already-booked slots for one date.
type AvailableSlotsResponse struct {
	DoctorID       uuid.UUID      `json:"doctor_id"`
	Date           string         `json:"date"`
	Day            string         `json:"day"`
	IsAvailable    bool           `json:"is_available"`
	WindowStart    string         `json:"window_start,omitempty"`
	WindowEnd      string         `json:"window_end,omitempty"`
	SlotDuration   int            `json:"slot_duration"`
	AvailableSlots []SlotResponse `json:"available_slots"`
	BookedSlots    []SlotResponse `json:"booked_slots"`
}
