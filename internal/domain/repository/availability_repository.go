package repository

import (
	"clinic-booking/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AvailabilityRepository interface {
	// ReplaceForDoctor swaps out a doctor's full weekly availability set.
	ReplaceForDoctor(db *gorm.DB, doctorID uuid.UUID, entries []entity.WeeklyAvailability) error
	// FindByDoctorID returns the doctor's entries in stored list order.
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.WeeklyAvailability, error)
}
