package repository

import (
	"time"

	"clinic-booking/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error)
	FindByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error)
	FindAll(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error)
	// FindDoctorOverlaps returns active (non-cancelled, non-no-show)
	// appointments of the doctor on date whose [start,end) interval
	// intersects the given one, skipping excludeID when non-nil.
	FindDoctorOverlaps(db *gorm.DB, doctorID uuid.UUID, date time.Time, start, end string, excludeID *uuid.UUID) ([]entity.Appointment, error)
	// FindPatientOverlaps is the patient-side counterpart of FindDoctorOverlaps.
	FindPatientOverlaps(db *gorm.DB, patientID uuid.UUID, date time.Time, start, end string, excludeID *uuid.UUID) ([]entity.Appointment, error)
	Update(db *gorm.DB, appointment *entity.Appointment) error
}
