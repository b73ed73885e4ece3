package repository

import (
	"clinic-booking/internal/domain/entity"
	domainRepo "clinic-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type availabilityRepository struct{}

func NewAvailabilityRepository() domainRepo.AvailabilityRepository {
	return &availabilityRepository{}
}

// ReplaceForDoctor deletes the doctor's current entries and inserts the new
// set, preserving list order via the position column. Callers run this inside
// a transaction.
func (r *availabilityRepository) ReplaceForDoctor(db *gorm.DB, doctorID uuid.UUID, entries []entity.WeeklyAvailability) error {
	if err := db.Where("doctor_id = ?", doctorID).Delete(&entity.WeeklyAvailability{}).Error; err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	for i := range entries {
		entries[i].ID = 0
		entries[i].DoctorID = doctorID
		entries[i].Position = i
	}
	return db.Create(&entries).Error
}

func (r *availabilityRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.WeeklyAvailability, error) {
	var entries []entity.WeeklyAvailability
	err := db.Where("doctor_id = ?", doctorID).Order("position ASC").Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
