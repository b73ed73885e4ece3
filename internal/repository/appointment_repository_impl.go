package repository

import (
	"errors"
	"time"

	"clinic-booking/internal/domain/entity"
	domainRepo "clinic-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Doctor.User").Preload("Patient.User").Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Doctor.User").
		Where("patient_id = ?", patientID).
		Order("appointment_date DESC, start_time DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Patient.User").
		Where("doctor_id = ?", doctorID).
		Order("appointment_date DESC, start_time DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Patient.User").
		Where("doctor_id = ? AND appointment_date = ?", doctorID, date.Format("2006-01-02")).
		Order("start_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindAll(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	query := db.Model(&entity.Appointment{}).
		Joins("JOIN doctor_profiles ON doctor_profiles.user_id = appointments.doctor_id").
		Joins("JOIN users ON users.id = doctor_profiles.user_id")

	if filter != nil {
		if filter.StartAt != "" {
			query = query.Where("appointments.appointment_date >= ?", filter.StartAt)
		}
		if filter.EndAt != "" {
			query = query.Where("appointments.appointment_date <= ?", filter.EndAt)
		}
		if filter.Status != "" {
			query = query.Where("appointments.status = ?", filter.Status)
		}
		if filter.Department != "" {
			query = query.Where("appointments.department ILIKE ?", "%"+filter.Department+"%")
		}
		if filter.DoctorName != "" {
			query = query.Where("users.full_name ILIKE ?", "%"+filter.DoctorName+"%")
		}
	}

	var appointments []entity.Appointment
	err := query.
		Preload("Doctor.User").Preload("Patient.User").
		Order("appointment_date ASC, start_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// activeStatuses are the statuses that occupy a slot. Cancelled and no-show
// appointments free their interval.
var activeStatuses = []entity.AppointmentStatus{
	entity.AppointmentStatusScheduled,
	entity.AppointmentStatusConfirmed,
	entity.AppointmentStatusInProgress,
	entity.AppointmentStatusCompleted,
}

func (r *appointmentRepository) FindDoctorOverlaps(db *gorm.DB, doctorID uuid.UUID, date time.Time, start, end string, excludeID *uuid.UUID) ([]entity.Appointment, error) {
	return r.findOverlaps(db, "doctor_id", doctorID, date, start, end, excludeID)
}

func (r *appointmentRepository) FindPatientOverlaps(db *gorm.DB, patientID uuid.UUID, date time.Time, start, end string, excludeID *uuid.UUID) ([]entity.Appointment, error) {
	return r.findOverlaps(db, "patient_id", patientID, date, start, end, excludeID)
}

func (r *appointmentRepository) findOverlaps(db *gorm.DB, ownerColumn string, ownerID uuid.UUID, date time.Time, start, end string, excludeID *uuid.UUID) ([]entity.Appointment, error) {
	// Half-open interval overlap: start < existing.end AND existing.start < end.
	query := db.
		Where(ownerColumn+" = ?", ownerID).
		Where("appointment_date = ?", date.Format("2006-01-02")).
		Where("status IN ?", activeStatuses).
		Where("start_time < ? AND end_time > ?", end, start)

	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}

	var appointments []entity.Appointment
	if err := query.Order("start_time ASC").Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) Update(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Omit("Doctor", "Patient").Save(appointment).Error
}
