package usecase

import (
	"context"
	"errors"

	"clinic-booking/internal/converter"
	"clinic-booking/internal/delivery/dto"
	"clinic-booking/internal/domain/entity"
	"clinic-booking/internal/domain/repository"
	"clinic-booking/internal/scheduling"
	"clinic-booking/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvalidWeekday = errors.New("invalid weekday name")
	ErrDuplicateDay   = errors.New("duplicate weekday in availability set")
)

type AvailabilityUsecase interface {
	SetWeeklyAvailability(ctx context.Context, doctorID uuid.UUID, req *dto.SetWeeklyAvailabilityRequest) (*dto.WeeklyAvailabilityListResponse, error)
	GetWeeklyAvailability(ctx context.Context, doctorID uuid.UUID) (*dto.WeeklyAvailabilityListResponse, error)
	GetAvailableSlots(ctx context.Context, doctorID uuid.UUID, date string, durationMinutes int) (*dto.AvailableSlotsResponse, error)
}

type availabilityUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	clock             scheduling.Clock
	availabilityRepo  repository.AvailabilityRepository
	appointmentRepo   repository.AppointmentRepository
	doctorProfileRepo repository.DoctorProfileRepository
	auditService      service.AuditService
}

func NewAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	clock scheduling.Clock,
	availabilityRepo repository.AvailabilityRepository,
	appointmentRepo repository.AppointmentRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	auditService service.AuditService,
) AvailabilityUsecase {
	return &availabilityUsecase{
		db:                db,
		log:               log,
		clock:             clock,
		availabilityRepo:  availabilityRepo,
		appointmentRepo:   appointmentRepo,
		doctorProfileRepo: doctorProfileRepo,
		auditService:      auditService,
	}
}

// SetWeeklyAvailability replaces the doctor's whole recurring schedule. Only
// the doctor themselves or an admin may call it; the handler enforces which
// doctor ID the actor may target.
func (u *availabilityUsecase) SetWeeklyAvailability(ctx context.Context, doctorID uuid.UUID, req *dto.SetWeeklyAvailabilityRequest) (*dto.WeeklyAvailabilityListResponse, error) {
	actorID, _, ok := actorFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	seen := make(map[string]bool, len(req.Entries))
	entries := make([]entity.WeeklyAvailability, 0, len(req.Entries))
	for _, e := range req.Entries {
		if !entity.ValidWeekday(e.Day) {
			return nil, ErrInvalidWeekday
		}
		if seen[e.Day] {
			return nil, ErrDuplicateDay
		}
		seen[e.Day] = true
		if err := scheduling.ValidateInterval(e.StartTime, e.EndTime); err != nil {
			return nil, err
		}
		entries = append(entries, entity.WeeklyAvailability{
			DoctorID:    doctorID,
			Day:         e.Day,
			StartTime:   e.StartTime,
			EndTime:     e.EndTime,
			IsAvailable: e.IsAvailable,
		})
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.doctorProfileRepo.FindByUserID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	if err := u.availabilityRepo.ReplaceForDoctor(tx, doctorID, entries); err != nil {
		u.log.Warnf("Failed to replace availability for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionAvailabilityUpdate, "weekly_availability", doctorID.String(),
		converter.AvailabilityToResponses(doctor.Availability), converter.AvailabilityToResponses(entries)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Weekly availability replaced: doctor=%s, entries=%d", doctorID, len(entries))
	return &dto.WeeklyAvailabilityListResponse{
		DoctorID: doctorID,
		Entries:  converter.AvailabilityToResponses(entries),
	}, nil
}

func (u *availabilityUsecase) GetWeeklyAvailability(ctx context.Context, doctorID uuid.UUID) (*dto.WeeklyAvailabilityListResponse, error) {
	db := u.db.WithContext(ctx)

	doctor, err := u.doctorProfileRepo.FindByUserID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	entries, err := u.availabilityRepo.FindByDoctorID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find availability for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.WeeklyAvailabilityListResponse{
		DoctorID: doctorID,
		Entries:  converter.AvailabilityToResponses(entries),
	}, nil
}

// GetAvailableSlots answers "which slots can still be booked with this
// doctor on this date". An unavailable day is not an error: the response
// carries is_available=false and empty slot lists.
func (u *availabilityUsecase) GetAvailableSlots(ctx context.Context, doctorID uuid.UUID, date string, durationMinutes int) (*dto.AvailableSlotsResponse, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	if durationMinutes <= 0 {
		durationMinutes = scheduling.DefaultSlotDuration
	}

	db := u.db.WithContext(ctx)

	doctor, err := u.doctorProfileRepo.FindByUserID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	if !doctor.IsActive() {
		return nil, ErrDoctorInactive
	}

	response := &dto.AvailableSlotsResponse{
		DoctorID:       doctorID,
		Date:           date,
		Day:            entity.WeekdayName(day.Weekday()),
		SlotDuration:   durationMinutes,
		AvailableSlots: []dto.SlotResponse{},
		BookedSlots:    []dto.SlotResponse{},
	}

	window, ok := scheduling.ResolveAvailability(doctor.Availability, day)
	if !ok {
		return response, nil
	}
	response.IsAvailable = true
	response.WindowStart = window.StartTime
	response.WindowEnd = window.EndTime

	appointments, err := u.appointmentRepo.FindByDoctorAndDate(db, doctorID, day)
	if err != nil {
		u.log.Warnf("Failed to find appointments for doctor %s on %s: %+v", doctorID, date, err)
		return nil, err
	}

	booked := make([]scheduling.Slot, 0, len(appointments))
	for _, a := range appointments {
		if a.IsTerminal() && a.Status != entity.AppointmentStatusCompleted {
			// Cancelled and no-show appointments release their slot.
			continue
		}
		booked = append(booked, scheduling.Slot{StartTime: a.StartTime, EndTime: a.EndTime})
	}

	free, err := scheduling.GenerateFreeSlots(window, durationMinutes, booked)
	if err != nil {
		return nil, err
	}

	response.AvailableSlots = converter.SlotsToResponses(free)
	response.BookedSlots = converter.SlotsToResponses(booked)
	return response, nil
}
