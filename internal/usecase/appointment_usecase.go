package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-booking/internal/converter"
	"clinic-booking/internal/delivery/dto"
	"clinic-booking/internal/delivery/http/middleware"
	"clinic-booking/internal/domain/entity"
	"clinic-booking/internal/domain/repository"
	"clinic-booking/internal/scheduling"
	"clinic-booking/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrPatientNotFound     = errors.New("patient not found")
	ErrDoctorInactive      = errors.New("doctor is not accepting appointments")
	ErrInvalidDate         = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidType         = errors.New("invalid appointment type")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrNotPermitted        = errors.New("you are not allowed to perform this action")
	ErrUnauthenticated     = errors.New("user not found in context")
)

type AppointmentUsecase interface {
	CheckBookable(ctx context.Context, req *dto.CheckBookableRequest) error
	CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetAppointment(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	GetMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
	GetDoctorAppointments(ctx context.Context, doctorID uuid.UUID) (*dto.AppointmentListResponse, error)
	GetAllAppointments(ctx context.Context, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error)
	UpdateAppointment(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	UpdateAppointmentStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error)
	RescheduleAppointment(ctx context.Context, id uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error)
	CancelAppointment(ctx context.Context, id uuid.UUID, req *dto.CancelAppointmentRequest) (*dto.AppointmentResponse, error)
}

type appointmentUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	clock              scheduling.Clock
	appointmentRepo    repository.AppointmentRepository
	doctorProfileRepo  repository.DoctorProfileRepository
	patientProfileRepo repository.PatientProfileRepository
	auditService       service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	clock scheduling.Clock,
	appointmentRepo repository.AppointmentRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	patientProfileRepo repository.PatientProfileRepository,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:                 db,
		log:                log,
		clock:              clock,
		appointmentRepo:    appointmentRepo,
		doctorProfileRepo:  doctorProfileRepo,
		patientProfileRepo: patientProfileRepo,
		auditService:       auditService,
	}
}

// parseDate parses a YYYY-MM-DD calendar date.
func parseDate(s string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return date, nil
}

// checkBookable runs the ordered booking preconditions against the given
// interval. The order is load-bearing for error reporting: callers get the
// first failing check, so date/time validity is decided before conflict
// scanning and a past-date request reports the past-date error even when it
// would also conflict.
func (u *appointmentUsecase) checkBookable(db *gorm.DB, doctor *entity.DoctorProfile, patientID uuid.UUID, date time.Time, start, end string, excludeID *uuid.UUID) error {
	if !doctor.IsActive() {
		return ErrDoctorInactive
	}

	window, ok := scheduling.ResolveAvailability(doctor.Availability, date)
	if !ok {
		return scheduling.ErrUnavailableDay
	}
	if !window.Contains(start, end) {
		return scheduling.ErrOutsideHours
	}

	// Calendar dates are compared as YYYY-MM-DD strings: the request date is
	// parsed in UTC while the clock runs in the process-local zone, so
	// comparing instants would misclassify same-day bookings in any non-UTC
	// process.
	now := u.clock.Now()
	today := now.Format("2006-01-02")
	requested := date.Format("2006-01-02")
	if requested < today {
		return scheduling.ErrPastDate
	}
	if requested == today && start <= scheduling.FormatClock(now) {
		return scheduling.ErrPastTime
	}

	patientOverlaps, err := u.appointmentRepo.FindPatientOverlaps(db, patientID, date, start, end, excludeID)
	if err != nil {
		return err
	}
	if len(patientOverlaps) > 0 {
		return scheduling.ErrPatientConflict
	}

	doctorOverlaps, err := u.appointmentRepo.FindDoctorOverlaps(db, doctor.UserID, date, start, end, excludeID)
	if err != nil {
		return err
	}
	if len(doctorOverlaps) > 0 {
		return scheduling.ErrDoctorConflict
	}

	return nil
}

func (u *appointmentUsecase) CheckBookable(ctx context.Context, req *dto.CheckBookableRequest) error {
	actorID, roleID, ok := actorFromContext(ctx)
	if !ok {
		return ErrUnauthenticated
	}

	if err := scheduling.ValidateInterval(req.StartTime, req.EndTime); err != nil {
		return err
	}
	date, err := parseDate(req.AppointmentDate)
	if err != nil {
		return err
	}

	patientID := req.PatientID
	if roleID == entity.RoleIDPatient {
		patientID = actorID
	}
	if patientID == uuid.Nil {
		return ErrPatientNotFound
	}

	db := u.db.WithContext(ctx)
	doctor, err := u.doctorProfileRepo.FindByUserID(db, req.DoctorID)
	if err != nil {
		return err
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}

	return u.checkBookable(db, doctor, patientID, date, req.StartTime, req.EndTime, req.ExcludeID)
}

func (u *appointmentUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	actorID, roleID, ok := actorFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	if err := scheduling.ValidateInterval(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	date, err := parseDate(req.AppointmentDate)
	if err != nil {
		return nil, err
	}

	appointmentType := entity.AppointmentType(req.Type)
	if req.Type == "" {
		appointmentType = entity.AppointmentTypeConsultation
	}
	if !entity.ValidAppointmentType(appointmentType) {
		return nil, ErrInvalidType
	}

	// Patients always book for themselves; doctors and admins book on
	// behalf of an explicit patient.
	patientID := req.PatientID
	if roleID == entity.RoleIDPatient {
		patientID = actorID
	}
	if patientID == uuid.Nil {
		return nil, ErrPatientNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientProfileRepo.FindByUserID(tx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	doctor, err := u.doctorProfileRepo.FindByUserID(tx, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	if err := u.checkBookable(tx, doctor, patientID, date, req.StartTime, req.EndTime, nil); err != nil {
		return nil, err
	}

	startMin, _ := scheduling.ToMinutes(req.StartTime)
	endMin, _ := scheduling.ToMinutes(req.EndTime)

	department := req.Department
	if department == "" {
		department = doctor.Department
	}

	appointment := &entity.Appointment{
		PatientID:       patientID,
		DoctorID:        req.DoctorID,
		AppointmentDate: date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Duration:        endMin - startMin,
		Type:            appointmentType,
		Status:          entity.AppointmentStatusScheduled,
		Department:      department,
		Reason:          req.Reason,
		Notes:           req.Notes,
		CreatedBy:       actorID,
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		// The partial unique index on (doctor, date, start_time) backstops
		// the race between two concurrent checks for the same slot.
		if isDuplicateKeyError(err, "appointments_doctor_slot") {
			return nil, scheduling.ErrDoctorConflict
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &actorID, entity.AuditActionAppointmentCreate, "appointment", appointment.ID.String(), converter.AppointmentToResponse(appointment)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Appointment created: id=%s, doctor=%s, patient=%s, date=%s %s-%s",
		appointment.ID, appointment.DoctorID, appointment.PatientID,
		req.AppointmentDate, req.StartTime, req.EndTime)

	full, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointment.ID)
	if err != nil || full == nil {
		return converter.AppointmentToResponse(appointment), nil
	}
	return converter.AppointmentToResponse(full), nil
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	actorID, roleID, ok := actorFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if !canView(appointment, actorID, roleID) {
		return nil, ErrNotPermitted
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) GetMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	actorID, _, ok := actorFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	appointments, err := u.appointmentRepo.FindByPatientID(u.db.WithContext(ctx), actorID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for patient %s: %+v", actorID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) GetDoctorAppointments(ctx context.Context, doctorID uuid.UUID) (*dto.AppointmentListResponse, error) {
	actorID, roleID, ok := actorFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	if roleID == entity.RoleIDDoctor && actorID != doctorID {
		return nil, ErrNotPermitted
	}

	appointments, err := u.appointmentRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) GetAllAppointments(ctx context.Context, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) UpdateAppointment(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	actorID, roleID, ok := actorFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	switch {
	case roleID == entity.RoleIDAdmin:
	case roleID == entity.RoleIDDoctor:
		if appointment.DoctorID != actorID {
			return nil, ErrNotPermitted
		}
	case roleID == entity.RoleIDPatient:
		if appointment.PatientID != actorID {
			return nil, ErrNotPermitted
		}
		// Patients may only touch reason and notes, and only before the
		// visit starts.
		if req.Type != "" || req.Department != "" {
			return nil, ErrNotPermitted
		}
		if !appointment.IsCancellable() {
			return nil, ErrInvalidTransition
		}
	default:
		return nil, ErrNotPermitted
	}

	old := converter.AppointmentToResponse(appointment)

	if req.Type != "" {
		appointment.Type = entity.AppointmentType(req.Type)
	}
	if req.Department != "" {
		appointment.Department = req.Department
	}
	if req.Reason != "" {
		appointment.Reason = req.Reason
	}
	if req.Notes != "" {
		appointment.Notes = req.Notes
	}

	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		u.log.Warnf("Failed to update appointment %s: %+v", id, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionAppointmentUpdate, "appointment", id.String(), old, converter.AppointmentToResponse(appointment)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit transaction: %+v", err)
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) UpdateAppointmentStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
	actorID, roleID, ok := actorFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	next := entity.AppointmentStatus(req.Status)
	if !entity.ValidAppointmentStatus(next) {
		return nil, ErrInvalidTransition
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	switch {
	case roleID == entity.RoleIDAdmin:
	case roleID == entity.RoleIDDoctor:
		if appointment.DoctorID != actorID {
			return nil, ErrNotPermitted
		}
	case roleID == entity.RoleIDPatient:
		// The only status a patient may set is cancelled, on their own
		// appointment.
		if appointment.PatientID != actorID || next != entity.AppointmentStatusCancelled {
			return nil, ErrNotPermitted
		}
	default:
		return nil, ErrNotPermitted
	}

	if !appointment.CanTransitionTo(next) {
		return nil, ErrInvalidTransition
	}

	oldStatus := appointment.Status
	appointment.Status = next
	if next == entity.AppointmentStatusCancelled {
		appointment.CancelledBy = &actorID
	}

	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		u.log.Warnf("Failed to update appointment status %s: %+v", id, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionAppointmentStatus, "appointment", id.String(),
		entity.JSON{"status": string(oldStatus)}, entity.JSON{"status": string(next)}); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Appointment status changed: id=%s, %s -> %s", id, oldStatus, next)
	return converter.AppointmentToResponse(appointment), nil
}

// RescheduleAppointment moves an appointment to a new date/time after
// re-running the booking checks with the appointment itself excluded from
// conflict scanning. On success the status is forced back to scheduled,
// discarding any confirmed/in_progress progress.
func (u *appointmentUsecase) RescheduleAppointment(ctx context.Context, id uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error) {
	actorID, roleID, ok := actorFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	if err := scheduling.ValidateInterval(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	date, err := parseDate(req.AppointmentDate)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if !isOwnerOrAdmin(appointment, actorID, roleID) {
		return nil, ErrNotPermitted
	}
	if !appointment.IsReschedulable() {
		return nil, ErrInvalidTransition
	}

	doctor, err := u.doctorProfileRepo.FindByUserID(tx, appointment.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", appointment.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	if err := u.checkBookable(tx, doctor, appointment.PatientID, date, req.StartTime, req.EndTime, &appointment.ID); err != nil {
		return nil, err
	}

	startMin, _ := scheduling.ToMinutes(req.StartTime)
	endMin, _ := scheduling.ToMinutes(req.EndTime)

	old := entity.JSON{
		"appointment_date": appointment.AppointmentDate.Format("2006-01-02"),
		"start_time":       appointment.StartTime,
		"end_time":         appointment.EndTime,
		"status":           string(appointment.Status),
	}

	appointment.AppointmentDate = date
	appointment.StartTime = req.StartTime
	appointment.EndTime = req.EndTime
	appointment.Duration = endMin - startMin
	appointment.Status = entity.AppointmentStatusScheduled

	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		if isDuplicateKeyError(err, "appointments_doctor_slot") {
			return nil, scheduling.ErrDoctorConflict
		}
		u.log.Warnf("Failed to reschedule appointment %s: %+v", id, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionAppointmentReschedule, "appointment", id.String(), old, entity.JSON{
		"appointment_date": req.AppointmentDate,
		"start_time":       req.StartTime,
		"end_time":         req.EndTime,
		"status":           string(entity.AppointmentStatusScheduled),
	}); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Appointment rescheduled: id=%s, date=%s %s-%s", id, req.AppointmentDate, req.StartTime, req.EndTime)
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) CancelAppointment(ctx context.Context, id uuid.UUID, req *dto.CancelAppointmentRequest) (*dto.AppointmentResponse, error) {
	actorID, roleID, ok := actorFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if !isOwnerOrAdmin(appointment, actorID, roleID) {
		return nil, ErrNotPermitted
	}
	if !appointment.IsCancellable() {
		return nil, ErrInvalidTransition
	}

	oldStatus := appointment.Status
	appointment.Status = entity.AppointmentStatusCancelled
	appointment.CancelledBy = &actorID
	appointment.CancelReason = req.CancelReason

	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		u.log.Warnf("Failed to cancel appointment %s: %+v", id, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionAppointmentCancel, "appointment", id.String(),
		entity.JSON{"status": string(oldStatus)},
		entity.JSON{"status": string(entity.AppointmentStatusCancelled), "cancel_reason": req.CancelReason}); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Appointment cancelled: id=%s, by=%s", id, actorID)
	return converter.AppointmentToResponse(appointment), nil
}

// actorFromContext reads the authenticated user and role placed in the
// request context by the auth middleware.
func actorFromContext(ctx context.Context) (uuid.UUID, int, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return uuid.Nil, 0, false
	}
	roleID, ok := middleware.GetRoleIDFromContext(ctx)
	if !ok {
		return uuid.Nil, 0, false
	}
	return userID, roleID, true
}

func isOwnerOrAdmin(a *entity.Appointment, actorID uuid.UUID, roleID int) bool {
	switch roleID {
	case entity.RoleIDAdmin:
		return true
	case entity.RoleIDDoctor:
		return a.DoctorID == actorID
	case entity.RoleIDPatient:
		return a.PatientID == actorID
	}
	return false
}

func canView(a *entity.Appointment, actorID uuid.UUID, roleID int) bool {
	return isOwnerOrAdmin(a, actorID, roleID)
}
