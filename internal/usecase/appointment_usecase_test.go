package usecase

import (
	"context"
	"testing"
	"time"

	"clinic-booking/internal/delivery/dto"
	"clinic-booking/internal/delivery/http/middleware"
	"clinic-booking/internal/domain/entity"
	"clinic-booking/internal/scheduling"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// The fakes below hold appointments and profiles in memory and ignore the
// *gorm.DB handle they receive. The usecase still needs a real handle for
// its transaction lifecycle, so fixtures open an in-memory sqlite database
// purely to back Begin/Commit.

type fakeAppointmentRepo struct {
	appointments map[uuid.UUID]*entity.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: map[uuid.UUID]*entity.Appointment{}}
}

func (r *fakeAppointmentRepo) seed(a *entity.Appointment) uuid.UUID {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.appointments[a.ID] = a
	return a.ID
}

func (r *fakeAppointmentRepo) Create(db *gorm.DB, a *entity.Appointment) error {
	r.seed(a)
	return nil
}

func (r *fakeAppointmentRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	a, ok := r.appointments[id]
	if !ok {
		return nil, nil
	}
	found := *a
	return &found, nil
}

func (r *fakeAppointmentRepo) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	var out []entity.Appointment
	for _, a := range r.appointments {
		if a.PatientID == patientID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error) {
	var out []entity.Appointment
	for _, a := range r.appointments {
		if a.DoctorID == doctorID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) FindByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error) {
	var out []entity.Appointment
	for _, a := range r.appointments {
		if a.DoctorID == doctorID && sameDate(a.AppointmentDate, date) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) FindAll(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	var out []entity.Appointment
	for _, a := range r.appointments {
		out = append(out, *a)
	}
	return out, nil
}

func (r *fakeAppointmentRepo) FindDoctorOverlaps(db *gorm.DB, doctorID uuid.UUID, date time.Time, start, end string, excludeID *uuid.UUID) ([]entity.Appointment, error) {
	var out []entity.Appointment
	for _, a := range r.appointments {
		if a.DoctorID == doctorID && occupiesSlot(a, date, start, end, excludeID) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) FindPatientOverlaps(db *gorm.DB, patientID uuid.UUID, date time.Time, start, end string, excludeID *uuid.UUID) ([]entity.Appointment, error) {
	var out []entity.Appointment
	for _, a := range r.appointments {
		if a.PatientID == patientID && occupiesSlot(a, date, start, end, excludeID) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) Update(db *gorm.DB, a *entity.Appointment) error {
	if _, ok := r.appointments[a.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	updated := *a
	r.appointments[a.ID] = &updated
	return nil
}

func sameDate(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

func occupiesSlot(a *entity.Appointment, date time.Time, start, end string, excludeID *uuid.UUID) bool {
	if excludeID != nil && a.ID == *excludeID {
		return false
	}
	if a.Status == entity.AppointmentStatusCancelled || a.Status == entity.AppointmentStatusNoShow {
		return false
	}
	if !sameDate(a.AppointmentDate, date) {
		return false
	}
	return start < a.EndTime && a.StartTime < end
}

type fakeDoctorProfileRepo struct {
	profiles map[uuid.UUID]*entity.DoctorProfile
}

func (r *fakeDoctorProfileRepo) Create(db *gorm.DB, p *entity.DoctorProfile) error {
	r.profiles[p.UserID] = p
	return nil
}

func (r *fakeDoctorProfileRepo) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, nil
	}
	return p, nil
}

func (r *fakeDoctorProfileRepo) FindAllActive(db *gorm.DB) ([]entity.DoctorProfile, error) {
	var out []entity.DoctorProfile
	for _, p := range r.profiles {
		if p.IsActive() {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeDoctorProfileRepo) Update(db *gorm.DB, p *entity.DoctorProfile) error {
	r.profiles[p.UserID] = p
	return nil
}

type fakePatientProfileRepo struct {
	profiles map[uuid.UUID]*entity.PatientProfile
}

func (r *fakePatientProfileRepo) Create(db *gorm.DB, p *entity.PatientProfile) error {
	r.profiles[p.UserID] = p
	return nil
}

func (r *fakePatientProfileRepo) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.PatientProfile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, nil
	}
	return p, nil
}

func (r *fakePatientProfileRepo) FindAll(db *gorm.DB) ([]entity.PatientProfile, error) {
	var out []entity.PatientProfile
	for _, p := range r.profiles {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakePatientProfileRepo) Update(db *gorm.DB, p *entity.PatientProfile) error {
	r.profiles[p.UserID] = p
	return nil
}

type fakeAuditService struct{}

func (s *fakeAuditService) LogCreate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, newValue interface{}) error {
	return nil
}

func (s *fakeAuditService) LogUpdate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	return nil
}

func (s *fakeAuditService) LogDelete(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, oldValue interface{}) error {
	return nil
}

type bookingFixture struct {
	uc        AppointmentUsecase
	appts     *fakeAppointmentRepo
	doctorID  uuid.UUID
	patientID uuid.UUID
}

// newBookingFixture wires the appointment usecase against in-memory fakes
// and a doctor who works Mondays 10:00-18:00.
func newBookingFixture(t *testing.T, clock scheduling.Clock) *bookingFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	doctorID := uuid.New()
	patientID := uuid.New()

	appts := newFakeAppointmentRepo()
	doctors := &fakeDoctorProfileRepo{profiles: map[uuid.UUID]*entity.DoctorProfile{
		doctorID: {
			UserID:         doctorID,
			LicenseNumber:  "LIC-0001",
			Specialization: "Cardiology",
			Department:     "cardiology",
			User:           entity.User{ID: doctorID, IsActive: true},
			Availability: []entity.WeeklyAvailability{
				{DoctorID: doctorID, Day: "monday", StartTime: "10:00", EndTime: "18:00", IsAvailable: true},
			},
		},
	}}
	patients := &fakePatientProfileRepo{profiles: map[uuid.UUID]*entity.PatientProfile{
		patientID: {UserID: patientID, NationalID: "3201011234567890", Gender: entity.GenderFemale},
	}}

	uc := NewAppointmentUsecase(db, logrus.New(), clock, appts, doctors, patients, &fakeAuditService{})
	return &bookingFixture{uc: uc, appts: appts, doctorID: doctorID, patientID: patientID}
}

func authedContext(userID uuid.UUID, roleID int) context.Context {
	ctx := context.WithValue(context.Background(), middleware.UserIDKey, userID)
	return context.WithValue(ctx, middleware.RoleIDKey, roleID)
}

func zonedClock(hour, min, offsetHours int) scheduling.Clock {
	zone := time.FixedZone("test", offsetHours*3600)
	// 2026-03-02 is a Monday.
	return scheduling.FixedClock(time.Date(2026, 3, 2, hour, min, 0, 0, zone))
}

func TestCheckBookableSameDayWestOfUTC(t *testing.T) {
	// At 09:00 local in UTC-5 the request date, parsed in UTC, is the same
	// calendar day. A same-day afternoon slot must not be rejected as past.
	fx := newBookingFixture(t, zonedClock(9, 0, -5))
	ctx := authedContext(fx.patientID, entity.RoleIDPatient)

	err := fx.uc.CheckBookable(ctx, &dto.CheckBookableRequest{
		DoctorID:        fx.doctorID,
		AppointmentDate: "2026-03-02",
		StartTime:       "14:00",
		EndTime:         "14:30",
	})
	if err != nil {
		t.Fatalf("expected same-day afternoon slot to be bookable, got %v", err)
	}
}

func TestCheckBookableSameDayEastOfUTC(t *testing.T) {
	// At 15:00 local in UTC+7 the request date must still count as today so
	// an elapsed morning slot is rejected as past time.
	fx := newBookingFixture(t, zonedClock(15, 0, 7))
	ctx := authedContext(fx.patientID, entity.RoleIDPatient)

	err := fx.uc.CheckBookable(ctx, &dto.CheckBookableRequest{
		DoctorID:        fx.doctorID,
		AppointmentDate: "2026-03-02",
		StartTime:       "10:00",
		EndTime:         "10:30",
	})
	if err != scheduling.ErrPastTime {
		t.Fatalf("expected ErrPastTime for an elapsed same-day slot, got %v", err)
	}
}

func TestCheckBookablePastDateBeforeConflict(t *testing.T) {
	fx := newBookingFixture(t, zonedClock(9, 0, 0))
	ctx := authedContext(fx.patientID, entity.RoleIDPatient)

	// A conflicting appointment already sits on the past slot; the past-date
	// error must still win.
	fx.appts.seed(&entity.Appointment{
		PatientID:       fx.patientID,
		DoctorID:        fx.doctorID,
		AppointmentDate: time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		EndTime:         "10:30",
		Status:          entity.AppointmentStatusScheduled,
	})

	err := fx.uc.CheckBookable(ctx, &dto.CheckBookableRequest{
		DoctorID:        fx.doctorID,
		AppointmentDate: "2026-02-23",
		StartTime:       "10:00",
		EndTime:         "10:30",
	})
	if err != scheduling.ErrPastDate {
		t.Fatalf("expected ErrPastDate, got %v", err)
	}
}

func TestCheckBookableExcludesOwnAppointment(t *testing.T) {
	fx := newBookingFixture(t, zonedClock(9, 0, 0))
	ctx := authedContext(fx.patientID, entity.RoleIDPatient)

	existingID := fx.appts.seed(&entity.Appointment{
		PatientID:       uuid.New(),
		DoctorID:        fx.doctorID,
		AppointmentDate: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		EndTime:         "10:30",
		Status:          entity.AppointmentStatusScheduled,
	})

	req := &dto.CheckBookableRequest{
		DoctorID:        fx.doctorID,
		AppointmentDate: "2026-03-09",
		StartTime:       "10:00",
		EndTime:         "10:30",
	}
	if err := fx.uc.CheckBookable(ctx, req); err != scheduling.ErrDoctorConflict {
		t.Fatalf("expected ErrDoctorConflict without exclusion, got %v", err)
	}

	req.ExcludeID = &existingID
	if err := fx.uc.CheckBookable(ctx, req); err != nil {
		t.Fatalf("expected slot to be free when its own appointment is excluded, got %v", err)
	}
}

func TestRescheduleResetsStatusAndFreesOldSlot(t *testing.T) {
	fx := newBookingFixture(t, zonedClock(9, 0, 0))
	ctx := authedContext(fx.patientID, entity.RoleIDPatient)

	id := fx.appts.seed(&entity.Appointment{
		PatientID:       fx.patientID,
		DoctorID:        fx.doctorID,
		AppointmentDate: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		EndTime:         "10:30",
		Duration:        30,
		Status:          entity.AppointmentStatusConfirmed,
	})

	resp, err := fx.uc.RescheduleAppointment(ctx, id, &dto.RescheduleAppointmentRequest{
		AppointmentDate: "2026-03-16",
		StartTime:       "11:00",
		EndTime:         "11:45",
	})
	if err != nil {
		t.Fatalf("failed to reschedule: %v", err)
	}
	if resp.Status != string(entity.AppointmentStatusScheduled) {
		t.Fatalf("expected status to reset to scheduled, got %s", resp.Status)
	}

	stored := fx.appts.appointments[id]
	if stored.Status != entity.AppointmentStatusScheduled {
		t.Fatalf("expected stored status scheduled, got %s", stored.Status)
	}
	if stored.Duration != 45 {
		t.Fatalf("expected duration recomputed to 45, got %d", stored.Duration)
	}
	if got := stored.AppointmentDate.Format("2006-01-02"); got != "2026-03-16" {
		t.Fatalf("expected date 2026-03-16, got %s", got)
	}

	// The vacated slot is bookable again for another patient.
	other := authedContext(uuid.New(), entity.RoleIDPatient)
	err = fx.uc.CheckBookable(other, &dto.CheckBookableRequest{
		DoctorID:        fx.doctorID,
		AppointmentDate: "2026-03-09",
		StartTime:       "10:00",
		EndTime:         "10:30",
	})
	if err != nil {
		t.Fatalf("expected old slot to be free after reschedule, got %v", err)
	}
}

func TestRescheduleTerminalAppointment(t *testing.T) {
	tests := []struct {
		name   string
		status entity.AppointmentStatus
	}{
		{name: "completed", status: entity.AppointmentStatusCompleted},
		{name: "cancelled", status: entity.AppointmentStatusCancelled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newBookingFixture(t, zonedClock(9, 0, 0))
			ctx := authedContext(fx.patientID, entity.RoleIDPatient)

			id := fx.appts.seed(&entity.Appointment{
				PatientID:       fx.patientID,
				DoctorID:        fx.doctorID,
				AppointmentDate: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
				StartTime:       "10:00",
				EndTime:         "10:30",
				Status:          tt.status,
			})

			_, err := fx.uc.RescheduleAppointment(ctx, id, &dto.RescheduleAppointmentRequest{
				AppointmentDate: "2026-03-16",
				StartTime:       "11:00",
				EndTime:         "11:30",
			})
			if err != ErrInvalidTransition {
				t.Fatalf("expected ErrInvalidTransition, got %v", err)
			}
		})
	}
}

func TestCancelCompletedAppointment(t *testing.T) {
	fx := newBookingFixture(t, zonedClock(9, 0, 0))
	ctx := authedContext(fx.patientID, entity.RoleIDPatient)

	id := fx.appts.seed(&entity.Appointment{
		PatientID:       fx.patientID,
		DoctorID:        fx.doctorID,
		AppointmentDate: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		EndTime:         "10:30",
		Status:          entity.AppointmentStatusCompleted,
	})

	_, err := fx.uc.CancelAppointment(ctx, id, &dto.CancelAppointmentRequest{CancelReason: "changed plans"})
	if err != ErrInvalidTransition {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}
