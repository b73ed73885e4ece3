package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"clinic-booking/internal/domain/entity"
	"clinic-booking/internal/domain/repository"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

var (
	ErrExportDoctorNotFound  = errors.New("doctor not found")
	ErrExportPatientNotFound = errors.New("patient not found")
	ErrExportGenerateFail    = errors.New("failed to generate export file")
	ErrExportInvalidDate     = errors.New("invalid date format, use YYYY-MM-DD")
)

// ExportService produces downloadable representations of appointment data:
// an Excel day sheet for a doctor and an iCalendar feed for a patient. Both
// return a filled buffer plus a suggested filename; the handler sets the
// response headers and streams the bytes.
type ExportService interface {
	ExportDoctorDaySheet(ctx context.Context, doctorID uuid.UUID, date string) (*bytes.Buffer, string, error)
	ExportPatientCalendar(ctx context.Context, patientID uuid.UUID) (*bytes.Buffer, string, error)
}

type exportService struct {
	db                 *gorm.DB
	log                *logrus.Logger
	appointmentRepo    repository.AppointmentRepository
	doctorProfileRepo  repository.DoctorProfileRepository
	patientProfileRepo repository.PatientProfileRepository
}

func NewExportService(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	patientProfileRepo repository.PatientProfileRepository,
) ExportService {
	return &exportService{
		db:                 db,
		log:                log,
		appointmentRepo:    appointmentRepo,
		doctorProfileRepo:  doctorProfileRepo,
		patientProfileRepo: patientProfileRepo,
	}
}

// ExportDoctorDaySheet renders one doctor's appointments for a single date
// as an .xlsx sheet ordered by start time.
func (s *exportService) ExportDoctorDaySheet(ctx context.Context, doctorID uuid.UUID, date string) (*bytes.Buffer, string, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, "", ErrExportInvalidDate
	}

	db := s.db.WithContext(ctx)

	doctor, err := s.doctorProfileRepo.FindByUserID(db, doctorID)
	if err != nil {
		s.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, "", err
	}
	if doctor == nil {
		return nil, "", ErrExportDoctorNotFound
	}

	appointments, err := s.appointmentRepo.FindByDoctorAndDate(db, doctorID, day)
	if err != nil {
		s.log.Warnf("Failed to find appointments for doctor %s: %+v", doctorID, err)
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Day Sheet"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "B", 10)
	f.SetColWidth(sheetName, "C", "C", 28)
	f.SetColWidth(sheetName, "D", "E", 14)
	f.SetColWidth(sheetName, "F", "F", 40)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s — %s", doctor.User.FullName, date))
	f.MergeCell(sheetName, "A1", "F1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	headers := []string{"Start", "End", "Patient", "Type", "Status", "Reason"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheetName, fmt.Sprintf("%s2", col), h)
		f.SetCellStyle(sheetName, fmt.Sprintf("%s2", col), fmt.Sprintf("%s2", col), headerStyle)
	}

	row := 3
	for _, a := range appointments {
		patientName := a.PatientID.String()
		if a.Patient.User.FullName != "" {
			patientName = a.Patient.User.FullName
		}
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), a.StartTime)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), a.EndTime)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), patientName)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), string(a.Type))
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), string(a.Status))
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), a.Reason)
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.log.Warnf("Failed to write Excel file: %+v", err)
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("day-sheet_%s_%s.xlsx", doctorID, date)
	return buf, filename, nil
}

// ExportPatientCalendar serializes all of a patient's non-cancelled
// appointments as an iCalendar (RFC 5545) feed.
func (s *exportService) ExportPatientCalendar(ctx context.Context, patientID uuid.UUID) (*bytes.Buffer, string, error) {
	db := s.db.WithContext(ctx)

	patient, err := s.patientProfileRepo.FindByUserID(db, patientID)
	if err != nil {
		s.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, "", err
	}
	if patient == nil {
		return nil, "", ErrExportPatientNotFound
	}

	appointments, err := s.appointmentRepo.FindByPatientID(db, patientID)
	if err != nil {
		s.log.Warnf("Failed to find appointments for patient %s: %+v", patientID, err)
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//clinic-booking//appointments//EN")

	for _, a := range appointments {
		if a.Status == entity.AppointmentStatusCancelled || a.Status == entity.AppointmentStatusNoShow {
			continue
		}

		start, err := combineDateTime(a.AppointmentDate, a.StartTime)
		if err != nil {
			continue
		}
		end, err := combineDateTime(a.AppointmentDate, a.EndTime)
		if err != nil {
			continue
		}

		event := cal.AddEvent(fmt.Sprintf("%s@clinic-booking", a.ID))
		event.SetCreatedTime(a.CreatedAt)
		event.SetModifiedAt(a.UpdatedAt)
		event.SetStartAt(start)
		event.SetEndAt(end)

		summary := fmt.Sprintf("%s appointment", a.Type)
		if a.Doctor.User.FullName != "" {
			summary = fmt.Sprintf("%s with %s", summary, a.Doctor.User.FullName)
		}
		event.SetSummary(summary)
		if a.Reason != "" {
			event.SetDescription(a.Reason)
		}
		if a.Department != "" {
			event.SetLocation(a.Department)
		}
		event.SetStatus(ics.ObjectStatusConfirmed)
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("appointments_%s.ics", patientID)
	return buf, filename, nil
}

// combineDateTime merges a calendar date with an "HH:MM" clock time.
func combineDateTime(date time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}
