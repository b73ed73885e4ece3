package handler

import (
	"fmt"
	"net/http"

	"clinic-booking/internal/delivery/http/middleware"
	"clinic-booking/internal/domain/entity"
	"clinic-booking/internal/service"
	"clinic-booking/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ExportHandler struct {
	exportService service.ExportService
}

func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
	}
}

// ExportDoctorDaySheet streams a doctor's appointments for one date as an
// .xlsx download. Doctors may only export their own sheet; admins any.
func (h *ExportHandler) ExportDoctorDaySheet(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(r.Context())
	roleID, _ := middleware.GetRoleIDFromContext(r.Context())
	if roleID == entity.RoleIDDoctor && actorID != doctorID {
		response.Forbidden(w, "You may only export your own day sheet")
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		response.Error(w, http.StatusBadRequest, "Query parameter 'date' is required", nil)
		return
	}

	buf, filename, err := h.exportService.ExportDoctorDaySheet(r.Context(), doctorID, date)
	if err != nil {
		switch err {
		case service.ErrExportDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case service.ErrExportInvalidDate:
			response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
		default:
			response.InternalServerError(w, "Failed to export day sheet")
		}
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// ExportMyCalendar streams the authenticated patient's appointments as an
// iCalendar (.ics) download.
func (h *ExportHandler) ExportMyCalendar(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	buf, filename, err := h.exportService.ExportPatientCalendar(r.Context(), patientID)
	if err != nil {
		switch err {
		case service.ErrExportPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to export calendar")
		}
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
