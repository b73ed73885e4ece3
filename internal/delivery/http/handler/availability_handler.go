package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"clinic-booking/internal/delivery/dto"
	"clinic-booking/internal/delivery/http/middleware"
	"clinic-booking/internal/domain/entity"
	"clinic-booking/internal/usecase"
	"clinic-booking/pkg/response"
	"clinic-booking/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AvailabilityHandler struct {
	availabilityUsecase usecase.AvailabilityUsecase
	validator           *validator.CustomValidator
}

func NewAvailabilityHandler(availabilityUsecase usecase.AvailabilityUsecase, validator *validator.CustomValidator) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityUsecase: availabilityUsecase,
		validator:           validator,
	}
}

// SetWeeklyAvailability replaces a doctor's recurring weekly schedule.
// Doctors may only target themselves; admins may target any doctor.
func (h *AvailabilityHandler) SetWeeklyAvailability(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(r.Context())
	roleID, _ := middleware.GetRoleIDFromContext(r.Context())
	if roleID == entity.RoleIDDoctor && actorID != doctorID {
		response.Forbidden(w, "You may only manage your own availability")
		return
	}

	var req dto.SetWeeklyAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.availabilityUsecase.SetWeeklyAvailability(r.Context(), doctorID, &req)
	if err != nil {
		if respondBookingError(w, err) {
			return
		}
		switch err {
		case usecase.ErrInvalidWeekday:
			response.Error(w, http.StatusBadRequest, "Invalid weekday name", nil)
		case usecase.ErrDuplicateDay:
			response.Error(w, http.StatusBadRequest, "Each weekday may appear at most once", nil)
		default:
			response.InternalServerError(w, "Failed to set availability")
		}
		return
	}

	response.Success(w, http.StatusOK, "Availability updated successfully", result)
}

func (h *AvailabilityHandler) GetWeeklyAvailability(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	result, err := h.availabilityUsecase.GetWeeklyAvailability(r.Context(), doctorID)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to get availability")
		}
		return
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", result)
}

// GetAvailableSlots lists the bookable slots of one doctor on one date.
// Query params: date (required, YYYY-MM-DD) and duration (optional minutes).
func (h *AvailabilityHandler) GetAvailableSlots(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		response.Error(w, http.StatusBadRequest, "Query parameter 'date' is required", nil)
		return
	}

	duration := 0
	if raw := r.URL.Query().Get("duration"); raw != "" {
		duration, err = strconv.Atoi(raw)
		if err != nil || duration <= 0 {
			response.Error(w, http.StatusBadRequest, "Query parameter 'duration' must be a positive integer", nil)
			return
		}
	}

	result, err := h.availabilityUsecase.GetAvailableSlots(r.Context(), doctorID, date, duration)
	if err != nil {
		if respondBookingError(w, err) {
			return
		}
		response.InternalServerError(w, "Failed to get available slots")
		return
	}

	response.Success(w, http.StatusOK, "Available slots retrieved successfully", result)
}
