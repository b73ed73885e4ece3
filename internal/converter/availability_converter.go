package converter

import (
	"clinic-booking/internal/delivery/dto"
	"clinic-booking/internal/domain/entity"
	"clinic-booking/internal/scheduling"
)

// AvailabilityToResponses converts WeeklyAvailability entities to DTOs,
// preserving stored list order.
func AvailabilityToResponses(entries []entity.WeeklyAvailability) []dto.WeeklyAvailabilityResponse {
	if len(entries) == 0 {
		return nil
	}
	responses := make([]dto.WeeklyAvailabilityResponse, len(entries))
	for i, e := range entries {
		responses[i] = dto.WeeklyAvailabilityResponse{
			Day:         e.Day,
			StartTime:   e.StartTime,
			EndTime:     e.EndTime,
			IsAvailable: e.IsAvailable,
		}
	}
	return responses
}

// SlotsToResponses converts scheduling slots to DTOs.
func SlotsToResponses(slots []scheduling.Slot) []dto.SlotResponse {
	responses := make([]dto.SlotResponse, len(slots))
	for i, s := range slots {
		responses[i] = dto.SlotResponse{StartTime: s.StartTime, EndTime: s.EndTime}
	}
	return responses
}
