package converter

import (
	"clinic-management-api/internal/delivery/dto"
	"clinic-management-api/internal/domain/entity"
)

// WindowToResponse converts an AvailabilityWindow entity to its response DTO
func WindowToResponse(window *entity.AvailabilityWindow) *dto.AvailabilityWindowResponse {
	if window == nil {
		return nil
	}

	return &dto.AvailabilityWindowResponse{
		ID:         window.ID,
		ProviderID: window.ProviderID,
		DayOfWeek:  window.DayOfWeek,
		StartTime:  window.StartTime,
		EndTime:    window.EndTime,
	}
}

// WindowsToResponses converts a slice of AvailabilityWindow entities to response DTOs
func WindowsToResponses(windows []entity.AvailabilityWindow) []dto.AvailabilityWindowResponse {
	responses := make([]dto.AvailabilityWindowResponse, len(windows))
	for i, window := range windows {
		resp := WindowToResponse(&window)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
