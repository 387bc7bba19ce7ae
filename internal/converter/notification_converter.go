package converter

import (
	"clinic-management-api/internal/delivery/dto"
	"clinic-management-api/internal/domain/entity"
)

// NotificationToResponse converts a Notification entity to its response DTO
func NotificationToResponse(notification *entity.Notification) *dto.NotificationResponse {
	if notification == nil {
		return nil
	}

	return &dto.NotificationResponse{
		ID:            notification.ID,
		AppointmentID: notification.AppointmentID,
		Kind:          string(notification.Kind),
		Message:       notification.Message,
		IsRead:        notification.IsRead,
		CreatedAt:     notification.CreatedAt,
	}
}

// NotificationsToResponses converts a slice of Notification entities to response DTOs
func NotificationsToResponses(notifications []entity.Notification) []dto.NotificationResponse {
	responses := make([]dto.NotificationResponse, len(notifications))
	for i, notification := range notifications {
		resp := NotificationToResponse(&notification)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
