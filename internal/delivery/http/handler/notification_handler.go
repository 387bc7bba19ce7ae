package handler

import (
	"errors"
	"net/http"

	"clinic-management-api/internal/usecase"
	"clinic-management-api/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type NotificationHandler struct {
	notificationUsecase usecase.NotificationUsecase
}

func NewNotificationHandler(notificationUsecase usecase.NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{
		notificationUsecase: notificationUsecase,
	}
}

func (h *NotificationHandler) GetMyNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.notificationUsecase.ListMine(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get notifications")
		return
	}

	response.Success(w, http.StatusOK, "Notifications retrieved successfully", notifications)
}

func (h *NotificationHandler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	notificationID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid notification ID", nil)
		return
	}

	if err := h.notificationUsecase.MarkRead(r.Context(), notificationID); err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotificationNotFound):
			response.NotFound(w, "Notification not found")
		default:
			response.InternalServerError(w, "Failed to mark notification as read")
		}
		return
	}

	response.Success(w, http.StatusOK, "Notification marked as read", nil)
}
