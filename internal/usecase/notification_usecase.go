package usecase

import (
	"context"
	"errors"

	"clinic-management-api/internal/converter"
	"clinic-management-api/internal/delivery/dto"
	"clinic-management-api/internal/delivery/http/middleware"
	"clinic-management-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationUsecase interface {
	ListMine(ctx context.Context) (*dto.NotificationListResponse, error)
	MarkRead(ctx context.Context, notificationID uuid.UUID) error
}

type notificationUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	notificationRepo repository.NotificationRepository
}

func NewNotificationUsecase(db *gorm.DB, log *logrus.Logger, notificationRepo repository.NotificationRepository) NotificationUsecase {
	return &notificationUsecase{
		db:               db,
		log:              log,
		notificationRepo: notificationRepo,
	}
}

func (u *notificationUsecase) ListMine(ctx context.Context) (*dto.NotificationListResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	notifications, err := u.notificationRepo.FindByUser(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to list notifications for user %s: %+v", userID, err)
		return nil, err
	}

	unread := 0
	for _, n := range notifications {
		if !n.IsRead {
			unread++
		}
	}

	return &dto.NotificationListResponse{
		Notifications: converter.NotificationsToResponses(notifications),
		Total:         len(notifications),
		Unread:        unread,
	}, nil
}

// MarkRead only touches the caller's own notifications; a foreign ID behaves
// like a missing one.
func (u *notificationUsecase) MarkRead(ctx context.Context, notificationID uuid.UUID) error {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return errors.New("user not found in context")
	}

	rows, err := u.notificationRepo.MarkRead(ctx, u.db, notificationID, userID)
	if err != nil {
		u.log.Warnf("Failed to mark notification %s read: %+v", notificationID, err)
		return err
	}
	if rows == 0 {
		return ErrNotificationNotFound
	}

	return nil
}
