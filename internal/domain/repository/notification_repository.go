package repository

import (
	"context"

	"clinic-management-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(ctx context.Context, db *gorm.DB, notification *entity.Notification) error
	FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]entity.Notification, error)
	MarkRead(ctx context.Context, db *gorm.DB, id uuid.UUID, userID uuid.UUID) (int64, error)
}
