package repository

import (
	"context"

	"clinic-management-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CalendarCredentialRepository interface {
	// FindByUserID returns nil when the user never connected a calendar.
	FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.CalendarCredential, error)
	Save(ctx context.Context, db *gorm.DB, credential *entity.CalendarCredential) error
}
