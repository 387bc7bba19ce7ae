package repository

import (
	"context"

	"clinic-management-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AvailabilityWindowRepository interface {
	FindByProvider(ctx context.Context, db *gorm.DB, providerID uuid.UUID) ([]entity.AvailabilityWindow, error)
	// FindByProviderAndDay returns nil when the provider has no window for the
	// given weekday (0=Sunday ... 6=Saturday).
	FindByProviderAndDay(ctx context.Context, db *gorm.DB, providerID uuid.UUID, dayOfWeek int) (*entity.AvailabilityWindow, error)
	CountByProvider(ctx context.Context, db *gorm.DB, providerID uuid.UUID) (int64, error)
	// ReplaceWeek atomically swaps the provider's whole weekly schedule.
	ReplaceWeek(ctx context.Context, db *gorm.DB, providerID uuid.UUID, windows []entity.AvailabilityWindow) error
}
