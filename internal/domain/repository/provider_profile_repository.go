package repository

import (
	"context"

	"clinic-management-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProviderProfileRepository interface {
	Create(ctx context.Context, db *gorm.DB, profile *entity.ProviderProfile) error
	FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.ProviderProfile, error)
	FindByClinic(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) ([]entity.ProviderProfile, error)
	Update(ctx context.Context, db *gorm.DB, profile *entity.ProviderProfile) error
	Delete(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error)
}
