package repository

import (
	"context"

	"clinic-management-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceRepository interface {
	Create(ctx context.Context, db *gorm.DB, service *entity.Service) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Service, error)
	FindByClinic(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) ([]entity.Service, error)
	CountByClinic(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) (int64, error)
	Update(ctx context.Context, db *gorm.DB, service *entity.Service) error
	// Deactivate soft-removes a catalog service. Existing appointments keep
	// referencing it.
	Deactivate(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error)
}
