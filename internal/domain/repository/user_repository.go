package repository

import (
	"context"

	"clinic-management-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, db *gorm.DB, user *entity.User) error
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.User, error)
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.User, error)
	// FindAdminByClinic returns the clinic's administrative user, nil when the
	// clinic has none.
	FindAdminByClinic(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) (*entity.User, error)
	CountByClinic(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) (int64, error)
	Update(ctx context.Context, db *gorm.DB, user *entity.User) error
}
