package repository

import (
	"context"

	"clinic-management-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClinicRepository interface {
	Create(ctx context.Context, db *gorm.DB, clinic *entity.Clinic) error
	// FindByID loads the clinic with its plan preloaded.
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Clinic, error)
}

type PlanRepository interface {
	FindByID(ctx context.Context, db *gorm.DB, id int) (*entity.Plan, error)
	FindByName(ctx context.Context, db *gorm.DB, name string) (*entity.Plan, error)
}
