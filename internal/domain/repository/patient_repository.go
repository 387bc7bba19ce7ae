package repository

import (
	"context"

	"clinic-management-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PatientRepository interface {
	Create(ctx context.Context, db *gorm.DB, patient *entity.Patient) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Patient, error)
	FindByClinic(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) ([]entity.Patient, error)
	CountByClinic(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) (int64, error)
}

type PatientFileRepository interface {
	Create(ctx context.Context, db *gorm.DB, file *entity.PatientFile) error
	CountByPatient(ctx context.Context, db *gorm.DB, patientID uuid.UUID) (int64, error)
}
