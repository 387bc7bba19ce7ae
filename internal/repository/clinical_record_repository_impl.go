package repository

import (
	"context"

	"clinic-management-api/internal/domain/entity"
	domainRepo "clinic-management-api/internal/domain/repository"

	"gorm.io/gorm"
)

type clinicalRecordRepository struct{}

func NewClinicalRecordRepository() domainRepo.ClinicalRecordRepository {
	return &clinicalRecordRepository{}
}

func (r *clinicalRecordRepository) Create(ctx context.Context, db *gorm.DB, record *entity.ClinicalRecord) error {
	return db.WithContext(ctx).Create(record).Error
}
