package repository

import (
	"context"

	"clinic-management-api/internal/domain/entity"

	"gorm.io/gorm"
)

type ClinicalRecordRepository interface {
	Create(ctx context.Context, db *gorm.DB, record *entity.ClinicalRecord) error
}
