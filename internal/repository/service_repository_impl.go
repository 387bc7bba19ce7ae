package repository

import (
	"context"
	"errors"

	"clinic-management-api/internal/domain/entity"
	domainRepo "clinic-management-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type serviceRepository struct{}

func NewServiceRepository() domainRepo.ServiceRepository {
	return &serviceRepository{}
}

func (r *serviceRepository) Create(ctx context.Context, db *gorm.DB, service *entity.Service) error {
	return db.WithContext(ctx).Create(service).Error
}

func (r *serviceRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Service, error) {
	var service entity.Service
	err := db.WithContext(ctx).Where("id = ?", id).First(&service).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &service, nil
}

func (r *serviceRepository) FindByClinic(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) ([]entity.Service, error) {
	var services []entity.Service
	err := db.WithContext(ctx).
		Where("clinic_id = ? AND is_active = ?", clinicID, true).
		Order("name ASC").
		Find(&services).Error
	if err != nil {
		return nil, err
	}
	return services, nil
}

func (r *serviceRepository) CountByClinic(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Service{}).
		Where("clinic_id = ? AND is_active = ?", clinicID, true).
		Count(&count).Error
	return count, err
}

func (r *serviceRepository) Update(ctx context.Context, db *gorm.DB, service *entity.Service) error {
	return db.WithContext(ctx).Omit("Clinic").Save(service).Error
}

func (r *serviceRepository) Deactivate(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.WithContext(ctx).Model(&entity.Service{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}
