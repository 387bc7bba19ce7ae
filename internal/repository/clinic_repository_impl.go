package repository

import (
	"context"
	"errors"

	"clinic-management-api/internal/domain/entity"
	domainRepo "clinic-management-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type clinicRepository struct{}

func NewClinicRepository() domainRepo.ClinicRepository {
	return &clinicRepository{}
}

func (r *clinicRepository) Create(ctx context.Context, db *gorm.DB, clinic *entity.Clinic) error {
	return db.WithContext(ctx).Create(clinic).Error
}

func (r *clinicRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Clinic, error) {
	var clinic entity.Clinic
	err := db.WithContext(ctx).Preload("Plan").Where("id = ?", id).First(&clinic).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &clinic, nil
}

type planRepository struct{}

func NewPlanRepository() domainRepo.PlanRepository {
	return &planRepository{}
}

func (r *planRepository) FindByID(ctx context.Context, db *gorm.DB, id int) (*entity.Plan, error) {
	var plan entity.Plan
	err := db.WithContext(ctx).Where("id = ?", id).First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

func (r *planRepository) FindByName(ctx context.Context, db *gorm.DB, name string) (*entity.Plan, error) {
	var plan entity.Plan
	err := db.WithContext(ctx).Where("name = ?", name).First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}
