package repository

import (
	"context"
	"errors"

	"clinic-management-api/internal/domain/entity"
	domainRepo "clinic-management-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type providerProfileRepository struct{}

func NewProviderProfileRepository() domainRepo.ProviderProfileRepository {
	return &providerProfileRepository{}
}

func (r *providerProfileRepository) Create(ctx context.Context, db *gorm.DB, profile *entity.ProviderProfile) error {
	return db.WithContext(ctx).Create(profile).Error
}

func (r *providerProfileRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.ProviderProfile, error) {
	var profile entity.ProviderProfile
	err := db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *providerProfileRepository) FindByClinic(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) ([]entity.ProviderProfile, error) {
	var profiles []entity.ProviderProfile
	err := db.WithContext(ctx).
		Joins("JOIN users ON users.id = provider_profiles.user_id").
		Where("users.clinic_id = ? AND users.is_active = ?", clinicID, true).
		Preload("User").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *providerProfileRepository) Update(ctx context.Context, db *gorm.DB, profile *entity.ProviderProfile) error {
	return db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(profile).Error
}

func (r *providerProfileRepository) Delete(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error) {
	result := db.WithContext(ctx).Where("user_id = ?", userID).Delete(&entity.ProviderProfile{})
	return result.RowsAffected, result.Error
}
