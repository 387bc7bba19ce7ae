package repository

import (
	"context"
	"errors"

	"clinic-management-api/internal/domain/entity"
	domainRepo "clinic-management-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type availabilityWindowRepository struct{}

func NewAvailabilityWindowRepository() domainRepo.AvailabilityWindowRepository {
	return &availabilityWindowRepository{}
}

func (r *availabilityWindowRepository) FindByProvider(ctx context.Context, db *gorm.DB, providerID uuid.UUID) ([]entity.AvailabilityWindow, error) {
	var windows []entity.AvailabilityWindow
	err := db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("day_of_week ASC").
		Find(&windows).Error
	if err != nil {
		return nil, err
	}
	return windows, nil
}

func (r *availabilityWindowRepository) FindByProviderAndDay(ctx context.Context, db *gorm.DB, providerID uuid.UUID, dayOfWeek int) (*entity.AvailabilityWindow, error) {
	var window entity.AvailabilityWindow
	err := db.WithContext(ctx).
		Where("provider_id = ? AND day_of_week = ?", providerID, dayOfWeek).
		First(&window).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &window, nil
}

func (r *availabilityWindowRepository) CountByProvider(ctx context.Context, db *gorm.DB, providerID uuid.UUID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.AvailabilityWindow{}).
		Where("provider_id = ?", providerID).
		Count(&count).Error
	return count, err
}

// ReplaceWeek deletes the provider's current windows and inserts the new set
// in one statement sequence. Callers run it inside a transaction so the week
// is swapped atomically.
func (r *availabilityWindowRepository) ReplaceWeek(ctx context.Context, db *gorm.DB, providerID uuid.UUID, windows []entity.AvailabilityWindow) error {
	if err := db.WithContext(ctx).Where("provider_id = ?", providerID).Delete(&entity.AvailabilityWindow{}).Error; err != nil {
		return err
	}
	if len(windows) == 0 {
		return nil
	}
	for i := range windows {
		windows[i].ProviderID = providerID
	}
	return db.WithContext(ctx).Create(&windows).Error
}
