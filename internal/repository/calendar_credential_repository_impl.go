package repository

import (
	"context"
	"errors"

	"clinic-management-api/internal/domain/entity"
	domainRepo "clinic-management-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type calendarCredentialRepository struct{}

func NewCalendarCredentialRepository() domainRepo.CalendarCredentialRepository {
	return &calendarCredentialRepository{}
}

func (r *calendarCredentialRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.CalendarCredential, error) {
	var credential entity.CalendarCredential
	err := db.WithContext(ctx).Where("user_id = ?", userID).First(&credential).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &credential, nil
}

func (r *calendarCredentialRepository) Save(ctx context.Context, db *gorm.DB, credential *entity.CalendarCredential) error {
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(credential).Error
}
