package repository

import (
	"context"
	"errors"
	"time"

	"clinic-management-api/internal/domain/entity"
	domainRepo "clinic-management-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	return db.WithContext(ctx).Create(appointment).Error
}

func (r *appointmentRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.WithContext(ctx).
		Preload("Provider.User").Preload("Patient").Preload("Service").
		Where("id = ?", id).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

// ExistsOverlap runs the half-open interval overlap test in SQL:
// an activa appointment [s, e) conflicts with [startTime, endTime) iff
// s < endTime AND e > startTime. Touching endpoints do not conflict.
func (r *appointmentRepository) ExistsOverlap(ctx context.Context, db *gorm.DB, providerID uuid.UUID, date time.Time, startTime, endTime string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("provider_id = ? AND date = ? AND status = ?", providerID, date.Format("2006-01-02"), entity.AppointmentStatusActive).
		Where("start_time < ? AND end_time > ?", endTime, startTime).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *appointmentRepository) FindActiveByProviderAndDate(ctx context.Context, db *gorm.DB, providerID uuid.UUID, date time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.WithContext(ctx).
		Preload("Patient").Preload("Service").
		Where("provider_id = ? AND date = ? AND status = ?", providerID, date.Format("2006-01-02"), entity.AppointmentStatusActive).
		Order("start_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) Update(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	return db.WithContext(ctx).
		Omit("Provider", "Patient", "Service").
		Save(appointment).Error
}

// CancelIfActive atomically cancels an appointment ONLY while it is still
// activa. Returns affected rows: 1 = success, 0 = already terminal (prevents
// double-cancel race).
func (r *appointmentRepository) CancelIfActive(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, entity.AppointmentStatusActive).
		Update("status", entity.AppointmentStatusCancelled)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) DeleteByIDs(ctx context.Context, db *gorm.DB, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return db.WithContext(ctx).Where("id IN ?", ids).Delete(&entity.Appointment{}).Error
}

func (r *appointmentRepository) CountActiveByClinic(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("clinic_id = ? AND status = ?", clinicID, entity.AppointmentStatusActive).
		Count(&count).Error
	return count, err
}

func (r *appointmentRepository) FindByClinic(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.WithContext(ctx).
		Preload("Provider.User").Preload("Patient").Preload("Service").
		Where("clinic_id = ?", clinicID).
		Order("date DESC, start_time DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}
