package repository

import (
	"context"
	"time"

	"clinic-management-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	// ExistsOverlap reports whether any activa appointment of the provider on
	// the given date overlaps the half-open interval [startTime, endTime).
	ExistsOverlap(ctx context.Context, db *gorm.DB, providerID uuid.UUID, date time.Time, startTime, endTime string) (bool, error)
	FindActiveByProviderAndDate(ctx context.Context, db *gorm.DB, providerID uuid.UUID, date time.Time) ([]entity.Appointment, error)
	Update(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error
	// CancelIfActive flips an activa appointment to cancelada. Returns
	// affected rows: 0 means the appointment was already terminal.
	CancelIfActive(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error)
	// DeleteByIDs removes a batch of appointments; used only by the
	// compensation path of recurring bookings.
	DeleteByIDs(ctx context.Context, db *gorm.DB, ids []uuid.UUID) error
	CountActiveByClinic(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) (int64, error)
	FindByClinic(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) ([]entity.Appointment, error)
}
