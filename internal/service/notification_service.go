package service

import (
	"context"
	"encoding/json"
	"fmt"

	"clinic-management-api/internal/domain/entity"
	"clinic-management-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// NotificationChannel is the redis pub/sub channel real-time consumers listen
// on.
const NotificationChannel = "notifications"

// NotificationService creates internal provider notifications. Delivery is
// best effort: callers log returned errors and never abort the primary
// operation because of them.
type NotificationService interface {
	AppointmentCreated(ctx context.Context, providerID uuid.UUID, appointment *entity.Appointment) error
	AppointmentCancelled(ctx context.Context, providerID uuid.UUID, appointment *entity.Appointment) error
	AppointmentFinalized(ctx context.Context, providerID uuid.UUID, appointment *entity.Appointment) error
}

type notificationService struct {
	db               *gorm.DB
	log              *logrus.Logger
	redisClient      *redis.Client
	notificationRepo repository.NotificationRepository
}

func NewNotificationService(
	db *gorm.DB,
	log *logrus.Logger,
	redisClient *redis.Client,
	notificationRepo repository.NotificationRepository,
) NotificationService {
	return &notificationService{
		db:               db,
		log:              log,
		redisClient:      redisClient,
		notificationRepo: notificationRepo,
	}
}

func (s *notificationService) AppointmentCreated(ctx context.Context, providerID uuid.UUID, appointment *entity.Appointment) error {
	message := fmt.Sprintf("New appointment on %s at %s", appointment.Date.Format("2006-01-02"), appointment.StartTime)
	return s.dispatch(ctx, providerID, appointment, entity.NotificationAppointmentCreated, message)
}

func (s *notificationService) AppointmentCancelled(ctx context.Context, providerID uuid.UUID, appointment *entity.Appointment) error {
	message := fmt.Sprintf("Appointment on %s at %s was cancelled", appointment.Date.Format("2006-01-02"), appointment.StartTime)
	return s.dispatch(ctx, providerID, appointment, entity.NotificationAppointmentCancelled, message)
}

func (s *notificationService) AppointmentFinalized(ctx context.Context, providerID uuid.UUID, appointment *entity.Appointment) error {
	message := fmt.Sprintf("Appointment on %s at %s was finalized", appointment.Date.Format("2006-01-02"), appointment.StartTime)
	return s.dispatch(ctx, providerID, appointment, entity.NotificationAppointmentFinalized, message)
}

// dispatch persists the notification on the service's own connection (never
// the caller's transaction: a rolled-back batch must not retract a published
// message it never sent) and fans it out over redis.
func (s *notificationService) dispatch(ctx context.Context, providerID uuid.UUID, appointment *entity.Appointment, kind entity.NotificationKind, message string) error {
	appointmentID := appointment.ID
	notification := &entity.Notification{
		UserID:        providerID,
		AppointmentID: &appointmentID,
		Kind:          kind,
		Message:       message,
	}

	if err := s.notificationRepo.Create(ctx, s.db, notification); err != nil {
		return fmt.Errorf("persist notification: %w", err)
	}

	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	if err := s.redisClient.Publish(ctx, NotificationChannel, payload).Err(); err != nil {
		// The row is persisted; the realtime fan-out is the only loss.
		s.log.Warnf("Failed to publish notification %s: %+v", notification.ID, err)
	}

	return nil
}
