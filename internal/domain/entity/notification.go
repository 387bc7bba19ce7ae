package entity

import (
	"time"

	"github.com/google/uuid"
)

// NotificationKind classifies internal notifications sent to providers.
type NotificationKind string

const (
	NotificationAppointmentCreated   NotificationKind = "cita_creada"
	NotificationAppointmentCancelled NotificationKind = "cita_cancelada"
	NotificationAppointmentFinalized NotificationKind = "cita_finalizada"
)

// Notification is an internal in-app notification. Delivery is best effort;
// failures never abort the operation that produced the notification.
type Notification struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID        uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	AppointmentID *uuid.UUID       `gorm:"type:uuid;index" json:"appointment_id,omitempty"`
	Kind          NotificationKind `gorm:"type:varchar(50);not null" json:"kind"`
	Message       string           `gorm:"type:text;not null" json:"message"`
	IsRead        bool             `gorm:"not null;default:false;index" json:"is_read"`
	CreatedAt     time.Time        `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}
