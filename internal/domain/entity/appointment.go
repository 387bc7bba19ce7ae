package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the lifecycle status of an appointment.
// Status values follow the clinical system's wire vocabulary.
type AppointmentStatus string

const (
	AppointmentStatusActive    AppointmentStatus = "activa"
	AppointmentStatusFinalized AppointmentStatus = "finalizada"
	AppointmentStatusCancelled AppointmentStatus = "cancelada"
)

// Appointment represents a booked visit between a provider and a patient.
// Only appointments in status activa block new bookings.
type Appointment struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ClinicID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"clinic_id"`
	ProviderID      uuid.UUID         `gorm:"type:uuid;not null;index" json:"provider_id"`
	PatientID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	ServiceID       uuid.UUID         `gorm:"type:uuid;not null" json:"service_id"`
	Date            time.Time         `gorm:"type:date;not null;index" json:"date"`
	StartTime       string            `gorm:"type:time;not null" json:"start_time"` // Format: HH:MM
	EndTime         string            `gorm:"type:time;not null" json:"end_time"`   // Format: HH:MM
	Status          AppointmentStatus `gorm:"type:varchar(20);not null;default:'activa';index" json:"status"`
	CalendarEventID *string           `gorm:"type:varchar(255)" json:"calendar_event_id,omitempty"`
	CalendarOwnerID *uuid.UUID        `gorm:"type:uuid" json:"calendar_owner_id,omitempty"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Provider ProviderProfile `gorm:"foreignKey:ProviderID" json:"provider,omitempty"`
	Patient  Patient         `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Service  Service         `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsActive checks if the appointment still blocks its slot
func (a *Appointment) IsActive() bool {
	return a.Status == AppointmentStatusActive
}

// IsCancelled checks if the appointment is cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// IsFinalized checks if the appointment has been finalized
func (a *Appointment) IsFinalized() bool {
	return a.Status == AppointmentStatusFinalized
}

// HasCalendarEvent reports whether an external calendar event was created for
// this appointment.
func (a *Appointment) HasCalendarEvent() bool {
	return a.CalendarEventID != nil && *a.CalendarEventID != ""
}

// Overlaps reports whether the half-open interval [StartTime, EndTime) of this
// appointment intersects [startTime, endTime). Touching endpoints do not
// overlap.
func (a *Appointment) Overlaps(startTime, endTime string) bool {
	return a.StartTime < endTime && a.EndTime > startTime
}
