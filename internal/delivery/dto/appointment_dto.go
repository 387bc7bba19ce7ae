package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	ProviderID uuid.UUID `json:"provider_id" validate:"required"`
	PatientID  uuid.UUID `json:"patient_id" validate:"required"`
	ServiceID  uuid.UUID `json:"service_id" validate:"required"`
	Date       string    `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime  string    `json:"start_time" validate:"required,datetime=15:04"`
	Recurrence string    `json:"recurrence" validate:"omitempty,oneof=ninguna diaria cada_3_dias semanal quincenal mensual"`
	Count      int       `json:"count" validate:"omitempty,min=1,max=52"`
}

type FinalizeAppointmentRequest struct {
	Objective string `json:"objective" validate:"required"`
	Process   string `json:"process" validate:"required"`
	Results   string `json:"results" validate:"required"`
}

// Response DTOs

type AppointmentResponse struct {
	ID              uuid.UUID `json:"id"`
	ClinicID        uuid.UUID `json:"clinic_id"`
	ProviderID      uuid.UUID `json:"provider_id"`
	PatientID       uuid.UUID `json:"patient_id"`
	ServiceID       uuid.UUID `json:"service_id"`
	Date            string    `json:"date"`
	StartTime       string    `json:"start_time"`
	EndTime         string    `json:"end_time"`
	Status          string    `json:"status"`
	CalendarEventID *string   `json:"calendar_event_id,omitempty"`
	PatientName     string    `json:"patient_name,omitempty"`
	ServiceName     string    `json:"service_name,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type CreateAppointmentsResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// DayAvailabilityResponse answers the day view query. Code is empty when the
// provider attends that day; otherwise it explains why the day is closed.
type DayAvailabilityResponse struct {
	ProviderID   uuid.UUID                   `json:"provider_id"`
	Date         string                      `json:"date"`
	Code         string                      `json:"code,omitempty"`
	Window       *AvailabilityWindowResponse `json:"window,omitempty"`
	Appointments []AppointmentResponse       `json:"appointments"`
}
