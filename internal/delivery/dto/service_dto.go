package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateServiceRequest struct {
	Name            string          `json:"name" validate:"required,min=2"`
	Description     string          `json:"description" validate:"omitempty"`
	DurationMinutes int             `json:"duration_minutes" validate:"required,min=5,max=480"`
	Price           decimal.Decimal `json:"price" validate:"required"`
}

type UpdateServiceRequest struct {
	Name            string          `json:"name" validate:"required,min=2"`
	Description     string          `json:"description" validate:"omitempty"`
	DurationMinutes int             `json:"duration_minutes" validate:"required,min=5,max=480"`
	Price           decimal.Decimal `json:"price" validate:"required"`
}

// Response DTOs

type ServiceResponse struct {
	ID              uuid.UUID       `json:"id"`
	ClinicID        uuid.UUID       `json:"clinic_id"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	DurationMinutes int             `json:"duration_minutes"`
	Price           decimal.Decimal `json:"price"`
	IsActive        bool            `json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
}

type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
	Total    int               `json:"total"`
}
