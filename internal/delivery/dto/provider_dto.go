package dto

import "github.com/google/uuid"

// Request DTOs

// CreateProviderRequest creates the login user and the provider profile
// together.
type CreateProviderRequest struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=6"`
	FullName       string `json:"full_name" validate:"required,min=2"`
	LicenseNumber  string `json:"license_number" validate:"required"`
	Specialization string `json:"specialization" validate:"required"`
	Biography      string `json:"biography" validate:"omitempty"`
}

// Response DTOs

type ProviderResponse struct {
	UserID         uuid.UUID `json:"user_id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	LicenseNumber  string    `json:"license_number"`
	Specialization string    `json:"specialization"`
	Biography      string    `json:"biography,omitempty"`
}

type ProviderListResponse struct {
	Providers []ProviderResponse `json:"providers"`
	Total     int                `json:"total"`
}
