package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RegisterClinicRequest provisions a new tenant: the clinic, its plan and its
// administrative user in one call.
type RegisterClinicRequest struct {
	ClinicName    string `json:"clinic_name" validate:"required,min=2"`
	PlanName      string `json:"plan_name" validate:"required"`
	AdminEmail    string `json:"admin_email" validate:"required,email"`
	AdminPassword string `json:"admin_password" validate:"required,min=6"`
	AdminFullName string `json:"admin_full_name" validate:"required,min=2"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	ClinicID  uuid.UUID `json:"clinic_id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RegisterClinicResponse struct {
	ClinicID   uuid.UUID     `json:"clinic_id"`
	ClinicName string        `json:"clinic_name"`
	Plan       string        `json:"plan"`
	Admin      *UserResponse `json:"admin"`
}
