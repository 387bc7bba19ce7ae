package dto

import "github.com/google/uuid"

// Request DTOs

type WeekWindowRequest struct {
	DayOfWeek int    `json:"day_of_week" validate:"min=0,max=6"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
}

// ReplaceWeekRequest swaps a provider's whole weekly schedule in one shot.
type ReplaceWeekRequest struct {
	Windows []WeekWindowRequest `json:"windows" validate:"required,dive"`
}

// Response DTOs

type AvailabilityWindowResponse struct {
	ID         int       `json:"id"`
	ProviderID uuid.UUID `json:"provider_id"`
	DayOfWeek  int       `json:"day_of_week"`
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
}

type WeekScheduleResponse struct {
	ProviderID uuid.UUID                    `json:"provider_id"`
	Windows    []AvailabilityWindowResponse `json:"windows"`
}
