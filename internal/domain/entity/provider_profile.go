package entity

import "github.com/google/uuid"

// ProviderProfile represents provider-specific profile data for medical staff
// who see patients and hold a weekly availability schedule.
type ProviderProfile struct {
	UserID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	LicenseNumber  string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"license_number"`
	Specialization string    `gorm:"type:varchar(100);not null;index" json:"specialization"`
	Biography      string    `gorm:"type:text" json:"biography,omitempty"`

	// Relationships
	User         User                 `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Windows      []AvailabilityWindow `gorm:"foreignKey:ProviderID" json:"windows,omitempty"`
	Appointments []Appointment        `gorm:"foreignKey:ProviderID" json:"appointments,omitempty"`
}

func (ProviderProfile) TableName() string {
	return "provider_profiles"
}
