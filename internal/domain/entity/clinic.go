package entity

import (
	"time"

	"github.com/google/uuid"
)

// Clinic is the tenant root. Every user, patient, service and appointment
// belongs to exactly one clinic.
type Clinic struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	PlanID    int       `gorm:"not null;index" json:"plan_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Plan  Plan   `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
	Users []User `gorm:"foreignKey:ClinicID" json:"users,omitempty"`
}

func (Clinic) TableName() string {
	return "clinics"
}
