package entity

import (
	"time"

	"github.com/google/uuid"
)

// Patient represents a clinic patient record. Patients are clinic-scoped data,
// not login users.
type Patient struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ClinicID    uuid.UUID `gorm:"type:uuid;not null;index" json:"clinic_id"`
	FullName    string    `gorm:"type:varchar(255);not null" json:"full_name"`
	Email       string    `gorm:"type:varchar(255)" json:"email,omitempty"`
	PhoneNumber string    `gorm:"type:varchar(20)" json:"phone_number,omitempty"`
	DateOfBirth time.Time `gorm:"type:date" json:"date_of_birth"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Clinic       Clinic        `gorm:"foreignKey:ClinicID" json:"clinic,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"appointments,omitempty"`
	Files        []PatientFile `gorm:"foreignKey:PatientID" json:"files,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}
