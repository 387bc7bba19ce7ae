package entity

import (
	"time"

	"github.com/google/uuid"
)

// ClinicalRecord stores the clinical note written when an appointment is
// finalized.
type ClinicalRecord struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AppointmentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"appointment_id"`
	PatientID     uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	Objective     string    `gorm:"type:text;not null" json:"objective"`
	Process       string    `gorm:"type:text;not null" json:"process"`
	Results       string    `gorm:"type:text;not null" json:"results"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Appointment Appointment `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
}

func (ClinicalRecord) TableName() string {
	return "clinical_records"
}
