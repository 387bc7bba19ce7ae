package entity

import (
	"time"

	"github.com/google/uuid"
)

// PatientFile tracks a stored document attached to a patient record.
// Upload/download mechanics live in the file storage collaborator; the row is
// what the per-patient file quota counts.
type PatientFile struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ClinicID    uuid.UUID `gorm:"type:uuid;not null;index" json:"clinic_id"`
	PatientID   uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	FileName    string    `gorm:"type:varchar(255);not null" json:"file_name"`
	ContentType string    `gorm:"type:varchar(100)" json:"content_type,omitempty"`
	SizeBytes   int64     `gorm:"not null;default:0" json:"size_bytes"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Patient Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (PatientFile) TableName() string {
	return "patient_files"
}
