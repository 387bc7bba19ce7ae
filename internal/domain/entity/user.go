package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents the centralized authentication table.
// Every user belongs to exactly one clinic.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ClinicID  uuid.UUID `gorm:"type:uuid;not null;index" json:"clinic_id"`
	RoleID    int       `gorm:"not null;index" json:"role_id"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	FullName  string    `gorm:"type:varchar(255);not null" json:"full_name"`
	IsActive  *bool     `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Clinic             Clinic              `gorm:"foreignKey:ClinicID" json:"clinic,omitempty"`
	Role               Role                `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	ProviderProfile    *ProviderProfile    `gorm:"foreignKey:UserID" json:"provider_profile,omitempty"`
	CalendarCredential *CalendarCredential `gorm:"foreignKey:UserID" json:"calendar_credential,omitempty"`
}

func (User) TableName() string {
	return "users"
}
