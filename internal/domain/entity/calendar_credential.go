package entity

import (
	"time"

	"github.com/google/uuid"
)

// CalendarCredential stores a user's external calendar provider connection.
type CalendarCredential struct {
	UserID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Provider       string    `gorm:"type:varchar(20);not null;default:'google'" json:"provider"`
	AccessToken    string    `gorm:"type:text;not null" json:"-"`
	RefreshToken   string    `gorm:"type:text;not null" json:"-"`
	TokenExpiresAt time.Time `gorm:"not null" json:"token_expires_at"`
	CalendarEmail  string    `gorm:"type:varchar(255);not null" json:"calendar_email"`
	IsActive       *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (CalendarCredential) TableName() string {
	return "calendar_credentials"
}

// IsConnected reports whether the credential can be used to act on the
// external calendar.
func (c *CalendarCredential) IsConnected() bool {
	return c != nil && c.IsActive != nil && *c.IsActive && c.RefreshToken != ""
}
