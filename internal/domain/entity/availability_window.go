package entity

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilityWindow is a weekly recurring time window in which a provider
// accepts appointments. At most one window exists per (provider, day_of_week);
// the whole week is replaced atomically on update.
//
// A provider with zero windows is unconstrained. A provider with windows for
// some days but not others is unavailable on the missing days.
type AvailabilityWindow struct {
	ID         int       `gorm:"primaryKey;autoIncrement" json:"id"`
	ProviderID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_windows_provider_day" json:"provider_id"`
	DayOfWeek  int       `gorm:"not null;uniqueIndex:uq_windows_provider_day" json:"day_of_week"` // 0=Sunday ... 6=Saturday
	StartTime  string    `gorm:"type:time;not null" json:"start_time"`                            // Format: HH:MM
	EndTime    string    `gorm:"type:time;not null" json:"end_time"`                              // Format: HH:MM
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Provider ProviderProfile `gorm:"foreignKey:ProviderID" json:"provider,omitempty"`
}

func (AvailabilityWindow) TableName() string {
	return "availability_windows"
}

// Contains reports whether [startTime, endTime) fits inside the window.
// Times are HH:MM strings, which compare correctly as strings.
func (w *AvailabilityWindow) Contains(startTime, endTime string) bool {
	return startTime >= w.StartTime && endTime <= w.EndTime
}
