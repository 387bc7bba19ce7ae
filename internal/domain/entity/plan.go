package entity

// Plan defines the subscription tier limits for a clinic.
// A nil maximum means the resource is unlimited on that plan.
type Plan struct {
	ID                  int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name                string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	MaxAppointments     *int   `gorm:"" json:"max_appointments,omitempty"`
	MaxPatients         *int   `gorm:"" json:"max_patients,omitempty"`
	MaxServices         *int   `gorm:"" json:"max_services,omitempty"`
	MaxUsers            *int   `gorm:"" json:"max_users,omitempty"`
	MaxPatientFiles     *int   `gorm:"" json:"max_patient_files,omitempty"`
	CalendarIntegration bool   `gorm:"not null;default:false" json:"calendar_integration"`
}

func (Plan) TableName() string {
	return "plans"
}
