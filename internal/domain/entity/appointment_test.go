package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppointment_Overlaps(t *testing.T) {
	appointment := &Appointment{StartTime: "10:00", EndTime: "11:00"}

	tests := []struct {
		name  string
		start string
		end   string
		want  bool
	}{
		{"identical interval", "10:00", "11:00", true},
		{"contained interval", "10:15", "10:45", true},
		{"containing interval", "09:00", "12:00", true},
		{"overlap at start", "09:30", "10:30", true},
		{"overlap at end", "10:30", "11:30", true},
		{"touching before", "09:00", "10:00", false},
		{"touching after", "11:00", "12:00", false},
		{"disjoint before", "08:00", "09:00", false},
		{"disjoint after", "12:00", "13:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, appointment.Overlaps(tt.start, tt.end))
		})
	}
}

func TestAppointment_StatusHelpers(t *testing.T) {
	active := &Appointment{Status: AppointmentStatusActive}
	assert.True(t, active.IsActive())
	assert.False(t, active.IsCancelled())
	assert.False(t, active.IsFinalized())

	cancelled := &Appointment{Status: AppointmentStatusCancelled}
	assert.True(t, cancelled.IsCancelled())
	assert.False(t, cancelled.IsActive())

	finalized := &Appointment{Status: AppointmentStatusFinalized}
	assert.True(t, finalized.IsFinalized())
	assert.False(t, finalized.IsActive())
}

func TestAppointment_HasCalendarEvent(t *testing.T) {
	assert.False(t, (&Appointment{}).HasCalendarEvent())

	empty := ""
	assert.False(t, (&Appointment{CalendarEventID: &empty}).HasCalendarEvent())

	eventID := "evt-123"
	assert.True(t, (&Appointment{CalendarEventID: &eventID}).HasCalendarEvent())
}
