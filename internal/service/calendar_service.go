package service

import (
	"context"
	"errors"

	"clinic-management-api/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCalendarOwnerNotConnected is returned when an event operation references
// an owner whose calendar credential is missing or disabled.
var ErrCalendarOwnerNotConnected = errors.New("calendar owner has no connected credential")

// CalendarOwner identifies the external-calendar identity an event is created
// under, plus the guests invited to it.
type CalendarOwner struct {
	OwnerID        uuid.UUID
	AttendeeEmails []string
}

// CalendarService is the bridge to the external calendar provider. Event
// creation and deletion happen outside the database transaction; callers own
// the compensation when a batch fails after events were created.
type CalendarService interface {
	// ResolveOwner decides which identity owns events for a booking. The
	// clinic admin's credential is preferred; a connected provider is then
	// invited as attendee. When the admin is not connected the provider owns
	// the event directly. (nil, nil) means nobody is connected and calendar
	// sync is skipped for this booking.
	ResolveOwner(ctx context.Context, providerID, clinicID uuid.UUID) (*CalendarOwner, error)
	CreateEvent(ctx context.Context, appointment *entity.Appointment, owner *CalendarOwner) (string, error)
	DeleteEvent(ctx context.Context, eventID string, ownerID uuid.UUID) error
}
