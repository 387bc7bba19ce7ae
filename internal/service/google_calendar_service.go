package service

import (
	"context"
	"fmt"

	"clinic-management-api/config"
	"clinic-management-api/internal/domain/entity"
	"clinic-management-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
	"gorm.io/gorm"
)

type googleCalendarService struct {
	db             *gorm.DB
	log            *logrus.Logger
	oauthConfig    *oauth2.Config
	timezone       string
	userRepo       repository.UserRepository
	credentialRepo repository.CalendarCredentialRepository
}

// NewGoogleCalendarService creates the Google-backed calendar bridge. Stored
// refresh tokens are exchanged per call via the oauth2 token source, so
// expired access tokens renew transparently.
func NewGoogleCalendarService(
	db *gorm.DB,
	log *logrus.Logger,
	cfg config.GoogleConfig,
	userRepo repository.UserRepository,
	credentialRepo repository.CalendarCredentialRepository,
) CalendarService {
	oauthConfig := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scopes:       []string{calendar.CalendarEventsScope},
		Endpoint:     google.Endpoint,
	}

	return &googleCalendarService{
		db:             db,
		log:            log,
		oauthConfig:    oauthConfig,
		timezone:       cfg.Timezone,
		userRepo:       userRepo,
		credentialRepo: credentialRepo,
	}
}

func (s *googleCalendarService) ResolveOwner(ctx context.Context, providerID, clinicID uuid.UUID) (*CalendarOwner, error) {
	admin, err := s.userRepo.FindAdminByClinic(ctx, s.db, clinicID)
	if err != nil {
		return nil, err
	}

	var adminCred *entity.CalendarCredential
	if admin != nil {
		adminCred, err = s.credentialRepo.FindByUserID(ctx, s.db, admin.ID)
		if err != nil {
			return nil, err
		}
	}

	providerCred, err := s.credentialRepo.FindByUserID(ctx, s.db, providerID)
	if err != nil {
		return nil, err
	}

	if adminCred.IsConnected() {
		owner := &CalendarOwner{OwnerID: admin.ID}
		if providerCred.IsConnected() {
			owner.AttendeeEmails = []string{providerCred.CalendarEmail}
		}
		return owner, nil
	}

	if providerCred.IsConnected() {
		return &CalendarOwner{OwnerID: providerID}, nil
	}

	// Nobody connected a calendar: sync is silently skipped.
	return nil, nil
}

func (s *googleCalendarService) CreateEvent(ctx context.Context, appointment *entity.Appointment, owner *CalendarOwner) (string, error) {
	svc, err := s.clientFor(ctx, owner.OwnerID)
	if err != nil {
		return "", err
	}

	attendees := make([]*calendar.EventAttendee, 0, len(owner.AttendeeEmails))
	for _, email := range owner.AttendeeEmails {
		attendees = append(attendees, &calendar.EventAttendee{Email: email})
	}

	event := &calendar.Event{
		Summary:     fmt.Sprintf("Appointment %s", appointment.ID),
		Description: fmt.Sprintf("Clinic appointment (service %s)", appointment.ServiceID),
		Start: &calendar.EventDateTime{
			DateTime: s.eventDateTime(appointment.Date.Format("2006-01-02"), appointment.StartTime),
			TimeZone: s.timezone,
		},
		End: &calendar.EventDateTime{
			DateTime: s.eventDateTime(appointment.Date.Format("2006-01-02"), appointment.EndTime),
			TimeZone: s.timezone,
		},
		Attendees: attendees,
	}

	created, err := svc.Events.Insert("primary", event).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("insert calendar event: %w", err)
	}

	return created.Id, nil
}

func (s *googleCalendarService) DeleteEvent(ctx context.Context, eventID string, ownerID uuid.UUID) error {
	svc, err := s.clientFor(ctx, ownerID)
	if err != nil {
		return err
	}

	if err := svc.Events.Delete("primary", eventID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete calendar event %s: %w", eventID, err)
	}

	return nil
}

func (s *googleCalendarService) clientFor(ctx context.Context, userID uuid.UUID) (*calendar.Service, error) {
	credential, err := s.credentialRepo.FindByUserID(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	if !credential.IsConnected() {
		return nil, ErrCalendarOwnerNotConnected
	}

	token := &oauth2.Token{
		AccessToken:  credential.AccessToken,
		RefreshToken: credential.RefreshToken,
		Expiry:       credential.TokenExpiresAt,
	}

	svc, err := calendar.NewService(ctx, option.WithTokenSource(s.oauthConfig.TokenSource(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("create calendar client: %w", err)
	}

	return svc, nil
}

func (s *googleCalendarService) eventDateTime(date, hhmm string) string {
	return fmt.Sprintf("%sT%s:00", date, hhmm)
}
