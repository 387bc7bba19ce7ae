package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinic-management-api/internal/converter"
	"clinic-management-api/internal/delivery/dto"
	"clinic-management-api/internal/delivery/http/middleware"
	"clinic-management-api/internal/domain/entity"
	"clinic-management-api/internal/domain/repository"
	"clinic-management-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrAppointmentQuota     = errors.New("appointment limit reached for the current plan")
	ErrAppointmentNotActive = errors.New("appointment is not active")
	ErrSlotConflict         = errors.New("the requested slot overlaps an existing appointment")
	ErrProviderUnavailable  = errors.New("provider is not available at the requested time")
	ErrProviderNotFound     = errors.New("provider not found")
	ErrPatientNotFound      = errors.New("patient not found")
	ErrServiceNotFound      = errors.New("service not found")
	ErrCalendarDeleteFailed = errors.New("appointment cancelled but the external calendar event could not be removed")
	ErrSlotPastMidnight     = errors.New("appointment would run past midnight")
)

// Day-view codes for providers whose schedule does not cover the requested
// date.
const (
	AvailabilityCodeNotConfigured = "sin_configurar"
	AvailabilityCodeUnavailable   = "no_disponible"
)

type SchedulingUsecase interface {
	CreateRecurringAppointments(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.CreateAppointmentsResponse, error)
	Cancel(ctx context.Context, appointmentID uuid.UUID) error
	Finalize(ctx context.Context, appointmentID uuid.UUID, req *dto.FinalizeAppointmentRequest) error
	GetDayAvailability(ctx context.Context, providerID uuid.UUID, date time.Time) (*dto.DayAvailabilityResponse, error)
}

type schedulingUsecase struct {
	db                  *gorm.DB
	log                 *logrus.Logger
	txManager           repository.TransactionManager
	appointmentRepo     repository.AppointmentRepository
	windowRepo          repository.AvailabilityWindowRepository
	providerRepo        repository.ProviderProfileRepository
	patientRepo         repository.PatientRepository
	serviceRepo         repository.ServiceRepository
	clinicalRecordRepo  repository.ClinicalRecordRepository
	entitlementService  service.EntitlementService
	calendarService     service.CalendarService
	notificationService service.NotificationService
	auditService        service.AuditService
}

func NewSchedulingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	txManager repository.TransactionManager,
	appointmentRepo repository.AppointmentRepository,
	windowRepo repository.AvailabilityWindowRepository,
	providerRepo repository.ProviderProfileRepository,
	patientRepo repository.PatientRepository,
	serviceRepo repository.ServiceRepository,
	clinicalRecordRepo repository.ClinicalRecordRepository,
	entitlementService service.EntitlementService,
	calendarService service.CalendarService,
	notificationService service.NotificationService,
	auditService service.AuditService,
) SchedulingUsecase {
	return &schedulingUsecase{
		db:                  db,
		log:                 log,
		txManager:           txManager,
		appointmentRepo:     appointmentRepo,
		windowRepo:          windowRepo,
		providerRepo:        providerRepo,
		patientRepo:         patientRepo,
		serviceRepo:         serviceRepo,
		clinicalRecordRepo:  clinicalRecordRepo,
		entitlementService:  entitlementService,
		calendarService:     calendarService,
		notificationService: notificationService,
		auditService:        auditService,
	}
}

// createdEvent tracks an external calendar event made during a booking batch
// so it can be compensated if the batch fails.
type createdEvent struct {
	eventID string
	ownerID uuid.UUID
}

// CreateRecurringAppointments books one or more appointments from a single
// request. All instances succeed or none do.
//
// Flow:
// 1. Entitlement gate (plan appointment quota)
// 2. Load and validate provider, patient, service within the clinic
// 3. Expand the recurrence pattern into concrete dates
// 4. Per instance inside one transaction: availability check, conflict check,
//    insert, external calendar event
// 5. Any failure -> delete the calendar events created so far, roll back
// 6. Success -> commit, then notify the provider per instance
func (u *schedulingUsecase) CreateRecurringAppointments(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.CreateAppointmentsResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}
	clinicID, ok := middleware.GetClinicIDFromContext(ctx)
	if !ok {
		return nil, errors.New("clinic not found in context")
	}

	// Step 1: Entitlement gate. Denied requests produce no writes at all.
	allowed, err := u.entitlementService.CanCreateAppointment(ctx, u.db, clinicID)
	if err != nil {
		u.log.Warnf("Failed to check appointment quota for clinic %s: %+v", clinicID, err)
		return nil, err
	}
	if !allowed {
		return nil, ErrAppointmentQuota
	}

	// Step 2: Resolve and validate the participants
	provider, err := u.providerRepo.FindByUserID(ctx, u.db, req.ProviderID)
	if err != nil {
		u.log.Warnf("Failed to find provider %s: %+v", req.ProviderID, err)
		return nil, err
	}
	if provider == nil || provider.User.ClinicID != clinicID {
		return nil, ErrProviderNotFound
	}

	patient, err := u.patientRepo.FindByID(ctx, u.db, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil || patient.ClinicID != clinicID {
		return nil, ErrPatientNotFound
	}

	svc, err := u.serviceRepo.FindByID(ctx, u.db, req.ServiceID)
	if err != nil {
		u.log.Warnf("Failed to find service %s: %+v", req.ServiceID, err)
		return nil, err
	}
	if svc == nil || svc.ClinicID != clinicID || svc.IsActive == nil || !*svc.IsActive {
		return nil, ErrServiceNotFound
	}

	startDate, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}
	endTime, err := addMinutes(req.StartTime, svc.DurationMinutes)
	if err != nil {
		return nil, fmt.Errorf("invalid start time: %w", err)
	}

	// Step 3: Expand the recurrence into dates
	pattern := entity.RecurrencePattern(req.Recurrence)
	if req.Recurrence == "" {
		pattern = entity.RecurrenceNone
	}
	dates := pattern.Expand(startDate, req.Count)

	// The weekly schedule is read once; instances reuse it.
	windows, err := u.windowRepo.FindByProvider(ctx, u.db, req.ProviderID)
	if err != nil {
		u.log.Warnf("Failed to load windows for provider %s: %+v", req.ProviderID, err)
		return nil, err
	}
	windowByDay := make(map[int]entity.AvailabilityWindow, len(windows))
	for _, w := range windows {
		windowByDay[w.DayOfWeek] = w
	}

	// Calendar sync only applies when the plan includes it and somebody in
	// the clinic has a connected credential.
	var owner *service.CalendarOwner
	calendarAllowed, err := u.entitlementService.CanUseExternalCalendar(ctx, u.db, clinicID)
	if err != nil {
		u.log.Warnf("Failed to check calendar entitlement for clinic %s: %+v", clinicID, err)
		return nil, err
	}
	if calendarAllowed {
		owner, err = u.calendarService.ResolveOwner(ctx, req.ProviderID, clinicID)
		if err != nil {
			u.log.Warnf("Failed to resolve calendar owner for provider %s: %+v", req.ProviderID, err)
			return nil, err
		}
	}

	// Step 4: Book every instance inside one transaction
	var created []*entity.Appointment
	var events []createdEvent

	txErr := u.txManager.Do(ctx, func(tx *gorm.DB) error {
		for _, date := range dates {
			// Availability: zero windows means unconstrained; a partial week
			// closes the missing days.
			if len(windows) > 0 {
				window, exists := windowByDay[int(date.Weekday())]
				if !exists || !window.Contains(req.StartTime, endTime) {
					return fmt.Errorf("%w: %s", ErrProviderUnavailable, date.Format("2006-01-02"))
				}
			}

			exists, err := u.appointmentRepo.ExistsOverlap(ctx, tx, req.ProviderID, date, req.StartTime, endTime)
			if err != nil {
				u.log.Warnf("Failed to check slot conflict: %+v", err)
				return err
			}
			if exists {
				return fmt.Errorf("%w: %s %s", ErrSlotConflict, date.Format("2006-01-02"), req.StartTime)
			}

			appointment := &entity.Appointment{
				ClinicID:   clinicID,
				ProviderID: req.ProviderID,
				PatientID:  req.PatientID,
				ServiceID:  req.ServiceID,
				Date:       date,
				StartTime:  req.StartTime,
				EndTime:    endTime,
				Status:     entity.AppointmentStatusActive,
			}

			if owner != nil {
				eventID, err := u.calendarService.CreateEvent(ctx, appointment, owner)
				if err != nil {
					u.log.Errorf("Failed to create calendar event for %s: %+v", date.Format("2006-01-02"), err)
					return err
				}
				events = append(events, createdEvent{eventID: eventID, ownerID: owner.OwnerID})
				ownerID := owner.OwnerID
				appointment.CalendarEventID = &eventID
				appointment.CalendarOwnerID = &ownerID
			}

			if err := u.appointmentRepo.Create(ctx, tx, appointment); err != nil {
				// The partial unique index on (provider, date, start) closes
				// the race the overlap query leaves open.
				if isUniqueViolation(err) {
					return fmt.Errorf("%w: %s %s", ErrSlotConflict, date.Format("2006-01-02"), req.StartTime)
				}
				u.log.Warnf("Failed to insert appointment: %+v", err)
				return err
			}

			created = append(created, appointment)
		}
		return nil
	})

	// Step 5: COMPENSATE - the DB rows roll back with the transaction; the
	// calendar events have to be undone by hand.
	if txErr != nil {
		u.compensateCalendarEvents(events)
		return nil, txErr
	}

	// Step 6: Post-commit notifications, fire and forget
	for _, appointment := range created {
		if err := u.notificationService.AppointmentCreated(ctx, req.ProviderID, appointment); err != nil {
			u.log.Warnf("Failed to notify provider %s about appointment %s: %+v", req.ProviderID, appointment.ID, err)
		}
	}

	ids := make([]string, len(created))
	responses := make([]dto.AppointmentResponse, len(created))
	for i, appointment := range created {
		ids[i] = appointment.ID.String()
		responses[i] = *converter.AppointmentToResponse(appointment)
	}

	if err := u.auditService.LogCreate(ctx, u.db, &userID, entity.AuditActionAppointmentCreate, "appointment", fmt.Sprint(ids), req); err != nil {
		u.log.Warnf("Failed to audit appointment creation: %+v", err)
	}

	u.log.Infof("Appointments created: clinic=%s provider=%s count=%d", clinicID, req.ProviderID, len(created))
	return &dto.CreateAppointmentsResponse{
		Appointments: responses,
		Total:        len(responses),
	}, nil
}

// compensateCalendarEvents deletes the external events created during a failed
// booking batch. Uses a detached context so cancellation of the request does
// not leave orphaned events behind.
func (u *schedulingUsecase) compensateCalendarEvents(events []createdEvent) {
	if len(events) == 0 {
		return
	}

	compCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, event := range events {
		if err := u.calendarService.DeleteEvent(compCtx, event.eventID, event.ownerID); err != nil {
			u.log.Errorf("CRITICAL: Failed to delete calendar event %s during booking compensation: %+v", event.eventID, err)
		}
	}
}

// Cancel flips an active appointment to cancelada and removes its external
// calendar event.
//
// The local cancellation commits first: a dangling calendar event is
// recoverable, a ghost appointment blocking the slot is not. A failed event
// delete surfaces as an error even though the appointment is already
// cancelled.
func (u *schedulingUsecase) Cancel(ctx context.Context, appointmentID uuid.UUID) error {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return errors.New("user not found in context")
	}
	clinicID, ok := middleware.GetClinicIDFromContext(ctx)
	if !ok {
		return errors.New("clinic not found in context")
	}

	appointment, err := u.appointmentRepo.FindByID(ctx, u.db, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return err
	}
	if appointment == nil || appointment.ClinicID != clinicID {
		return ErrAppointmentNotFound
	}

	rows, err := u.appointmentRepo.CancelIfActive(ctx, u.db, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to cancel appointment %s: %+v", appointmentID, err)
		return err
	}
	if rows == 0 {
		return ErrAppointmentNotActive
	}

	if err := u.notificationService.AppointmentCancelled(ctx, appointment.ProviderID, appointment); err != nil {
		u.log.Warnf("Failed to notify cancellation of %s: %+v", appointmentID, err)
	}

	if err := u.auditService.LogUpdate(ctx, u.db, &userID, entity.AuditActionAppointmentCancel, "appointment", appointmentID.String(), string(appointment.Status), string(entity.AppointmentStatusCancelled)); err != nil {
		u.log.Warnf("Failed to audit cancellation of %s: %+v", appointmentID, err)
	}

	if appointment.HasCalendarEvent() && appointment.CalendarOwnerID != nil {
		if err := u.calendarService.DeleteEvent(ctx, *appointment.CalendarEventID, *appointment.CalendarOwnerID); err != nil {
			u.log.Errorf("CRITICAL: Orphaned calendar event %s for cancelled appointment %s: %+v", *appointment.CalendarEventID, appointmentID, err)
			return fmt.Errorf("%w: %v", ErrCalendarDeleteFailed, err)
		}
	}

	u.log.Infof("Appointment cancelled: id=%s", appointmentID)
	return nil
}

// Finalize closes an active appointment and writes its clinical note in the
// same transaction.
func (u *schedulingUsecase) Finalize(ctx context.Context, appointmentID uuid.UUID, req *dto.FinalizeAppointmentRequest) error {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return errors.New("user not found in context")
	}
	clinicID, ok := middleware.GetClinicIDFromContext(ctx)
	if !ok {
		return errors.New("clinic not found in context")
	}

	appointment, err := u.appointmentRepo.FindByID(ctx, u.db, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return err
	}
	if appointment == nil || appointment.ClinicID != clinicID {
		return ErrAppointmentNotFound
	}
	if !appointment.IsActive() {
		return ErrAppointmentNotActive
	}

	txErr := u.txManager.Do(ctx, func(tx *gorm.DB) error {
		appointment.Status = entity.AppointmentStatusFinalized
		if err := u.appointmentRepo.Update(ctx, tx, appointment); err != nil {
			u.log.Warnf("Failed to finalize appointment %s: %+v", appointmentID, err)
			return err
		}

		record := &entity.ClinicalRecord{
			AppointmentID: appointmentID,
			PatientID:     appointment.PatientID,
			Objective:     req.Objective,
			Process:       req.Process,
			Results:       req.Results,
		}
		if err := u.clinicalRecordRepo.Create(ctx, tx, record); err != nil {
			// A referenced row vanished between the lookup and the write.
			if isForeignKeyViolation(err) {
				return ErrAppointmentNotFound
			}
			u.log.Warnf("Failed to create clinical record for %s: %+v", appointmentID, err)
			return err
		}
		return nil
	})
	if txErr != nil {
		return txErr
	}

	if err := u.notificationService.AppointmentFinalized(ctx, appointment.ProviderID, appointment); err != nil {
		u.log.Warnf("Failed to notify finalization of %s: %+v", appointmentID, err)
	}

	if err := u.auditService.LogUpdate(ctx, u.db, &userID, entity.AuditActionAppointmentFinalize, "appointment", appointmentID.String(), string(entity.AppointmentStatusActive), string(entity.AppointmentStatusFinalized)); err != nil {
		u.log.Warnf("Failed to audit finalization of %s: %+v", appointmentID, err)
	}

	u.log.Infof("Appointment finalized: id=%s", appointmentID)
	return nil
}

// GetDayAvailability returns the provider's window and active appointments for
// one date, or the code explaining why the day is closed.
func (u *schedulingUsecase) GetDayAvailability(ctx context.Context, providerID uuid.UUID, date time.Time) (*dto.DayAvailabilityResponse, error) {
	windows, err := u.windowRepo.FindByProvider(ctx, u.db, providerID)
	if err != nil {
		u.log.Warnf("Failed to load windows for provider %s: %+v", providerID, err)
		return nil, err
	}

	// Active appointments are reported on every path. A provider with no
	// schedule at all is unconstrained and can still hold bookings that day.
	appointments, err := u.appointmentRepo.FindActiveByProviderAndDate(ctx, u.db, providerID, date)
	if err != nil {
		u.log.Warnf("Failed to load appointments for provider %s on %s: %+v", providerID, date.Format("2006-01-02"), err)
		return nil, err
	}

	response := &dto.DayAvailabilityResponse{
		ProviderID:   providerID,
		Date:         date.Format("2006-01-02"),
		Appointments: converter.AppointmentsToResponses(appointments),
	}

	if len(windows) == 0 {
		response.Code = AvailabilityCodeNotConfigured
		return response, nil
	}

	var window *entity.AvailabilityWindow
	for i := range windows {
		if windows[i].DayOfWeek == int(date.Weekday()) {
			window = &windows[i]
			break
		}
	}
	if window == nil {
		response.Code = AvailabilityCodeUnavailable
		return response, nil
	}

	response.Window = converter.WindowToResponse(window)
	return response, nil
}

// addMinutes advances an HH:MM clock time by the given number of minutes.
// Slots are confined to a single day: an end past midnight would wrap to a
// string that sorts before its own start and break every interval comparison.
func addMinutes(clock string, minutes int) (string, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return "", err
	}
	end := t.Add(time.Duration(minutes) * time.Minute)
	if end.Day() != t.Day() {
		return "", ErrSlotPastMidnight
	}
	return end.Format("15:04"), nil
}
