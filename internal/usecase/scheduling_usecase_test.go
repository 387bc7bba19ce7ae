package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"clinic-management-api/internal/delivery/dto"
	"clinic-management-api/internal/delivery/http/middleware"
	"clinic-management-api/internal/domain/entity"
	"clinic-management-api/internal/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// In-memory fakes. The transaction fake passes a nil handle through, which the
// fakes ignore; rollback semantics are asserted via the compensation calls.

type fakeTxManager struct{}

func (f *fakeTxManager) Do(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type fakeAppointmentRepo struct {
	appointments []*entity.Appointment
	createErr    error
}

func (f *fakeAppointmentRepo) Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	if f.createErr != nil {
		return f.createErr
	}
	appointment.ID = uuid.New()
	stored := *appointment
	f.appointments = append(f.appointments, &stored)
	return nil
}

func (f *fakeAppointmentRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	for _, a := range f.appointments {
		if a.ID == id {
			found := *a
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeAppointmentRepo) ExistsOverlap(ctx context.Context, db *gorm.DB, providerID uuid.UUID, date time.Time, startTime, endTime string) (bool, error) {
	for _, a := range f.appointments {
		if a.ProviderID == providerID && a.Date.Equal(date) && a.IsActive() && a.Overlaps(startTime, endTime) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAppointmentRepo) FindActiveByProviderAndDate(ctx context.Context, db *gorm.DB, providerID uuid.UUID, date time.Time) ([]entity.Appointment, error) {
	var result []entity.Appointment
	for _, a := range f.appointments {
		if a.ProviderID == providerID && a.Date.Equal(date) && a.IsActive() {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (f *fakeAppointmentRepo) Update(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	for i, a := range f.appointments {
		if a.ID == appointment.ID {
			updated := *appointment
			f.appointments[i] = &updated
			return nil
		}
	}
	return nil
}

func (f *fakeAppointmentRepo) CancelIfActive(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	for _, a := range f.appointments {
		if a.ID == id && a.IsActive() {
			a.Status = entity.AppointmentStatusCancelled
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeAppointmentRepo) DeleteByIDs(ctx context.Context, db *gorm.DB, ids []uuid.UUID) error {
	return nil
}

func (f *fakeAppointmentRepo) CountActiveByClinic(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) (int64, error) {
	var count int64
	for _, a := range f.appointments {
		if a.ClinicID == clinicID && a.IsActive() {
			count++
		}
	}
	return count, nil
}

func (f *fakeAppointmentRepo) FindByClinic(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) ([]entity.Appointment, error) {
	var result []entity.Appointment
	for _, a := range f.appointments {
		if a.ClinicID == clinicID {
			result = append(result, *a)
		}
	}
	return result, nil
}

type fakeWindowRepo struct {
	windows []entity.AvailabilityWindow
}

func (f *fakeWindowRepo) FindByProvider(ctx context.Context, db *gorm.DB, providerID uuid.UUID) ([]entity.AvailabilityWindow, error) {
	var result []entity.AvailabilityWindow
	for _, w := range f.windows {
		if w.ProviderID == providerID {
			result = append(result, w)
		}
	}
	return result, nil
}

func (f *fakeWindowRepo) FindByProviderAndDay(ctx context.Context, db *gorm.DB, providerID uuid.UUID, dayOfWeek int) (*entity.AvailabilityWindow, error) {
	for _, w := range f.windows {
		if w.ProviderID == providerID && w.DayOfWeek == dayOfWeek {
			found := w
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeWindowRepo) CountByProvider(ctx context.Context, db *gorm.DB, providerID uuid.UUID) (int64, error) {
	var count int64
	for _, w := range f.windows {
		if w.ProviderID == providerID {
			count++
		}
	}
	return count, nil
}

func (f *fakeWindowRepo) ReplaceWeek(ctx context.Context, db *gorm.DB, providerID uuid.UUID, windows []entity.AvailabilityWindow) error {
	var kept []entity.AvailabilityWindow
	for _, w := range f.windows {
		if w.ProviderID != providerID {
			kept = append(kept, w)
		}
	}
	f.windows = append(kept, windows...)
	return nil
}

type fakeProviderRepo struct {
	profiles map[uuid.UUID]*entity.ProviderProfile
}

func (f *fakeProviderRepo) Create(ctx context.Context, db *gorm.DB, profile *entity.ProviderProfile) error {
	f.profiles[profile.UserID] = profile
	return nil
}

func (f *fakeProviderRepo) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.ProviderProfile, error) {
	return f.profiles[userID], nil
}

func (f *fakeProviderRepo) FindByClinic(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) ([]entity.ProviderProfile, error) {
	return nil, nil
}

func (f *fakeProviderRepo) Update(ctx context.Context, db *gorm.DB, profile *entity.ProviderProfile) error {
	return nil
}

func (f *fakeProviderRepo) Delete(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error) {
	return 1, nil
}

type fakePatientRepo struct {
	patients map[uuid.UUID]*entity.Patient
}

func (f *fakePatientRepo) Create(ctx context.Context, db *gorm.DB, patient *entity.Patient) error {
	patient.ID = uuid.New()
	f.patients[patient.ID] = patient
	return nil
}

func (f *fakePatientRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	return f.patients[id], nil
}

func (f *fakePatientRepo) FindByClinic(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) ([]entity.Patient, error) {
	return nil, nil
}

func (f *fakePatientRepo) CountByClinic(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) (int64, error) {
	return int64(len(f.patients)), nil
}

type fakeServiceRepo struct {
	services map[uuid.UUID]*entity.Service
}

func (f *fakeServiceRepo) Create(ctx context.Context, db *gorm.DB, svc *entity.Service) error {
	svc.ID = uuid.New()
	f.services[svc.ID] = svc
	return nil
}

func (f *fakeServiceRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Service, error) {
	return f.services[id], nil
}

func (f *fakeServiceRepo) FindByClinic(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) ([]entity.Service, error) {
	return nil, nil
}

func (f *fakeServiceRepo) CountByClinic(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) (int64, error) {
	return int64(len(f.services)), nil
}

func (f *fakeServiceRepo) Update(ctx context.Context, db *gorm.DB, svc *entity.Service) error {
	return nil
}

func (f *fakeServiceRepo) Deactivate(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	return 1, nil
}

type fakeClinicalRecordRepo struct {
	records   []*entity.ClinicalRecord
	createErr error
}

func (f *fakeClinicalRecordRepo) Create(ctx context.Context, db *gorm.DB, record *entity.ClinicalRecord) error {
	if f.createErr != nil {
		return f.createErr
	}
	record.ID = uuid.New()
	f.records = append(f.records, record)
	return nil
}

type fakeEntitlementService struct {
	canAppointment bool
	canCalendar    bool
}

func (f *fakeEntitlementService) CanCreateAppointment(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) (bool, error) {
	return f.canAppointment, nil
}

func (f *fakeEntitlementService) CanCreatePatient(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) (bool, error) {
	return true, nil
}

func (f *fakeEntitlementService) CanCreateService(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) (bool, error) {
	return true, nil
}

func (f *fakeEntitlementService) CanCreateUser(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) (bool, error) {
	return true, nil
}

func (f *fakeEntitlementService) CanUseExternalCalendar(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) (bool, error) {
	return f.canCalendar, nil
}

func (f *fakeEntitlementService) CanUploadPatientFile(ctx context.Context, db *gorm.DB, clinicID, patientID uuid.UUID) (*service.FileQuota, error) {
	return &service.FileQuota{Allowed: true}, nil
}

type fakeCalendarService struct {
	owner         *service.CalendarOwner
	failCreateAt  int // 1-based index of the CreateEvent call that fails, 0 = never
	deleteErr     error
	createdEvents []string
	deletedEvents []string
}

func (f *fakeCalendarService) ResolveOwner(ctx context.Context, providerID, clinicID uuid.UUID) (*service.CalendarOwner, error) {
	return f.owner, nil
}

func (f *fakeCalendarService) CreateEvent(ctx context.Context, appointment *entity.Appointment, owner *service.CalendarOwner) (string, error) {
	if f.failCreateAt > 0 && len(f.createdEvents)+1 == f.failCreateAt {
		return "", errors.New("calendar api unavailable")
	}
	eventID := fmt.Sprintf("evt-%d", len(f.createdEvents)+1)
	f.createdEvents = append(f.createdEvents, eventID)
	return eventID, nil
}

func (f *fakeCalendarService) DeleteEvent(ctx context.Context, eventID string, ownerID uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedEvents = append(f.deletedEvents, eventID)
	return nil
}

type fakeNotificationService struct {
	created   []uuid.UUID
	cancelled []uuid.UUID
	finalized []uuid.UUID
}

func (f *fakeNotificationService) AppointmentCreated(ctx context.Context, providerID uuid.UUID, appointment *entity.Appointment) error {
	f.created = append(f.created, appointment.ID)
	return nil
}

func (f *fakeNotificationService) AppointmentCancelled(ctx context.Context, providerID uuid.UUID, appointment *entity.Appointment) error {
	f.cancelled = append(f.cancelled, appointment.ID)
	return nil
}

func (f *fakeNotificationService) AppointmentFinalized(ctx context.Context, providerID uuid.UUID, appointment *entity.Appointment) error {
	f.finalized = append(f.finalized, appointment.ID)
	return nil
}

type fakeAuditService struct{}

func (f *fakeAuditService) LogCreate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action, entityName, entityID string, newValue interface{}) error {
	return nil
}

func (f *fakeAuditService) LogUpdate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action, entityName, entityID string, oldValue, newValue interface{}) error {
	return nil
}

func (f *fakeAuditService) LogDelete(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action, entityName, entityID string, oldValue interface{}) error {
	return nil
}

type schedulingFixture struct {
	usecase      SchedulingUsecase
	clinicID     uuid.UUID
	userID       uuid.UUID
	providerID   uuid.UUID
	patientID    uuid.UUID
	serviceID    uuid.UUID
	appointments *fakeAppointmentRepo
	windows      *fakeWindowRepo
	calendar     *fakeCalendarService
	notifier     *fakeNotificationService
	entitlement  *fakeEntitlementService
	records      *fakeClinicalRecordRepo
}

func newSchedulingFixture() *schedulingFixture {
	clinicID := uuid.New()
	providerID := uuid.New()

	providerRepo := &fakeProviderRepo{profiles: map[uuid.UUID]*entity.ProviderProfile{
		providerID: {
			UserID: providerID,
			User:   entity.User{ID: providerID, ClinicID: clinicID},
		},
	}}

	patientRepo := &fakePatientRepo{patients: map[uuid.UUID]*entity.Patient{}}
	patient := &entity.Patient{ClinicID: clinicID, FullName: "Ana Gomez"}
	patientRepo.Create(context.Background(), nil, patient)

	active := true
	serviceRepo := &fakeServiceRepo{services: map[uuid.UUID]*entity.Service{}}
	svc := &entity.Service{ClinicID: clinicID, Name: "Consulta general", DurationMinutes: 30, IsActive: &active}
	serviceRepo.Create(context.Background(), nil, svc)

	f := &schedulingFixture{
		clinicID:     clinicID,
		userID:       uuid.New(),
		providerID:   providerID,
		patientID:    patient.ID,
		serviceID:    svc.ID,
		appointments: &fakeAppointmentRepo{},
		windows:      &fakeWindowRepo{},
		calendar:     &fakeCalendarService{},
		notifier:     &fakeNotificationService{},
		entitlement:  &fakeEntitlementService{canAppointment: true},
		records:      &fakeClinicalRecordRepo{},
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	f.usecase = NewSchedulingUsecase(
		nil,
		log,
		&fakeTxManager{},
		f.appointments,
		f.windows,
		providerRepo,
		patientRepo,
		serviceRepo,
		f.records,
		f.entitlement,
		f.calendar,
		f.notifier,
		&fakeAuditService{},
	)
	return f
}

func (f *schedulingFixture) ctx() context.Context {
	ctx := context.WithValue(context.Background(), middleware.UserIDKey, f.userID)
	return context.WithValue(ctx, middleware.ClinicIDKey, f.clinicID)
}

func (f *schedulingFixture) request() *dto.CreateAppointmentRequest {
	return &dto.CreateAppointmentRequest{
		ProviderID: f.providerID,
		PatientID:  f.patientID,
		ServiceID:  f.serviceID,
		Date:       "2025-03-10", // a Monday
		StartTime:  "10:00",
	}
}

func TestCreateRecurringAppointments_SingleBooking(t *testing.T) {
	f := newSchedulingFixture()

	result, err := f.usecase.CreateRecurringAppointments(f.ctx(), f.request())
	require.NoError(t, err)
	require.Equal(t, 1, result.Total)

	created := result.Appointments[0]
	assert.Equal(t, "2025-03-10", created.Date)
	assert.Equal(t, "10:00", created.StartTime)
	assert.Equal(t, "10:30", created.EndTime) // 30 minute service
	assert.Equal(t, string(entity.AppointmentStatusActive), created.Status)
	assert.Len(t, f.notifier.created, 1)
}

func TestCreateRecurringAppointments_QuotaDeniedProducesNoWrites(t *testing.T) {
	f := newSchedulingFixture()
	f.entitlement.canAppointment = false

	_, err := f.usecase.CreateRecurringAppointments(f.ctx(), f.request())
	assert.ErrorIs(t, err, ErrAppointmentQuota)
	assert.Empty(t, f.appointments.appointments)
	assert.Empty(t, f.calendar.createdEvents)
	assert.Empty(t, f.notifier.created)
}

func TestCreateRecurringAppointments_WeeklyExpansion(t *testing.T) {
	f := newSchedulingFixture()

	req := f.request()
	req.Recurrence = string(entity.RecurrenceWeekly)
	req.Count = 4

	result, err := f.usecase.CreateRecurringAppointments(f.ctx(), req)
	require.NoError(t, err)
	require.Equal(t, 4, result.Total)

	expected := []string{"2025-03-10", "2025-03-17", "2025-03-24", "2025-03-31"}
	for i, appointment := range result.Appointments {
		assert.Equal(t, expected[i], appointment.Date)
		assert.Equal(t, "10:00", appointment.StartTime)
	}
	assert.Len(t, f.notifier.created, 4)
}

func TestCreateRecurringAppointments_ConflictFailsWholeBatch(t *testing.T) {
	f := newSchedulingFixture()
	f.calendar.owner = &service.CalendarOwner{OwnerID: uuid.New()}
	f.entitlement.canCalendar = true

	// Occupy the slot of the third weekly instance.
	f.appointments.appointments = append(f.appointments.appointments, &entity.Appointment{
		ID:         uuid.New(),
		ClinicID:   f.clinicID,
		ProviderID: f.providerID,
		Date:       time.Date(2025, time.March, 24, 0, 0, 0, 0, time.UTC),
		StartTime:  "10:15",
		EndTime:    "10:45",
		Status:     entity.AppointmentStatusActive,
	})

	req := f.request()
	req.Recurrence = string(entity.RecurrenceWeekly)
	req.Count = 4

	_, err := f.usecase.CreateRecurringAppointments(f.ctx(), req)
	assert.ErrorIs(t, err, ErrSlotConflict)

	// Events made for the first two instances must be compensated.
	assert.Equal(t, f.calendar.createdEvents, f.calendar.deletedEvents)
	assert.Empty(t, f.notifier.created)
}

func TestCreateRecurringAppointments_CancelledSlotDoesNotBlock(t *testing.T) {
	f := newSchedulingFixture()

	f.appointments.appointments = append(f.appointments.appointments, &entity.Appointment{
		ID:         uuid.New(),
		ClinicID:   f.clinicID,
		ProviderID: f.providerID,
		Date:       time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		StartTime:  "10:00",
		EndTime:    "10:30",
		Status:     entity.AppointmentStatusCancelled,
	})

	result, err := f.usecase.CreateRecurringAppointments(f.ctx(), f.request())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)
}

func TestCreateRecurringAppointments_MissingDayWindowFails(t *testing.T) {
	f := newSchedulingFixture()

	// Schedule covers Tuesday only; the request lands on Monday.
	f.windows.windows = []entity.AvailabilityWindow{
		{ProviderID: f.providerID, DayOfWeek: 2, StartTime: "09:00", EndTime: "17:00"},
	}

	_, err := f.usecase.CreateRecurringAppointments(f.ctx(), f.request())
	assert.ErrorIs(t, err, ErrProviderUnavailable)
	assert.Empty(t, f.appointments.appointments)
}

func TestCreateRecurringAppointments_SlotOutsideWindowFails(t *testing.T) {
	f := newSchedulingFixture()

	f.windows.windows = []entity.AvailabilityWindow{
		{ProviderID: f.providerID, DayOfWeek: 1, StartTime: "09:00", EndTime: "10:15"},
	}

	_, err := f.usecase.CreateRecurringAppointments(f.ctx(), f.request())
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestCreateRecurringAppointments_ZeroWindowsIsUnconstrained(t *testing.T) {
	f := newSchedulingFixture()

	result, err := f.usecase.CreateRecurringAppointments(f.ctx(), f.request())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)
}

func TestCreateRecurringAppointments_CalendarSkippedWithoutOwner(t *testing.T) {
	f := newSchedulingFixture()
	f.entitlement.canCalendar = true
	f.calendar.owner = nil

	result, err := f.usecase.CreateRecurringAppointments(f.ctx(), f.request())
	require.NoError(t, err)
	assert.Empty(t, f.calendar.createdEvents)
	assert.Nil(t, result.Appointments[0].CalendarEventID)
}

func TestCreateRecurringAppointments_CalendarFailureCompensates(t *testing.T) {
	f := newSchedulingFixture()
	f.entitlement.canCalendar = true
	f.calendar.owner = &service.CalendarOwner{OwnerID: uuid.New()}
	f.calendar.failCreateAt = 3

	req := f.request()
	req.Recurrence = string(entity.RecurrenceDaily)
	req.Count = 3

	_, err := f.usecase.CreateRecurringAppointments(f.ctx(), req)
	require.Error(t, err)
	assert.Equal(t, f.calendar.createdEvents, f.calendar.deletedEvents)
	assert.Empty(t, f.notifier.created)
}

func TestCancel_FlipsStatusAndRemovesEvent(t *testing.T) {
	f := newSchedulingFixture()
	f.entitlement.canCalendar = true
	f.calendar.owner = &service.CalendarOwner{OwnerID: uuid.New()}

	result, err := f.usecase.CreateRecurringAppointments(f.ctx(), f.request())
	require.NoError(t, err)
	appointmentID := result.Appointments[0].ID

	require.NoError(t, f.usecase.Cancel(f.ctx(), appointmentID))

	stored, err := f.appointments.FindByID(context.Background(), nil, appointmentID)
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentStatusCancelled, stored.Status)
	assert.Equal(t, f.calendar.createdEvents, f.calendar.deletedEvents)
	assert.Len(t, f.notifier.cancelled, 1)
}

func TestCancel_NotFound(t *testing.T) {
	f := newSchedulingFixture()

	err := f.usecase.Cancel(f.ctx(), uuid.New())
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestCancel_AlreadyTerminalIsRejected(t *testing.T) {
	f := newSchedulingFixture()

	result, err := f.usecase.CreateRecurringAppointments(f.ctx(), f.request())
	require.NoError(t, err)
	appointmentID := result.Appointments[0].ID

	require.NoError(t, f.usecase.Cancel(f.ctx(), appointmentID))
	err = f.usecase.Cancel(f.ctx(), appointmentID)
	assert.ErrorIs(t, err, ErrAppointmentNotActive)
	assert.Empty(t, f.calendar.deletedEvents)
}

func TestCancel_WithoutEventNeverCallsBridge(t *testing.T) {
	f := newSchedulingFixture()

	result, err := f.usecase.CreateRecurringAppointments(f.ctx(), f.request())
	require.NoError(t, err)

	require.NoError(t, f.usecase.Cancel(f.ctx(), result.Appointments[0].ID))
	assert.Empty(t, f.calendar.deletedEvents)
	assert.Len(t, f.notifier.cancelled, 1)
}

func TestCancel_EventDeleteFailureSurfacesAfterLocalCancel(t *testing.T) {
	f := newSchedulingFixture()
	f.entitlement.canCalendar = true
	f.calendar.owner = &service.CalendarOwner{OwnerID: uuid.New()}

	result, err := f.usecase.CreateRecurringAppointments(f.ctx(), f.request())
	require.NoError(t, err)
	appointmentID := result.Appointments[0].ID

	f.calendar.deleteErr = errors.New("calendar api unavailable")

	err = f.usecase.Cancel(f.ctx(), appointmentID)
	assert.ErrorIs(t, err, ErrCalendarDeleteFailed)

	// The local cancellation holds even though the event delete failed.
	stored, findErr := f.appointments.FindByID(context.Background(), nil, appointmentID)
	require.NoError(t, findErr)
	assert.Equal(t, entity.AppointmentStatusCancelled, stored.Status)
}

func TestCancel_OtherClinicAppointmentLooksMissing(t *testing.T) {
	f := newSchedulingFixture()

	foreign := &entity.Appointment{
		ID:         uuid.New(),
		ClinicID:   uuid.New(),
		ProviderID: f.providerID,
		Date:       time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		StartTime:  "12:00",
		EndTime:    "12:30",
		Status:     entity.AppointmentStatusActive,
	}
	f.appointments.appointments = append(f.appointments.appointments, foreign)

	err := f.usecase.Cancel(f.ctx(), foreign.ID)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestFinalize_WritesClinicalRecord(t *testing.T) {
	f := newSchedulingFixture()

	result, err := f.usecase.CreateRecurringAppointments(f.ctx(), f.request())
	require.NoError(t, err)
	appointmentID := result.Appointments[0].ID

	note := &dto.FinalizeAppointmentRequest{
		Objective: "Dolor lumbar",
		Process:   "Evaluacion y terapia manual",
		Results:   "Mejoria parcial, continuar tratamiento",
	}
	require.NoError(t, f.usecase.Finalize(f.ctx(), appointmentID, note))

	stored, err := f.appointments.FindByID(context.Background(), nil, appointmentID)
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentStatusFinalized, stored.Status)

	require.Len(t, f.records.records, 1)
	assert.Equal(t, appointmentID, f.records.records[0].AppointmentID)
	assert.Equal(t, f.patientID, f.records.records[0].PatientID)
	assert.Len(t, f.notifier.finalized, 1)
}

func TestFinalize_NonActiveIsRejected(t *testing.T) {
	f := newSchedulingFixture()

	result, err := f.usecase.CreateRecurringAppointments(f.ctx(), f.request())
	require.NoError(t, err)
	appointmentID := result.Appointments[0].ID
	require.NoError(t, f.usecase.Cancel(f.ctx(), appointmentID))

	note := &dto.FinalizeAppointmentRequest{Objective: "a", Process: "b", Results: "c"}
	err = f.usecase.Finalize(f.ctx(), appointmentID, note)
	assert.ErrorIs(t, err, ErrAppointmentNotActive)
	assert.Empty(t, f.records.records)
}

func TestCreateRecurringAppointments_RejectsSlotPastMidnight(t *testing.T) {
	f := newSchedulingFixture()

	req := f.request()
	req.StartTime = "23:45" // 30 minute service would end 00:15 next day

	_, err := f.usecase.CreateRecurringAppointments(f.ctx(), req)
	assert.ErrorIs(t, err, ErrSlotPastMidnight)
	assert.Empty(t, f.appointments.appointments)
}

func TestFinalize_VanishedReferenceReadsAsNotFound(t *testing.T) {
	f := newSchedulingFixture()

	result, err := f.usecase.CreateRecurringAppointments(f.ctx(), f.request())
	require.NoError(t, err)

	f.records.createErr = &pgconn.PgError{Code: "23503"}

	note := &dto.FinalizeAppointmentRequest{Objective: "a", Process: "b", Results: "c"}
	err = f.usecase.Finalize(f.ctx(), result.Appointments[0].ID, note)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestGetDayAvailability_Codes(t *testing.T) {
	f := newSchedulingFixture()
	monday := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	t.Run("no windows at all", func(t *testing.T) {
		result, err := f.usecase.GetDayAvailability(f.ctx(), f.providerID, monday)
		require.NoError(t, err)
		assert.Equal(t, AvailabilityCodeNotConfigured, result.Code)
	})

	t.Run("unconstrained provider still lists bookings", func(t *testing.T) {
		_, err := f.usecase.CreateRecurringAppointments(f.ctx(), f.request())
		require.NoError(t, err)

		result, err := f.usecase.GetDayAvailability(f.ctx(), f.providerID, monday)
		require.NoError(t, err)
		assert.Equal(t, AvailabilityCodeNotConfigured, result.Code)
		require.Len(t, result.Appointments, 1)
		assert.Equal(t, "10:00", result.Appointments[0].StartTime)

		require.NoError(t, f.usecase.Cancel(f.ctx(), result.Appointments[0].ID))
	})

	t.Run("windows exist but not this day", func(t *testing.T) {
		f.windows.windows = []entity.AvailabilityWindow{
			{ProviderID: f.providerID, DayOfWeek: 2, StartTime: "09:00", EndTime: "17:00"},
		}

		// Booked before the schedule was narrowed; still reported.
		leftover := &entity.Appointment{
			ID:         uuid.New(),
			ClinicID:   f.clinicID,
			ProviderID: f.providerID,
			Date:       monday,
			StartTime:  "12:00",
			EndTime:    "12:30",
			Status:     entity.AppointmentStatusActive,
		}
		f.appointments.appointments = append(f.appointments.appointments, leftover)

		result, err := f.usecase.GetDayAvailability(f.ctx(), f.providerID, monday)
		require.NoError(t, err)
		assert.Equal(t, AvailabilityCodeUnavailable, result.Code)
		require.Len(t, result.Appointments, 1)
		assert.Equal(t, "12:00", result.Appointments[0].StartTime)

		leftover.Status = entity.AppointmentStatusCancelled
	})

	t.Run("open day lists active appointments", func(t *testing.T) {
		f.windows.windows = []entity.AvailabilityWindow{
			{ProviderID: f.providerID, DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00"},
		}

		_, err := f.usecase.CreateRecurringAppointments(f.ctx(), f.request())
		require.NoError(t, err)

		result, err := f.usecase.GetDayAvailability(f.ctx(), f.providerID, monday)
		require.NoError(t, err)
		assert.Empty(t, result.Code)
		require.NotNil(t, result.Window)
		assert.Equal(t, "09:00", result.Window.StartTime)
		require.Len(t, result.Appointments, 1)
		assert.Equal(t, "10:00", result.Appointments[0].StartTime)
	})
}
