package service

import (
	"context"
	"io"
	"testing"
	"time"

	"clinic-management-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeClinicRepo struct {
	clinic *entity.Clinic
}

func (f *fakeClinicRepo) Create(ctx context.Context, db *gorm.DB, clinic *entity.Clinic) error {
	return nil
}

func (f *fakeClinicRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Clinic, error) {
	return f.clinic, nil
}

type fakeUserRepo struct {
	count int64
	admin *entity.User
}

func (f *fakeUserRepo) Create(ctx context.Context, db *gorm.DB, user *entity.User) error { return nil }
func (f *fakeUserRepo) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) FindAdminByClinic(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) (*entity.User, error) {
	return f.admin, nil
}
func (f *fakeUserRepo) CountByClinic(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) (int64, error) {
	return f.count, nil
}
func (f *fakeUserRepo) Update(ctx context.Context, db *gorm.DB, user *entity.User) error { return nil }

type fakePatientRepo struct {
	count int64
}

func (f *fakePatientRepo) Create(ctx context.Context, db *gorm.DB, patient *entity.Patient) error {
	return nil
}
func (f *fakePatientRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	return nil, nil
}
func (f *fakePatientRepo) FindByClinic(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) ([]entity.Patient, error) {
	return nil, nil
}
func (f *fakePatientRepo) CountByClinic(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) (int64, error) {
	return f.count, nil
}

type fakePatientFileRepo struct {
	count int64
}

func (f *fakePatientFileRepo) Create(ctx context.Context, db *gorm.DB, file *entity.PatientFile) error {
	return nil
}
func (f *fakePatientFileRepo) CountByPatient(ctx context.Context, db *gorm.DB, patientID uuid.UUID) (int64, error) {
	return f.count, nil
}

type fakeServiceRepo struct {
	count int64
}

func (f *fakeServiceRepo) Create(ctx context.Context, db *gorm.DB, service *entity.Service) error {
	return nil
}
func (f *fakeServiceRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Service, error) {
	return nil, nil
}
func (f *fakeServiceRepo) FindByClinic(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) ([]entity.Service, error) {
	return nil, nil
}
func (f *fakeServiceRepo) CountByClinic(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) (int64, error) {
	return f.count, nil
}
func (f *fakeServiceRepo) Update(ctx context.Context, db *gorm.DB, service *entity.Service) error {
	return nil
}
func (f *fakeServiceRepo) Deactivate(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	return 1, nil
}

type fakeAppointmentCounter struct {
	count int64
}

func (f *fakeAppointmentCounter) Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	return nil
}
func (f *fakeAppointmentCounter) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointmentCounter) ExistsOverlap(ctx context.Context, db *gorm.DB, providerID uuid.UUID, date time.Time, startTime, endTime string) (bool, error) {
	return false, nil
}
func (f *fakeAppointmentCounter) FindActiveByProviderAndDate(ctx context.Context, db *gorm.DB, providerID uuid.UUID, date time.Time) ([]entity.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointmentCounter) Update(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	return nil
}
func (f *fakeAppointmentCounter) CancelIfActive(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	return 1, nil
}
func (f *fakeAppointmentCounter) DeleteByIDs(ctx context.Context, db *gorm.DB, ids []uuid.UUID) error {
	return nil
}
func (f *fakeAppointmentCounter) CountActiveByClinic(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) (int64, error) {
	return f.count, nil
}
func (f *fakeAppointmentCounter) FindByClinic(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) ([]entity.Appointment, error) {
	return nil, nil
}

func intPtr(v int) *int { return &v }

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestEntitlementService(plan entity.Plan, counts map[string]int64) EntitlementService {
	clinic := &entity.Clinic{ID: uuid.New(), Name: "Clinica Norte", Plan: plan}
	return NewEntitlementService(
		testLogger(),
		&fakeClinicRepo{clinic: clinic},
		&fakeUserRepo{count: counts["users"]},
		&fakePatientRepo{count: counts["patients"]},
		&fakePatientFileRepo{count: counts["files"]},
		&fakeServiceRepo{count: counts["services"]},
		&fakeAppointmentCounter{count: counts["appointments"]},
	)
}

func TestEntitlementService_NilMaxIsUnlimited(t *testing.T) {
	svc := newTestEntitlementService(
		entity.Plan{Name: "ilimitado"},
		map[string]int64{"appointments": 1_000_000, "patients": 1_000_000, "services": 1_000_000, "users": 1_000_000},
	)

	ctx := context.Background()
	clinicID := uuid.New()

	for name, check := range map[string]func() (bool, error){
		"appointments": func() (bool, error) { return svc.CanCreateAppointment(ctx, nil, clinicID) },
		"patients":     func() (bool, error) { return svc.CanCreatePatient(ctx, nil, clinicID) },
		"services":     func() (bool, error) { return svc.CanCreateService(ctx, nil, clinicID) },
		"users":        func() (bool, error) { return svc.CanCreateUser(ctx, nil, clinicID) },
	} {
		allowed, err := check()
		require.NoError(t, err, name)
		assert.True(t, allowed, name)
	}
}

func TestEntitlementService_DeniesAtLimit(t *testing.T) {
	svc := newTestEntitlementService(
		entity.Plan{Name: "basico", MaxAppointments: intPtr(50)},
		map[string]int64{"appointments": 50},
	)

	allowed, err := svc.CanCreateAppointment(context.Background(), nil, uuid.New())
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestEntitlementService_AllowsBelowLimit(t *testing.T) {
	svc := newTestEntitlementService(
		entity.Plan{Name: "basico", MaxAppointments: intPtr(50)},
		map[string]int64{"appointments": 49},
	)

	allowed, err := svc.CanCreateAppointment(context.Background(), nil, uuid.New())
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestEntitlementService_CalendarFollowsPlanFlag(t *testing.T) {
	ctx := context.Background()

	withCalendar := newTestEntitlementService(entity.Plan{Name: "profesional", CalendarIntegration: true}, nil)
	allowed, err := withCalendar.CanUseExternalCalendar(ctx, nil, uuid.New())
	require.NoError(t, err)
	assert.True(t, allowed)

	withoutCalendar := newTestEntitlementService(entity.Plan{Name: "basico"}, nil)
	allowed, err = withoutCalendar.CanUseExternalCalendar(ctx, nil, uuid.New())
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestEntitlementService_FileQuotaDetail(t *testing.T) {
	svc := newTestEntitlementService(
		entity.Plan{Name: "basico", MaxPatientFiles: intPtr(5)},
		map[string]int64{"files": 5},
	)

	quota, err := svc.CanUploadPatientFile(context.Background(), nil, uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.False(t, quota.Allowed)
	require.NotNil(t, quota.Limit)
	assert.Equal(t, 5, *quota.Limit)
	assert.Equal(t, int64(5), quota.CurrentCount)
}

func TestEntitlementService_ClinicNotFound(t *testing.T) {
	svc := NewEntitlementService(
		testLogger(),
		&fakeClinicRepo{clinic: nil},
		&fakeUserRepo{},
		&fakePatientRepo{},
		&fakePatientFileRepo{},
		&fakeServiceRepo{},
		&fakeAppointmentCounter{},
	)

	_, err := svc.CanCreateAppointment(context.Background(), nil, uuid.New())
	assert.ErrorIs(t, err, ErrClinicNotFound)
}
