package service

import (
	"context"
	"errors"

	"clinic-management-api/internal/domain/entity"
	"clinic-management-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrClinicNotFound is returned when an entitlement check references a clinic
// that does not exist.
var ErrClinicNotFound = errors.New("clinic not found")

// FileQuota is the detailed answer of the patient-file check, used by the file
// upload surface to render limit information.
type FileQuota struct {
	Allowed      bool  `json:"allowed"`
	Limit        *int  `json:"limit,omitempty"`
	CurrentCount int64 `json:"current_count"`
}

// EntitlementService answers plan-quota questions for a clinic. Each check
// compares a live count against the plan-configured maximum; a nil maximum
// means unlimited.
type EntitlementService interface {
	CanCreateAppointment(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) (bool, error)
	CanCreatePatient(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) (bool, error)
	CanCreateService(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) (bool, error)
	CanCreateUser(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) (bool, error)
	CanUseExternalCalendar(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) (bool, error)
	CanUploadPatientFile(ctx context.Context, db *gorm.DB, clinicID, patientID uuid.UUID) (*FileQuota, error)
}

type entitlementService struct {
	log             *logrus.Logger
	clinicRepo      repository.ClinicRepository
	userRepo        repository.UserRepository
	patientRepo     repository.PatientRepository
	patientFileRepo repository.PatientFileRepository
	serviceRepo     repository.ServiceRepository
	appointmentRepo repository.AppointmentRepository
}

func NewEntitlementService(
	log *logrus.Logger,
	clinicRepo repository.ClinicRepository,
	userRepo repository.UserRepository,
	patientRepo repository.PatientRepository,
	patientFileRepo repository.PatientFileRepository,
	serviceRepo repository.ServiceRepository,
	appointmentRepo repository.AppointmentRepository,
) EntitlementService {
	return &entitlementService{
		log:             log,
		clinicRepo:      clinicRepo,
		userRepo:        userRepo,
		patientRepo:     patientRepo,
		patientFileRepo: patientFileRepo,
		serviceRepo:     serviceRepo,
		appointmentRepo: appointmentRepo,
	}
}

func (s *entitlementService) plan(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) (*entity.Plan, error) {
	clinic, err := s.clinicRepo.FindByID(ctx, db, clinicID)
	if err != nil {
		s.log.Warnf("Failed to find clinic %s: %+v", clinicID, err)
		return nil, err
	}
	if clinic == nil {
		return nil, ErrClinicNotFound
	}
	return &clinic.Plan, nil
}

// underLimit applies the plan counter rule: nil maximum means unlimited.
func underLimit(max *int, current int64) bool {
	if max == nil {
		return true
	}
	return current < int64(*max)
}

func (s *entitlementService) CanCreateAppointment(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) (bool, error) {
	plan, err := s.plan(ctx, db, clinicID)
	if err != nil {
		return false, err
	}

	count, err := s.appointmentRepo.CountActiveByClinic(ctx, db, clinicID)
	if err != nil {
		return false, err
	}

	return underLimit(plan.MaxAppointments, count), nil
}

func (s *entitlementService) CanCreatePatient(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) (bool, error) {
	plan, err := s.plan(ctx, db, clinicID)
	if err != nil {
		return false, err
	}

	count, err := s.patientRepo.CountByClinic(ctx, db, clinicID)
	if err != nil {
		return false, err
	}

	return underLimit(plan.MaxPatients, count), nil
}

func (s *entitlementService) CanCreateService(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) (bool, error) {
	plan, err := s.plan(ctx, db, clinicID)
	if err != nil {
		return false, err
	}

	count, err := s.serviceRepo.CountByClinic(ctx, db, clinicID)
	if err != nil {
		return false, err
	}

	return underLimit(plan.MaxServices, count), nil
}

func (s *entitlementService) CanCreateUser(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) (bool, error) {
	plan, err := s.plan(ctx, db, clinicID)
	if err != nil {
		return false, err
	}

	count, err := s.userRepo.CountByClinic(ctx, db, clinicID)
	if err != nil {
		return false, err
	}

	return underLimit(plan.MaxUsers, count), nil
}

func (s *entitlementService) CanUseExternalCalendar(ctx context.Context, db *gorm.DB, clinicID uuid.UUID) (bool, error) {
	plan, err := s.plan(ctx, db, clinicID)
	if err != nil {
		return false, err
	}

	return plan.CalendarIntegration, nil
}

func (s *entitlementService) CanUploadPatientFile(ctx context.Context, db *gorm.DB, clinicID, patientID uuid.UUID) (*FileQuota, error) {
	plan, err := s.plan(ctx, db, clinicID)
	if err != nil {
		return nil, err
	}

	count, err := s.patientFileRepo.CountByPatient(ctx, db, patientID)
	if err != nil {
		return nil, err
	}

	return &FileQuota{
		Allowed:      underLimit(plan.MaxPatientFiles, count),
		Limit:        plan.MaxPatientFiles,
		CurrentCount: count,
	}, nil
}
