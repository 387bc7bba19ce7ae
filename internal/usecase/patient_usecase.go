package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-management-api/internal/converter"
	"clinic-management-api/internal/delivery/dto"
	"clinic-management-api/internal/delivery/http/middleware"
	"clinic-management-api/internal/domain/entity"
	"clinic-management-api/internal/domain/repository"
	"clinic-management-api/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPatientQuota      = errors.New("patient limit reached for the current plan")
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
)

type PatientUsecase interface {
	Create(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	List(ctx context.Context) (*dto.PatientListResponse, error)
}

type patientUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	patientRepo        repository.PatientRepository
	entitlementService service.EntitlementService
	auditService       service.AuditService
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	entitlementService service.EntitlementService,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		db:                 db,
		log:                log,
		patientRepo:        patientRepo,
		entitlementService: entitlementService,
		auditService:       auditService,
	}
}

func (u *patientUsecase) Create(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}
	clinicID, ok := middleware.GetClinicIDFromContext(ctx)
	if !ok {
		return nil, errors.New("clinic not found in context")
	}

	allowed, err := u.entitlementService.CanCreatePatient(ctx, u.db, clinicID)
	if err != nil {
		u.log.Warnf("Failed to check patient quota for clinic %s: %+v", clinicID, err)
		return nil, err
	}
	if !allowed {
		return nil, ErrPatientQuota
	}

	patient := &entity.Patient{
		ClinicID:    clinicID,
		FullName:    req.FullName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	}

	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		patient.DateOfBirth = dob
	}

	if err := u.patientRepo.Create(ctx, u.db, patient); err != nil {
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, u.db, &userID, entity.AuditActionPatientCreate, "patient", patient.ID.String(), req.FullName); err != nil {
		u.log.Warnf("Failed to audit patient creation: %+v", err)
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) List(ctx context.Context) (*dto.PatientListResponse, error) {
	clinicID, ok := middleware.GetClinicIDFromContext(ctx)
	if !ok {
		return nil, errors.New("clinic not found in context")
	}

	patients, err := u.patientRepo.FindByClinic(ctx, u.db, clinicID)
	if err != nil {
		u.log.Warnf("Failed to list patients for clinic %s: %+v", clinicID, err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients),
		Total:    len(patients),
	}, nil
}
