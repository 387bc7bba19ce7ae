package usecase

import (
	"context"
	"errors"

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

var ErrServiceQuota = errors.New("service limit reached for the current plan")

type ServiceCatalogUsecase interface {
	Create(ctx context.Context, req *dto.CreateServiceRequest) (*dto.ServiceResponse, error)
	List(ctx context.Context) (*dto.ServiceListResponse, error)
	Update(ctx context.Context, serviceID uuid.UUID, req *dto.UpdateServiceRequest) (*dto.ServiceResponse, error)
	Deactivate(ctx context.Context, serviceID uuid.UUID) error
}

type serviceCatalogUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	serviceRepo        repository.ServiceRepository
	entitlementService service.EntitlementService
	auditService       service.AuditService
}

func NewServiceCatalogUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	serviceRepo repository.ServiceRepository,
	entitlementService service.EntitlementService,
	auditService service.AuditService,
) ServiceCatalogUsecase {
	return &serviceCatalogUsecase{
		db:                 db,
		log:                log,
		serviceRepo:        serviceRepo,
		entitlementService: entitlementService,
		auditService:       auditService,
	}
}

func (u *serviceCatalogUsecase) Create(ctx context.Context, req *dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}
	clinicID, ok := middleware.GetClinicIDFromContext(ctx)
	if !ok {
		return nil, errors.New("clinic not found in context")
	}

	allowed, err := u.entitlementService.CanCreateService(ctx, u.db, clinicID)
	if err != nil {
		u.log.Warnf("Failed to check service quota for clinic %s: %+v", clinicID, err)
		return nil, err
	}
	if !allowed {
		return nil, ErrServiceQuota
	}

	svc := &entity.Service{
		ClinicID:        clinicID,
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
	}

	if err := u.serviceRepo.Create(ctx, u.db, svc); err != nil {
		u.log.Warnf("Failed to create service: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, u.db, &userID, entity.AuditActionServiceCreate, "service", svc.ID.String(), req.Name); err != nil {
		u.log.Warnf("Failed to audit service creation: %+v", err)
	}

	return converter.ServiceToResponse(svc), nil
}

func (u *serviceCatalogUsecase) List(ctx context.Context) (*dto.ServiceListResponse, error) {
	clinicID, ok := middleware.GetClinicIDFromContext(ctx)
	if !ok {
		return nil, errors.New("clinic not found in context")
	}

	services, err := u.serviceRepo.FindByClinic(ctx, u.db, clinicID)
	if err != nil {
		u.log.Warnf("Failed to list services for clinic %s: %+v", clinicID, err)
		return nil, err
	}

	return &dto.ServiceListResponse{
		Services: converter.ServicesToResponses(services),
		Total:    len(services),
	}, nil
}

func (u *serviceCatalogUsecase) Update(ctx context.Context, serviceID uuid.UUID, req *dto.UpdateServiceRequest) (*dto.ServiceResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}
	clinicID, ok := middleware.GetClinicIDFromContext(ctx)
	if !ok {
		return nil, errors.New("clinic not found in context")
	}

	svc, err := u.serviceRepo.FindByID(ctx, u.db, serviceID)
	if err != nil {
		u.log.Warnf("Failed to find service %s: %+v", serviceID, err)
		return nil, err
	}
	if svc == nil || svc.ClinicID != clinicID {
		return nil, ErrServiceNotFound
	}

	old := *svc
	svc.Name = req.Name
	svc.Description = req.Description
	svc.DurationMinutes = req.DurationMinutes
	svc.Price = req.Price

	if err := u.serviceRepo.Update(ctx, u.db, svc); err != nil {
		u.log.Warnf("Failed to update service %s: %+v", serviceID, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, u.db, &userID, entity.AuditActionServiceUpdate, "service", serviceID.String(), old.Name, req.Name); err != nil {
		u.log.Warnf("Failed to audit service update: %+v", err)
	}

	return converter.ServiceToResponse(svc), nil
}

// Deactivate soft-removes a service from the catalog. Booked appointments
// keep their reference; only new bookings are blocked.
func (u *serviceCatalogUsecase) Deactivate(ctx context.Context, serviceID uuid.UUID) error {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return errors.New("user not found in context")
	}
	clinicID, ok := middleware.GetClinicIDFromContext(ctx)
	if !ok {
		return errors.New("clinic not found in context")
	}

	svc, err := u.serviceRepo.FindByID(ctx, u.db, serviceID)
	if err != nil {
		u.log.Warnf("Failed to find service %s: %+v", serviceID, err)
		return err
	}
	if svc == nil || svc.ClinicID != clinicID {
		return ErrServiceNotFound
	}

	rows, err := u.serviceRepo.Deactivate(ctx, u.db, serviceID)
	if err != nil {
		u.log.Warnf("Failed to deactivate service %s: %+v", serviceID, err)
		return err
	}
	if rows == 0 {
		return ErrServiceNotFound
	}

	if err := u.auditService.LogDelete(ctx, u.db, &userID, entity.AuditActionServiceDelete, "service", serviceID.String(), svc.Name); err != nil {
		u.log.Warnf("Failed to audit service deactivation: %+v", err)
	}

	return nil
}
