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

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserQuota            = errors.New("user limit reached for the current plan")
	ErrLicenseAlreadyExists = errors.New("license number already exists")
)

type ProviderUsecase interface {
	Create(ctx context.Context, req *dto.CreateProviderRequest) (*dto.ProviderResponse, error)
	List(ctx context.Context) (*dto.ProviderListResponse, error)
}

type providerUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	txManager          repository.TransactionManager
	userRepo           repository.UserRepository
	providerRepo       repository.ProviderProfileRepository
	entitlementService service.EntitlementService
	auditService       service.AuditService
}

func NewProviderUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	txManager repository.TransactionManager,
	userRepo repository.UserRepository,
	providerRepo repository.ProviderProfileRepository,
	entitlementService service.EntitlementService,
	auditService service.AuditService,
) ProviderUsecase {
	return &providerUsecase{
		db:                 db,
		log:                log,
		txManager:          txManager,
		userRepo:           userRepo,
		providerRepo:       providerRepo,
		entitlementService: entitlementService,
		auditService:       auditService,
	}
}

// Create provisions a provider: the login user and the profile in one
// transaction, gated by the plan's user quota.
func (u *providerUsecase) Create(ctx context.Context, req *dto.CreateProviderRequest) (*dto.ProviderResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}
	clinicID, ok := middleware.GetClinicIDFromContext(ctx)
	if !ok {
		return nil, errors.New("clinic not found in context")
	}

	allowed, err := u.entitlementService.CanCreateUser(ctx, u.db, clinicID)
	if err != nil {
		u.log.Warnf("Failed to check user quota for clinic %s: %+v", clinicID, err)
		return nil, err
	}
	if !allowed {
		return nil, ErrUserQuota
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		ClinicID: clinicID,
		RoleID:   entity.RoleIDProvider,
		Email:    req.Email,
		Password: string(hashedPassword),
		FullName: req.FullName,
	}
	profile := &entity.ProviderProfile{
		LicenseNumber:  req.LicenseNumber,
		Specialization: req.Specialization,
		Biography:      req.Biography,
	}

	txErr := u.txManager.Do(ctx, func(tx *gorm.DB) error {
		if err := u.userRepo.Create(ctx, tx, user); err != nil {
			if isUniqueViolation(err) {
				return ErrEmailAlreadyExists
			}
			u.log.Warnf("Failed to create provider user: %+v", err)
			return err
		}

		profile.UserID = user.ID
		if err := u.providerRepo.Create(ctx, tx, profile); err != nil {
			if isUniqueViolation(err) {
				return ErrLicenseAlreadyExists
			}
			u.log.Warnf("Failed to create provider profile: %+v", err)
			return err
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	if err := u.auditService.LogCreate(ctx, u.db, &userID, entity.AuditActionProviderCreate, "provider", user.ID.String(), req.Email); err != nil {
		u.log.Warnf("Failed to audit provider creation: %+v", err)
	}

	profile.User = *user
	return converter.ProviderToResponse(profile), nil
}

func (u *providerUsecase) List(ctx context.Context) (*dto.ProviderListResponse, error) {
	clinicID, ok := middleware.GetClinicIDFromContext(ctx)
	if !ok {
		return nil, errors.New("clinic not found in context")
	}

	providers, err := u.providerRepo.FindByClinic(ctx, u.db, clinicID)
	if err != nil {
		u.log.Warnf("Failed to list providers for clinic %s: %+v", clinicID, err)
		return nil, err
	}

	return &dto.ProviderListResponse{
		Providers: converter.ProvidersToResponses(providers),
		Total:     len(providers),
	}, nil
}
