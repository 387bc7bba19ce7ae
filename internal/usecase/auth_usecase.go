package usecase

import (
	"context"
	"errors"
	"fmt"

	"clinic-management-api/internal/converter"
	"clinic-management-api/internal/delivery/dto"
	"clinic-management-api/internal/domain/entity"
	"clinic-management-api/internal/domain/repository"
	"clinic-management-api/internal/service"
	"clinic-management-api/pkg/jwt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrUserNotFound       = errors.New("user not found")
	ErrPlanNotFound       = errors.New("plan not found")
)

type AuthUsecase interface {
	RegisterClinic(ctx context.Context, req *dto.RegisterClinicRequest) (*dto.RegisterClinicResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, userID uuid.UUID, accessTokenID string) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
}

type authUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	clinicRepo   repository.ClinicRepository
	planRepo     repository.PlanRepository
	jwtService   *jwt.JWTService
	redisClient  *redis.Client
	auditService service.AuditService
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	txManager repository.TransactionManager,
	userRepo repository.UserRepository,
	clinicRepo repository.ClinicRepository,
	planRepo repository.PlanRepository,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
	auditService service.AuditService,
) AuthUsecase {
	return &authUsecase{
		db:           db,
		log:          log,
		txManager:    txManager,
		userRepo:     userRepo,
		clinicRepo:   clinicRepo,
		planRepo:     planRepo,
		jwtService:   jwtService,
		redisClient:  redisClient,
		auditService: auditService,
	}
}

// RegisterClinic provisions a new tenant: the clinic on its chosen plan plus
// its first admin user, in one transaction.
func (u *authUsecase) RegisterClinic(ctx context.Context, req *dto.RegisterClinicRequest) (*dto.RegisterClinicResponse, error) {
	plan, err := u.planRepo.FindByName(ctx, u.db, req.PlanName)
	if err != nil {
		u.log.Warnf("Failed to find plan %s: %+v", req.PlanName, err)
		return nil, err
	}
	if plan == nil {
		return nil, ErrPlanNotFound
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	clinic := &entity.Clinic{
		Name:   req.ClinicName,
		PlanID: plan.ID,
	}
	admin := &entity.User{
		RoleID:   entity.RoleIDAdmin,
		Email:    req.AdminEmail,
		Password: string(hashedPassword),
		FullName: req.AdminFullName,
	}

	txErr := u.txManager.Do(ctx, func(tx *gorm.DB) error {
		if err := u.clinicRepo.Create(ctx, tx, clinic); err != nil {
			u.log.Warnf("Failed to create clinic: %+v", err)
			return err
		}

		admin.ClinicID = clinic.ID
		if err := u.userRepo.Create(ctx, tx, admin); err != nil {
			if isUniqueViolation(err) {
				return ErrEmailAlreadyExists
			}
			u.log.Warnf("Failed to create admin user: %+v", err)
			return err
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	adminID := admin.ID
	if err := u.auditService.LogCreate(ctx, u.db, &adminID, entity.AuditActionClinicRegister, "clinic", clinic.ID.String(), req.ClinicName); err != nil {
		u.log.Warnf("Failed to audit clinic registration: %+v", err)
	}

	u.log.Infof("Clinic registered: id=%s plan=%s", clinic.ID, plan.Name)
	admin.Role = entity.Role{ID: entity.RoleIDAdmin, RoleName: entity.RoleAdmin}
	return &dto.RegisterClinicResponse{
		ClinicID:   clinic.ID,
		ClinicName: clinic.Name,
		Plan:       plan.Name,
		Admin:      converter.UserToResponse(admin),
	}, nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := u.userRepo.FindByEmail(ctx, u.db, req.Email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if user.IsActive != nil && !*user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	tokens, err := u.issueTokens(ctx, user.ID, user.ClinicID, user.RoleID, user.Email)
	if err != nil {
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, u.db, &user.ID, entity.AuditActionUserLogin, "user", user.ID.String(), nil); err != nil {
		u.log.Warnf("Failed to audit login: %+v", err)
	}

	return tokens, nil
}

func (u *authUsecase) Logout(ctx context.Context, userID uuid.UUID, accessTokenID string) error {
	accessKey := fmt.Sprintf("access_token:%s:%s", userID.String(), accessTokenID)
	if err := u.redisClient.Del(ctx, accessKey).Err(); err != nil {
		u.log.Warnf("Failed to delete access token: %+v", err)
		return err
	}

	// Refresh tokens of the session are not tracked against the access
	// token, revoke them all.
	refreshPattern := fmt.Sprintf("refresh_token:%s:*", userID.String())
	refreshKeys, err := u.redisClient.Keys(ctx, refreshPattern).Result()
	if err != nil {
		u.log.Warnf("Failed to list refresh tokens: %+v", err)
		return err
	}
	if len(refreshKeys) > 0 {
		if err := u.redisClient.Del(ctx, refreshKeys...).Err(); err != nil {
			u.log.Warnf("Failed to delete refresh tokens: %+v", err)
			return err
		}
	}

	if err := u.auditService.LogCreate(ctx, u.db, &userID, entity.AuditActionUserLogout, "user", userID.String(), nil); err != nil {
		u.log.Warnf("Failed to audit logout: %+v", err)
	}

	return nil
}

func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	refreshKey := fmt.Sprintf("refresh_token:%s:%s", claims.UserID.String(), claims.TokenID)
	exists, err := u.redisClient.Exists(ctx, refreshKey).Result()
	if err != nil {
		u.log.Warnf("Failed to check refresh token in Redis: %+v", err)
		return nil, err
	}
	if exists == 0 {
		return nil, ErrTokenRevoked
	}

	// Rotate: the presented refresh token is single use
	if err := u.redisClient.Del(ctx, refreshKey).Err(); err != nil {
		u.log.Warnf("Failed to delete old refresh token: %+v", err)
		return nil, err
	}

	return u.issueTokens(ctx, claims.UserID, claims.ClinicID, claims.RoleID, claims.Email)
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

// issueTokens generates an access/refresh pair and registers both in the
// redis revocation store.
func (u *authUsecase) issueTokens(ctx context.Context, userID, clinicID uuid.UUID, roleID int, email string) (*dto.TokenResponse, error) {
	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(userID, clinicID, roleID, email)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(userID, clinicID, roleID, email)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	accessKey := fmt.Sprintf("access_token:%s:%s", userID.String(), accessTokenID)
	refreshKey := fmt.Sprintf("refresh_token:%s:%s", userID.String(), refreshTokenID)

	if err := u.redisClient.Set(ctx, accessKey, "valid", u.jwtService.GetAccessExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store access token in Redis: %+v", err)
		return nil, err
	}
	if err := u.redisClient.Set(ctx, refreshKey, "valid", u.jwtService.GetRefreshExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store refresh token in Redis: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}
