package usecase

import (
	"context"
	"errors"
	"fmt"

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
	ErrInvalidWindow      = errors.New("window start time must be before end time")
	ErrDuplicateWindowDay = errors.New("more than one window for the same day of week")
)

type AvailabilityUsecase interface {
	GetWeekSchedule(ctx context.Context, providerID uuid.UUID) (*dto.WeekScheduleResponse, error)
	ReplaceWeek(ctx context.Context, providerID uuid.UUID, req *dto.ReplaceWeekRequest) (*dto.WeekScheduleResponse, error)
}

type availabilityUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	txManager    repository.TransactionManager
	windowRepo   repository.AvailabilityWindowRepository
	providerRepo repository.ProviderProfileRepository
	auditService service.AuditService
}

func NewAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	txManager repository.TransactionManager,
	windowRepo repository.AvailabilityWindowRepository,
	providerRepo repository.ProviderProfileRepository,
	auditService service.AuditService,
) AvailabilityUsecase {
	return &availabilityUsecase{
		db:           db,
		log:          log,
		txManager:    txManager,
		windowRepo:   windowRepo,
		providerRepo: providerRepo,
		auditService: auditService,
	}
}

func (u *availabilityUsecase) GetWeekSchedule(ctx context.Context, providerID uuid.UUID) (*dto.WeekScheduleResponse, error) {
	clinicID, ok := middleware.GetClinicIDFromContext(ctx)
	if !ok {
		return nil, errors.New("clinic not found in context")
	}

	if err := u.checkProvider(ctx, providerID, clinicID); err != nil {
		return nil, err
	}

	windows, err := u.windowRepo.FindByProvider(ctx, u.db, providerID)
	if err != nil {
		u.log.Warnf("Failed to load windows for provider %s: %+v", providerID, err)
		return nil, err
	}

	return &dto.WeekScheduleResponse{
		ProviderID: providerID,
		Windows:    converter.WindowsToResponses(windows),
	}, nil
}

// ReplaceWeek swaps the provider's whole weekly schedule at once. A request
// with an empty window list removes the schedule entirely, which makes the
// provider unconstrained again.
func (u *availabilityUsecase) ReplaceWeek(ctx context.Context, providerID uuid.UUID, req *dto.ReplaceWeekRequest) (*dto.WeekScheduleResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}
	clinicID, ok := middleware.GetClinicIDFromContext(ctx)
	if !ok {
		return nil, errors.New("clinic not found in context")
	}

	if err := u.checkProvider(ctx, providerID, clinicID); err != nil {
		return nil, err
	}

	seen := make(map[int]bool, len(req.Windows))
	windows := make([]entity.AvailabilityWindow, len(req.Windows))
	for i, w := range req.Windows {
		if w.StartTime >= w.EndTime {
			return nil, fmt.Errorf("%w: day %d", ErrInvalidWindow, w.DayOfWeek)
		}
		if seen[w.DayOfWeek] {
			return nil, fmt.Errorf("%w: day %d", ErrDuplicateWindowDay, w.DayOfWeek)
		}
		seen[w.DayOfWeek] = true
		windows[i] = entity.AvailabilityWindow{
			ProviderID: providerID,
			DayOfWeek:  w.DayOfWeek,
			StartTime:  w.StartTime,
			EndTime:    w.EndTime,
		}
	}

	txErr := u.txManager.Do(ctx, func(tx *gorm.DB) error {
		if err := u.windowRepo.ReplaceWeek(ctx, tx, providerID, windows); err != nil {
			u.log.Warnf("Failed to replace week for provider %s: %+v", providerID, err)
			return err
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	if err := u.auditService.LogUpdate(ctx, u.db, &userID, entity.AuditActionAvailabilityReplace, "availability_window", providerID.String(), nil, req); err != nil {
		u.log.Warnf("Failed to audit week replacement: %+v", err)
	}

	u.log.Infof("Week schedule replaced: provider=%s windows=%d", providerID, len(windows))
	return &dto.WeekScheduleResponse{
		ProviderID: providerID,
		Windows:    converter.WindowsToResponses(windows),
	}, nil
}

func (u *availabilityUsecase) checkProvider(ctx context.Context, providerID, clinicID uuid.UUID) error {
	provider, err := u.providerRepo.FindByUserID(ctx, u.db, providerID)
	if err != nil {
		u.log.Warnf("Failed to find provider %s: %+v", providerID, err)
		return err
	}
	if provider == nil || provider.User.ClinicID != clinicID {
		return ErrProviderNotFound
	}
	return nil
}
