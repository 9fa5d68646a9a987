package units

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	capacityRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/capacity"
	"github.com/m04kA/SMC-ReservationService/internal/service/units/models"
)

// Service сервис для операторских операций над capacity units
type Service struct {
	capacityRepo CapacityRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса юнитов
func NewService(capacityRepo CapacityRepository, logger Logger) *Service {
	return &Service{
		capacityRepo: capacityRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает capacity unit по ID вместе с активными холдами
func (s *Service) GetByID(ctx context.Context, id int64) (*models.UnitResponse, error) {
	s.logger.Info("GetByID: fetching unit id=%d", id)

	if id <= 0 {
		return nil, fmt.Errorf("%w: unitID must be positive", ErrInvalidInput)
	}

	unit, err := s.capacityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, capacityRepo.ErrUnitNotFound) {
			s.logger.Warn("GetByID: unit id=%d not found", id)
			return nil, ErrUnitNotFound
		}
		s.logger.Error("GetByID: repository error for unit id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainUnit(unit, s.timeProvider.Now()), nil
}

// Create создает новый capacity unit (операторское provisioning)
func (s *Service) Create(ctx context.Context, req *models.CreateUnitRequest) (*models.UnitResponse, error) {
	s.logger.Info("Create: plan=%d, staff=%v, window=[%s, %s], max_capacity=%d",
		req.PlanID, req.StaffID,
		req.WindowStart.Format(domain.TimestampFormat), req.WindowEnd.Format(domain.TimestampFormat),
		req.MaxCapacity)

	if err := validateCreateRequest(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	unit := &domain.CapacityUnit{
		PlanID:          req.PlanID,
		StaffID:         req.StaffID,
		WindowStart:     req.WindowStart,
		WindowEnd:       req.WindowEnd,
		MaxCapacity:     req.MaxCapacity,
		CurrentBookings: 0,
		IsAvailable:     req.IsAvailable,
	}

	created, err := s.capacityRepo.Create(ctx, unit)
	if err != nil {
		s.logger.Error("Create: repository error for plan=%d: %v", req.PlanID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created unit id=%d", created.ID)
	return models.FromDomainUnit(created, s.timeProvider.Now()), nil
}

// SetAvailability переключает операторский флаг доступности юнита.
// Kill switch действует независимо от ёмкости: недоступный юнит не
// попадает в выдачу и не принимает новые холды, существующие холды
// при этом не трогаются.
func (s *Service) SetAvailability(ctx context.Context, id int64, isAvailable bool) error {
	s.logger.Info("SetAvailability: unit=%d, available=%t", id, isAvailable)

	if id <= 0 {
		return fmt.Errorf("%w: unitID must be positive", ErrInvalidInput)
	}

	if err := s.capacityRepo.SetAvailability(ctx, id, isAvailable); err != nil {
		if errors.Is(err, capacityRepo.ErrUnitNotFound) {
			s.logger.Warn("SetAvailability: unit id=%d not found", id)
			return ErrUnitNotFound
		}
		s.logger.Error("SetAvailability: repository error for unit id=%d: %v", id, err)
		return fmt.Errorf("%w: SetAvailability - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetAvailability: unit id=%d is_available=%t", id, isAvailable)
	return nil
}

// validateCreateRequest валидирует запрос на создание юнита
func validateCreateRequest(req *models.CreateUnitRequest) error {
	if req.PlanID <= 0 {
		return fmt.Errorf("%w: planID must be positive", ErrInvalidInput)
	}
	if req.StaffID != nil && *req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}
	if req.WindowStart.IsZero() || req.WindowEnd.IsZero() {
		return fmt.Errorf("%w: windowStart and windowEnd are required", ErrInvalidInput)
	}
	if !req.WindowStart.Before(req.WindowEnd) {
		return fmt.Errorf("%w: windowStart must be before windowEnd", ErrInvalidInput)
	}
	if req.MaxCapacity < domain.MinMaxCapacity || req.MaxCapacity > domain.MaxMaxCapacity {
		return fmt.Errorf("%w: maxCapacity must be between %d and %d",
			ErrInvalidInput, domain.MinMaxCapacity, domain.MaxMaxCapacity)
	}
	return nil
}
