package list_available_units

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// UseCase use case для получения юнитов, доступных для резервирования
type UseCase struct {
	capacityRepo CapacityRepository
	sweeper      Sweeper
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	capacityRepo CapacityRepository,
	sweeper Sweeper,
	logger Logger,
) *UseCase {
	return &UseCase{
		capacityRepo: capacityRepo,
		sweeper:      sweeper,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных юнитов.
//
// Перед выборкой запускает уборку истёкших холдов, но корректность от неё
// не зависит: доступность считается по времени истечения холда, поэтому
// даже не убранный истёкший холд не прячет юнит из выдачи. Ошибка sweep
// логируется и не блокирует чтение.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ListAvailableUnits: plan=%d, staff=%v, from=%v, to=%v",
		req.PlanID, req.StaffID, req.StartFrom, req.StartTo)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ListAvailableUnits: validation failed: %v", err)
		return nil, err
	}

	// 2. Оппортунистическая уборка истёкших холдов (best-effort)
	if reclaimed, err := uc.sweeper.SweepExpired(ctx); err != nil {
		uc.logger.Warn("ListAvailableUnits: sweep failed, continuing: %v", err)
	} else if reclaimed > 0 {
		uc.logger.Info("ListAvailableUnits: sweep reclaimed %d expired holds", reclaimed)
	}

	// 3. Читаем юниты плана по фильтру
	filter := domain.UnitsFilter{
		PlanID:    req.PlanID,
		StaffID:   req.StaffID,
		StartFrom: req.StartFrom,
		StartTo:   req.StartTo,
	}

	units, err := uc.capacityRepo.ListByFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("ListAvailableUnits: failed to list units for plan=%d: %v", req.PlanID, err)
		return nil, fmt.Errorf("%w: failed to list units: %v", ErrStoreUnavailable, err)
	}

	// 4. Оставляем только юниты, на которые прямо сейчас можно взять холд.
	// Репозиторий уже вернул их в порядке window_start, id.
	now := uc.timeProvider.Now()
	available := make([]AvailableUnit, 0, len(units))
	for _, unit := range units {
		if !unit.IsBookable(now) {
			continue
		}
		available = append(available, AvailableUnit{
			ID:                unit.ID,
			PlanID:            unit.PlanID,
			StaffID:           unit.StaffID,
			WindowStart:       unit.WindowStart,
			WindowEnd:         unit.WindowEnd,
			MaxCapacity:       unit.MaxCapacity,
			RemainingCapacity: unit.RemainingCapacity(now),
		})
	}

	uc.logger.Info("ListAvailableUnits: %d of %d units bookable for plan=%d",
		len(available), len(units), req.PlanID)

	return &Response{
		PlanID: req.PlanID,
		Units:  available,
	}, nil
}
