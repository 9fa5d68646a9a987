package reservations

import (
	"context"
	"errors"
	"fmt"

	capacityRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/capacity"
)

// Service сервис для снятия холдов и уборки истёкших холдов
type Service struct {
	capacityRepo CapacityRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса резервирований
func NewService(capacityRepo CapacityRepository, logger Logger) *Service {
	return &Service{
		capacityRepo: capacityRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Release снимает холд держателя с юнита.
//
// Идемпотентна: отсутствующий, уже снятый, истёкший или чужой холд
// не считается ошибкой, ёмкость при этом не освобождается повторно.
// Единственная ошибка пользовательского уровня это неизвестный юнит.
func (s *Service) Release(ctx context.Context, unitID int64, holderID string) error {
	s.logger.Info("Release: unit=%d, holder=%s", unitID, holderID)

	if unitID <= 0 {
		return fmt.Errorf("%w: unitID must be positive", ErrInvalidInput)
	}
	if holderID == "" {
		return fmt.Errorf("%w: holderID is required", ErrInvalidInput)
	}

	// Проверяем существование юнита
	if _, err := s.capacityRepo.GetByID(ctx, unitID); err != nil {
		if errors.Is(err, capacityRepo.ErrUnitNotFound) {
			s.logger.Warn("Release: unit id=%d not found", unitID)
			return ErrUnitNotFound
		}
		s.logger.Error("Release: repository error for unit id=%d: %v", unitID, err)
		return fmt.Errorf("%w: Release - repository error: %v", ErrInternal, err)
	}

	// Удаление по (unit_id, holder_id): чужой холд не может быть снят,
	// потому что ключ не совпадет
	released, err := s.capacityRepo.DeleteHold(ctx, unitID, holderID)
	if err != nil {
		s.logger.Error("Release: failed to delete hold for unit id=%d: %v", unitID, err)
		return fmt.Errorf("%w: Release - repository error: %v", ErrInternal, err)
	}

	if released {
		s.logger.Info("Release: hold released for unit=%d, holder=%s", unitID, holderID)
	} else {
		s.logger.Info("Release: no hold to release for unit=%d, holder=%s (no-op)", unitID, holderID)
	}

	return nil
}

// SweepExpired удаляет все истёкшие холды и возвращает число убранных.
//
// Чисто уборочный проход: Reserve и выдача доступности корректны и без
// него, так как истечение определяется сравнением времени, а не фактом
// физического удаления. Ошибки не фатальны, следующий цикл повторит.
func (s *Service) SweepExpired(ctx context.Context) (int64, error) {
	now := s.timeProvider.Now()

	reclaimed, err := s.capacityRepo.DeleteExpiredHolds(ctx, now)
	if err != nil {
		s.logger.Error("SweepExpired: failed to delete expired holds: %v", err)
		return 0, fmt.Errorf("%w: SweepExpired - repository error: %v", ErrInternal, err)
	}

	if reclaimed > 0 {
		s.logger.Info("SweepExpired: reclaimed %d expired holds", reclaimed)
	}

	return reclaimed, nil
}
