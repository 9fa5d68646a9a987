package finalize_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	capacityRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/capacity"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
)

// UseCase use case финализации резервирования: конвертация живого холда
// в подтверждённую бронь после завершения оплаты
type UseCase struct {
	capacityRepo CapacityRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	capacityRepo CapacityRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		capacityRepo: capacityRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case финализации.
//
// Условная запись "finalize-if-still-held" в одной сериализуемой транзакции:
// удаление холда обусловлено его живостью (expires_at > now), а инкремент
// счётчика броней обусловлен свободной ёмкостью. Финализация взаимоисключается
// с истечением и release: лопнувший холд даёт ErrHoldNotHeld.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("FinalizeReservation: unit=%d, holder=%s", req.UnitID, req.HolderID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("FinalizeReservation: validation failed: %v", err)
		return nil, err
	}

	var result *Response

	// 2. Атомарная конвертация холда в бронь
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Читаем юнит с блокировкой строки
		unit, err := uc.capacityRepo.GetByID(txCtx, req.UnitID)
		if err != nil {
			if errors.Is(err, capacityRepo.ErrUnitNotFound) {
				uc.logger.Warn("FinalizeReservation: unit id=%d not found", req.UnitID)
				return ErrUnitNotFound
			}
			uc.logger.Error("FinalizeReservation: failed to get unit id=%d: %v", req.UnitID, err)
			return fmt.Errorf("%w: failed to get unit: %v", ErrStoreUnavailable, err)
		}

		now := uc.timeProvider.Now()

		// 2.2. Условно удаляем холд: только живой холд можно финализировать
		removed, err := uc.capacityRepo.DeleteActiveHold(txCtx, unit.ID, req.HolderID, now)
		if err != nil {
			uc.logger.Error("FinalizeReservation: failed to delete hold for unit id=%d: %v", unit.ID, err)
			return fmt.Errorf("%w: failed to delete hold: %v", ErrStoreUnavailable, err)
		}
		if !removed {
			uc.logger.Warn("FinalizeReservation: no active hold for unit=%d, holder=%s", unit.ID, req.HolderID)
			return ErrHoldNotHeld
		}

		// 2.3. Подтверждаем бронь
		if err := uc.capacityRepo.IncrementBookings(txCtx, unit.ID); err != nil {
			if errors.Is(err, capacityRepo.ErrCapacityExceeded) {
				uc.logger.Error("FinalizeReservation: capacity exceeded for unit id=%d", unit.ID)
				return ErrCapacityExceeded
			}
			uc.logger.Error("FinalizeReservation: failed to increment bookings for unit id=%d: %v", unit.ID, err)
			return fmt.Errorf("%w: failed to increment bookings: %v", ErrStoreUnavailable, err)
		}

		result = &Response{
			UnitID:          unit.ID,
			HolderID:        req.HolderID,
			CurrentBookings: unit.CurrentBookings + 1,
			MaxCapacity:     unit.MaxCapacity,
			FinalizedAt:     now,
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("FinalizeReservation: serialization conflict for unit=%d, holder=%s", req.UnitID, req.HolderID)
			return nil, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return nil, err
	}

	uc.logger.Info("FinalizeReservation: finalized unit=%d, holder=%s, bookings=%d/%d",
		result.UnitID, result.HolderID, result.CurrentBookings, result.MaxCapacity)

	return result, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UnitID <= 0 {
		return fmt.Errorf("%w: unitID must be positive", ErrInvalidInput)
	}
	if req.HolderID == "" {
		return fmt.Errorf("%w: holderID is required", ErrInvalidInput)
	}
	if len(req.HolderID) > domain.MaxHolderIDLength {
		return fmt.Errorf("%w: holderID exceeds %d characters", ErrInvalidInput, domain.MaxHolderIDLength)
	}
	return nil
}
