package reserve_unit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	capacityRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/capacity"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
)

// UseCase use case для взятия холда на capacity unit
type UseCase struct {
	capacityRepo CapacityRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	defaultTTL   time.Duration
	maxTTL       time.Duration
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	capacityRepo CapacityRepository,
	txManager TransactionManager,
	defaultTTL time.Duration,
	maxTTL time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		capacityRepo: capacityRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		defaultTTL:   defaultTTL,
		maxTTL:       maxTTL,
		logger:       logger,
	}
}

// Execute выполняет use case взятия холда.
//
// Вся проверка и запись выполняются в одной сериализуемой транзакции:
// чтение юнита блокирует его строку (FOR UPDATE), подсчёт занятой ёмкости
// трактует истёкшие холды как отсутствующие независимо от работы sweep,
// запись холда происходит только если ёмкость ещё есть. Два конкурентных
// вызова на последнее место не могут выиграть оба: проигравший получает
// ErrUnitUnavailable (увидел занятую ёмкость) или ErrConflict (проиграл
// сериализацию и исчерпал повторы).
//
// Повторный вызов тем же держателем до истечения его холда продлевает
// холд, не занимая дополнительную ёмкость.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReserveUnit: unit=%d, holder=%s, ttl=%s", req.UnitID, req.HolderID, req.TTL)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ReserveUnit: validation failed: %v", err)
		return nil, err
	}

	// 2. Нормализуем TTL (default + операторский потолок)
	ttl := normalizeTTL(req.TTL, uc.defaultTTL, uc.maxTTL)

	var result *Response

	// 3. Атомарная проверка ёмкости и запись холда
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Читаем юнит с блокировкой строки
		unit, err := uc.capacityRepo.GetByID(txCtx, req.UnitID)
		if err != nil {
			if errors.Is(err, capacityRepo.ErrUnitNotFound) {
				uc.logger.Warn("ReserveUnit: unit id=%d not found", req.UnitID)
				return ErrUnitNotFound
			}
			uc.logger.Error("ReserveUnit: failed to get unit id=%d: %v", req.UnitID, err)
			return fmt.Errorf("%w: failed to get unit: %v", ErrStoreUnavailable, err)
		}

		now := uc.timeProvider.Now()
		expiresAt := now.Add(ttl)

		// 3.2. Продление собственного холда не занимает новую ёмкость
		existing := unit.HoldFor(req.HolderID, now)
		if existing == nil {
			// 3.3. Проверяем доступность: операторский флаг и ёмкость с учётом
			// подтверждённых броней и живых холдов (истёкшие считаются отсутствующими)
			if !unit.IsBookable(now) {
				uc.logger.Info("ReserveUnit: unit id=%d not bookable, bookings=%d, active_holds=%d, max=%d, available=%t",
					unit.ID, unit.CurrentBookings, unit.ActiveHoldCount(now), unit.MaxCapacity, unit.IsAvailable)
				return ErrUnitUnavailable
			}
		}

		// 3.4. Пишем холд; upsert заменяет истёкший или продлеваемый холд держателя
		hold := domain.Hold{
			UnitID:    unit.ID,
			HolderID:  req.HolderID,
			ExpiresAt: expiresAt,
		}
		if err := uc.capacityRepo.UpsertHold(txCtx, hold); err != nil {
			uc.logger.Error("ReserveUnit: failed to upsert hold for unit id=%d: %v", unit.ID, err)
			return fmt.Errorf("%w: failed to upsert hold: %v", ErrStoreUnavailable, err)
		}

		result = &Response{
			UnitID:    unit.ID,
			HolderID:  req.HolderID,
			ExpiresAt: expiresAt,
			Refreshed: existing != nil,
		}
		return nil
	})

	if err != nil {
		// Проигрыш гонки сериализации ожидаем и случается часто
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("ReserveUnit: serialization conflict for unit=%d, holder=%s", req.UnitID, req.HolderID)
			return nil, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return nil, err
	}

	if result.Refreshed {
		uc.logger.Info("ReserveUnit: refreshed hold for unit=%d, holder=%s, expires_at=%s",
			result.UnitID, result.HolderID, result.ExpiresAt.Format(domain.TimestampFormat))
	} else {
		uc.logger.Info("ReserveUnit: acquired hold for unit=%d, holder=%s, expires_at=%s",
			result.UnitID, result.HolderID, result.ExpiresAt.Format(domain.TimestampFormat))
	}

	return result, nil
}
