package units

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// CapacityRepository интерфейс репозитория capacity units
type CapacityRepository interface {
	Create(ctx context.Context, unit *domain.CapacityUnit) (*domain.CapacityUnit, error)
	GetByID(ctx context.Context, id int64) (*domain.CapacityUnit, error)
	SetAvailability(ctx context.Context, unitID int64, isAvailable bool) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
