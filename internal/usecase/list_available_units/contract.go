package list_available_units

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// CapacityRepository интерфейс репозитория capacity units
type CapacityRepository interface {
	ListByFilter(ctx context.Context, filter domain.UnitsFilter) ([]*domain.CapacityUnit, error)
}

// Sweeper интерфейс запуска уборки истёкших холдов
type Sweeper interface {
	SweepExpired(ctx context.Context) (int64, error)
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
