package reserve_unit

import (
	"context"

	reserveUnit "github.com/m04kA/SMC-ReservationService/internal/usecase/reserve_unit"
)

type ReserveUnitUseCase interface {
	Execute(ctx context.Context, req *reserveUnit.Request) (*reserveUnit.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
