package list_available_units

import (
	"context"

	listAvailableUnits "github.com/m04kA/SMC-ReservationService/internal/usecase/list_available_units"
)

type ListAvailableUnitsUseCase interface {
	Execute(ctx context.Context, req *listAvailableUnits.Request) (*listAvailableUnits.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
