package create_unit

import (
	"context"

	unitsModels "github.com/m04kA/SMC-ReservationService/internal/service/units/models"
)

type UnitsService interface {
	Create(ctx context.Context, req *unitsModels.CreateUnitRequest) (*unitsModels.UnitResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
