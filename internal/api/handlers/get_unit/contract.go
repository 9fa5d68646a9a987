package get_unit

import (
	"context"

	unitsModels "github.com/m04kA/SMC-ReservationService/internal/service/units/models"
)

type UnitsService interface {
	GetByID(ctx context.Context, id int64) (*unitsModels.UnitResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
