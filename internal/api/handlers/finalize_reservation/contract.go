package finalize_reservation

import (
	"context"

	finalizeReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/finalize_reservation"
)

type FinalizeReservationUseCase interface {
	Execute(ctx context.Context, req *finalizeReservation.Request) (*finalizeReservation.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
