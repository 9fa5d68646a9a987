package run_sweep

import "context"

type ReservationsService interface {
	SweepExpired(ctx context.Context) (int64, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
