package release_hold

import "context"

type ReservationsService interface {
	Release(ctx context.Context, unitID int64, holderID string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
