package update_unit_availability

import "context"

type UnitsService interface {
	SetAvailability(ctx context.Context, id int64, isAvailable bool) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
