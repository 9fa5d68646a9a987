package list_available_units

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("list_available_units: invalid input data")

	// ErrInvalidRange возвращается, когда нижняя граница диапазона позже верхней
	ErrInvalidRange = errors.New("list_available_units: invalid time range")

	// ErrStoreUnavailable возвращается при недоступности хранилища
	ErrStoreUnavailable = errors.New("list_available_units: store unavailable")
)
