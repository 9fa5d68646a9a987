package reservations

import "errors"

var (
	// ErrUnitNotFound возвращается, когда capacity unit не найден
	ErrUnitNotFound = errors.New("unit not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reservations service: internal error")
)
