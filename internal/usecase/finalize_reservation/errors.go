package finalize_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("finalize_reservation: invalid input data")

	// ErrUnitNotFound возвращается, когда capacity unit не найден
	ErrUnitNotFound = errors.New("finalize_reservation: unit not found")

	// ErrHoldNotHeld возвращается, когда у держателя нет живого холда:
	// холд истёк, был отпущен или никогда не брался. Медленный checkout
	// не может финализировать бронь по просроченному холду.
	ErrHoldNotHeld = errors.New("finalize_reservation: hold is not held")

	// ErrCapacityExceeded возвращается, если инкремент броней нарушил бы
	// max_capacity. При соблюдении протокола недостижимо: живой холд
	// гарантирует место.
	ErrCapacityExceeded = errors.New("finalize_reservation: capacity exceeded")

	// ErrConflict возвращается при проигрыше гонки конкурентной записи
	ErrConflict = errors.New("finalize_reservation: concurrent write conflict")

	// ErrStoreUnavailable возвращается при недоступности хранилища
	ErrStoreUnavailable = errors.New("finalize_reservation: store unavailable")
)
