package reserve_unit

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reserve_unit: invalid input data")

	// ErrUnitNotFound возвращается, когда capacity unit не найден
	ErrUnitNotFound = errors.New("reserve_unit: unit not found")

	// ErrUnitUnavailable возвращается, когда юнит отключен оператором
	// или вся ёмкость занята подтверждёнными бронями и активными холдами.
	// Ожидаемая пользовательская ошибка, не логируется как error.
	ErrUnitUnavailable = errors.New("reserve_unit: unit is not available")

	// ErrConflict возвращается при проигрыше гонки конкурентной записи.
	// Вызывающий код должен перезапросить список юнитов, а не повторять
	// запрос на тот же юнит вслепую.
	ErrConflict = errors.New("reserve_unit: concurrent reservation conflict")

	// ErrStoreUnavailable возвращается при недоступности хранилища
	ErrStoreUnavailable = errors.New("reserve_unit: store unavailable")
)
