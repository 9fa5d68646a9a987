package capacity

import "errors"

var (
	// ErrUnitNotFound возвращается, когда capacity unit не найден
	ErrUnitNotFound = errors.New("capacity.repository: unit not found")

	// ErrCapacityExceeded возвращается, когда подтверждение брони превысило бы max_capacity
	ErrCapacityExceeded = errors.New("capacity.repository: capacity exceeded")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("capacity.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("capacity.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("capacity.repository: failed to scan row")
)
