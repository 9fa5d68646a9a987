package list_available_units

import "time"

// Request модель запроса на получение доступных юнитов
type Request struct {
	PlanID    int64      // ID плана (обязательный)
	StaffID   *int64     // Фильтр по сотруднику (опционально)
	StartFrom *time.Time // Нижняя граница window_start включительно (опционально)
	StartTo   *time.Time // Верхняя граница window_end включительно (опционально)
}

// Response модель ответа со списком доступных юнитов
type Response struct {
	PlanID int64
	Units  []AvailableUnit
}

// AvailableUnit юнит, на который прямо сейчас можно взять холд
type AvailableUnit struct {
	ID                int64
	PlanID            int64
	StaffID           *int64
	WindowStart       time.Time
	WindowEnd         time.Time
	MaxCapacity       int
	RemainingCapacity int // Свободная ёмкость без подтверждённых броней и живых холдов
}
