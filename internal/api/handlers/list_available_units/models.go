package list_available_units

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	listAvailableUnits "github.com/m04kA/SMC-ReservationService/internal/usecase/list_available_units"
)

// AvailableUnitResponse HTTP модель доступного юнита
type AvailableUnitResponse struct {
	ID                int64  `json:"id"`
	PlanID            int64  `json:"planId"`
	StaffID           *int64 `json:"staffId,omitempty"`
	WindowStart       string `json:"windowStart"`
	WindowEnd         string `json:"windowEnd"`
	MaxCapacity       int    `json:"maxCapacity"`
	RemainingCapacity int    `json:"remainingCapacity"`
}

// ListResponse HTTP модель ответа со списком доступных юнитов
type ListResponse struct {
	PlanID int64                   `json:"planId"`
	Units  []AvailableUnitResponse `json:"units"`
}

// ToUseCaseRequest собирает запрос use case из параметров URL и query
func ToUseCaseRequest(planID int64, staffID *int64, startFromStr, startToStr string) (*listAvailableUnits.Request, error) {
	var startFrom, startTo *time.Time

	if startFromStr != "" {
		t, err := time.Parse(domain.TimestampFormat, startFromStr)
		if err != nil {
			return nil, err
		}
		startFrom = &t
	}

	if startToStr != "" {
		t, err := time.Parse(domain.TimestampFormat, startToStr)
		if err != nil {
			return nil, err
		}
		startTo = &t
	}

	return &listAvailableUnits.Request{
		PlanID:    planID,
		StaffID:   staffID,
		StartFrom: startFrom,
		StartTo:   startTo,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *listAvailableUnits.Response) *ListResponse {
	units := make([]AvailableUnitResponse, len(resp.Units))
	for i, u := range resp.Units {
		units[i] = AvailableUnitResponse{
			ID:                u.ID,
			PlanID:            u.PlanID,
			StaffID:           u.StaffID,
			WindowStart:       u.WindowStart.Format(domain.TimestampFormat),
			WindowEnd:         u.WindowEnd.Format(domain.TimestampFormat),
			MaxCapacity:       u.MaxCapacity,
			RemainingCapacity: u.RemainingCapacity,
		}
	}

	return &ListResponse{
		PlanID: resp.PlanID,
		Units:  units,
	}
}
