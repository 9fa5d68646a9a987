package create_unit

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	unitsModels "github.com/m04kA/SMC-ReservationService/internal/service/units/models"
)

// CreateUnitRequest HTTP запрос на создание capacity unit
type CreateUnitRequest struct {
	PlanID      int64  `json:"planId"`
	StaffID     *int64 `json:"staffId,omitempty"`
	WindowStart string `json:"windowStart"`
	WindowEnd   string `json:"windowEnd"`
	MaxCapacity int    `json:"maxCapacity"`
	IsAvailable *bool  `json:"isAvailable,omitempty"`
}

// CreateUnitResponse HTTP ответ на создание capacity unit
type CreateUnitResponse struct {
	ID                int64  `json:"id"`
	PlanID            int64  `json:"planId"`
	StaffID           *int64 `json:"staffId,omitempty"`
	WindowStart       string `json:"windowStart"`
	WindowEnd         string `json:"windowEnd"`
	MaxCapacity       int    `json:"maxCapacity"`
	CurrentBookings   int    `json:"currentBookings"`
	IsAvailable       bool   `json:"isAvailable"`
	RemainingCapacity int    `json:"remainingCapacity"`
	CreatedAt         string `json:"createdAt"`
}

// ToServiceRequest конвертирует HTTP запрос в запрос сервиса.
// Окна передаются строками RFC3339, isAvailable по умолчанию true.
func (r *CreateUnitRequest) ToServiceRequest() (*unitsModels.CreateUnitRequest, error) {
	windowStart, err := time.Parse(domain.TimestampFormat, r.WindowStart)
	if err != nil {
		return nil, fmt.Errorf("invalid windowStart: %v", err)
	}

	windowEnd, err := time.Parse(domain.TimestampFormat, r.WindowEnd)
	if err != nil {
		return nil, fmt.Errorf("invalid windowEnd: %v", err)
	}

	isAvailable := true
	if r.IsAvailable != nil {
		isAvailable = *r.IsAvailable
	}

	return &unitsModels.CreateUnitRequest{
		PlanID:      r.PlanID,
		StaffID:     r.StaffID,
		WindowStart: windowStart,
		WindowEnd:   windowEnd,
		MaxCapacity: r.MaxCapacity,
		IsAvailable: isAvailable,
	}, nil
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(unit *unitsModels.UnitResponse) *CreateUnitResponse {
	return &CreateUnitResponse{
		ID:                unit.ID,
		PlanID:            unit.PlanID,
		StaffID:           unit.StaffID,
		WindowStart:       unit.WindowStart.Format(domain.TimestampFormat),
		WindowEnd:         unit.WindowEnd.Format(domain.TimestampFormat),
		MaxCapacity:       unit.MaxCapacity,
		CurrentBookings:   unit.CurrentBookings,
		IsAvailable:       unit.IsAvailable,
		RemainingCapacity: unit.RemainingCapacity,
		CreatedAt:         unit.CreatedAt.Format(domain.TimestampFormat),
	}
}
