package get_unit

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	unitsModels "github.com/m04kA/SMC-ReservationService/internal/service/units/models"
)

// HoldResponse активный холд юнита
type HoldResponse struct {
	HolderID  string `json:"holderId"`
	ExpiresAt string `json:"expiresAt"`
}

// UnitResponse HTTP представление capacity unit
type UnitResponse struct {
	ID                int64          `json:"id"`
	PlanID            int64          `json:"planId"`
	StaffID           *int64         `json:"staffId,omitempty"`
	WindowStart       string         `json:"windowStart"`
	WindowEnd         string         `json:"windowEnd"`
	MaxCapacity       int            `json:"maxCapacity"`
	CurrentBookings   int            `json:"currentBookings"`
	IsAvailable       bool           `json:"isAvailable"`
	RemainingCapacity int            `json:"remainingCapacity"`
	ActiveHolds       []HoldResponse `json:"activeHolds"`
	CreatedAt         string         `json:"createdAt"`
	UpdatedAt         string         `json:"updatedAt"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(unit *unitsModels.UnitResponse) *UnitResponse {
	holds := make([]HoldResponse, 0, len(unit.ActiveHolds))
	for _, h := range unit.ActiveHolds {
		holds = append(holds, HoldResponse{
			HolderID:  h.HolderID,
			ExpiresAt: h.ExpiresAt.Format(domain.TimestampFormat),
		})
	}

	return &UnitResponse{
		ID:                unit.ID,
		PlanID:            unit.PlanID,
		StaffID:           unit.StaffID,
		WindowStart:       unit.WindowStart.Format(domain.TimestampFormat),
		WindowEnd:         unit.WindowEnd.Format(domain.TimestampFormat),
		MaxCapacity:       unit.MaxCapacity,
		CurrentBookings:   unit.CurrentBookings,
		IsAvailable:       unit.IsAvailable,
		RemainingCapacity: unit.RemainingCapacity,
		ActiveHolds:       holds,
		CreatedAt:         unit.CreatedAt.Format(domain.TimestampFormat),
		UpdatedAt:         unit.UpdatedAt.Format(domain.TimestampFormat),
	}
}
