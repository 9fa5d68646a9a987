package models

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// CreateUnitRequest запрос на создание capacity unit
type CreateUnitRequest struct {
	PlanID      int64
	StaffID     *int64
	WindowStart time.Time
	WindowEnd   time.Time
	MaxCapacity int
	IsAvailable bool
}

// HoldView активный холд в составе ответа
type HoldView struct {
	HolderID  string
	ExpiresAt time.Time
}

// UnitResponse представление capacity unit для вызывающего кода
type UnitResponse struct {
	ID                int64
	PlanID            int64
	StaffID           *int64
	WindowStart       time.Time
	WindowEnd         time.Time
	MaxCapacity       int
	CurrentBookings   int
	IsAvailable       bool
	ActiveHolds       []HoldView
	RemainingCapacity int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// FromDomainUnit конвертирует доменный юнит в ответ сервиса.
// Истёкшие холды отбрасываются: наружу они не видны независимо от sweep.
func FromDomainUnit(unit *domain.CapacityUnit, now time.Time) *UnitResponse {
	activeHolds := make([]HoldView, 0, len(unit.Holds))
	for _, h := range unit.Holds {
		if h.IsExpired(now) {
			continue
		}
		activeHolds = append(activeHolds, HoldView{
			HolderID:  h.HolderID,
			ExpiresAt: h.ExpiresAt,
		})
	}

	return &UnitResponse{
		ID:                unit.ID,
		PlanID:            unit.PlanID,
		StaffID:           unit.StaffID,
		WindowStart:       unit.WindowStart,
		WindowEnd:         unit.WindowEnd,
		MaxCapacity:       unit.MaxCapacity,
		CurrentBookings:   unit.CurrentBookings,
		IsAvailable:       unit.IsAvailable,
		ActiveHolds:       activeHolds,
		RemainingCapacity: unit.RemainingCapacity(now),
		CreatedAt:         unit.CreatedAt,
		UpdatedAt:         unit.UpdatedAt,
	}
}
