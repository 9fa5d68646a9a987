package finalize_reservation

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	finalizeReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/finalize_reservation"
)

// FinalizeResponse HTTP response model
type FinalizeResponse struct {
	UnitID          int64  `json:"unitId"`
	CurrentBookings int    `json:"currentBookings"`
	MaxCapacity     int    `json:"maxCapacity"`
	FinalizedAt     string `json:"finalizedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *finalizeReservation.Response) *FinalizeResponse {
	return &FinalizeResponse{
		UnitID:          resp.UnitID,
		CurrentBookings: resp.CurrentBookings,
		MaxCapacity:     resp.MaxCapacity,
		FinalizedAt:     resp.FinalizedAt.Format(domain.TimestampFormat),
	}
}
