package reserve_unit

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	reserveUnit "github.com/m04kA/SMC-ReservationService/internal/usecase/reserve_unit"
)

// ReserveRequest HTTP request model
type ReserveRequest struct {
	TTLMinutes int `json:"ttlMinutes,omitempty"` // 0 = TTL по умолчанию
}

// HoldResponse HTTP response model
type HoldResponse struct {
	UnitID    int64  `json:"unitId"`
	ExpiresAt string `json:"expiresAt"`
	Refreshed bool   `json:"refreshed"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ReserveRequest) ToUseCaseRequest(unitID int64, holderID string) *reserveUnit.Request {
	return &reserveUnit.Request{
		UnitID:   unitID,
		HolderID: holderID,
		TTL:      time.Duration(r.TTLMinutes) * time.Minute,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *reserveUnit.Response) *HoldResponse {
	return &HoldResponse{
		UnitID:    resp.UnitID,
		ExpiresAt: resp.ExpiresAt.Format(domain.TimestampFormat),
		Refreshed: resp.Refreshed,
	}
}
