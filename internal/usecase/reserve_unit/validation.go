package reserve_unit

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UnitID <= 0 {
		return fmt.Errorf("%w: unitID must be positive", ErrInvalidInput)
	}

	if req.HolderID == "" {
		return fmt.Errorf("%w: holderID is required", ErrInvalidInput)
	}

	if len(req.HolderID) > domain.MaxHolderIDLength {
		return fmt.Errorf("%w: holderID exceeds %d characters", ErrInvalidInput, domain.MaxHolderIDLength)
	}

	if req.TTL < 0 {
		return fmt.Errorf("%w: ttl must not be negative", ErrInvalidInput)
	}

	return nil
}

// normalizeTTL применяет значение по умолчанию и операторский потолок TTL.
// Потолок ограничивает окно, в котором брошенный checkout держит ёмкость.
func normalizeTTL(ttl, defaultTTL, maxTTL time.Duration) time.Duration {
	if ttl == 0 {
		ttl = defaultTTL
	}
	if ttl > maxTTL {
		ttl = maxTTL
	}
	return ttl
}
