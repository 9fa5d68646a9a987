package finalize_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	finalizeReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/finalize_reservation"
)

const (
	msgInvalidUnitID    = "некорректный ID юнита"
	msgMissingUserID    = "отсутствует идентификатор пользователя"
	msgUnitNotFound     = "юнит не найден"
	msgHoldNotHeld      = "холд истёк или был снят, начните бронирование заново"
	msgConflict         = "конфликт конкурентной записи, повторите попытку"
	msgStoreUnavailable = "хранилище временно недоступно, повторите попытку"
)

type Handler struct {
	useCase FinalizeReservationUseCase
	logger  Logger
}

func NewHandler(useCase FinalizeReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/units/{unitId}/finalize
// Вызывается биллингом после успешной оплаты: конвертирует живой холд
// в подтверждённую бронь
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	unitID, err := strconv.ParseInt(vars["unitId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /units/{id}/finalize - Invalid unit ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUnitID)
		return
	}

	holderID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("POST /units/{id}/finalize - Missing user ID: unit_id=%d", unitID)
		handlers.RespondError(w, http.StatusUnauthorized, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &finalizeReservation.Request{
		UnitID:   unitID,
		HolderID: holderID,
	})
	if err != nil {
		switch {
		case errors.Is(err, finalizeReservation.ErrHoldNotHeld):
			h.logger.Warn("POST /units/{id}/finalize - Hold not held: unit_id=%d, holder=%s", unitID, holderID)
			handlers.RespondConflict(w, msgHoldNotHeld)

		case errors.Is(err, finalizeReservation.ErrConflict):
			h.logger.Info("POST /units/{id}/finalize - Concurrent conflict: unit_id=%d, holder=%s", unitID, holderID)
			handlers.RespondConflict(w, msgConflict)

		case errors.Is(err, finalizeReservation.ErrUnitNotFound):
			h.logger.Warn("POST /units/{id}/finalize - Unit not found: unit_id=%d", unitID)
			handlers.RespondNotFound(w, msgUnitNotFound)

		case errors.Is(err, finalizeReservation.ErrInvalidInput):
			h.logger.Warn("POST /units/{id}/finalize - Invalid input: unit_id=%d, error=%v", unitID, err)
			handlers.RespondBadRequest(w, msgInvalidUnitID)

		case errors.Is(err, finalizeReservation.ErrStoreUnavailable):
			h.logger.Error("POST /units/{id}/finalize - Store unavailable: unit_id=%d, error=%v", unitID, err)
			handlers.RespondServiceUnavailable(w, msgStoreUnavailable)

		default:
			h.logger.Error("POST /units/{id}/finalize - Failed to finalize: unit_id=%d, holder=%s, error=%v",
				unitID, holderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /units/{id}/finalize - Reservation finalized: unit_id=%d, holder=%s, bookings=%d/%d",
		unitID, holderID, response.CurrentBookings, response.MaxCapacity)
	handlers.RespondJSON(w, http.StatusOK, response)
}
