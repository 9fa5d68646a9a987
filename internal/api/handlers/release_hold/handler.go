package release_hold

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	reservationsService "github.com/m04kA/SMC-ReservationService/internal/service/reservations"
)

const (
	msgInvalidUnitID = "некорректный ID юнита"
	msgMissingUserID = "отсутствует идентификатор пользователя"
	msgUnitNotFound  = "юнит не найден"
)

type Handler struct {
	service ReservationsService
	logger  Logger
}

func NewHandler(service ReservationsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/units/{unitId}/hold
// Идемпотентный: повторный release и release истёкшего холда тоже успешны
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	unitID, err := strconv.ParseInt(vars["unitId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /units/{id}/hold - Invalid unit ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUnitID)
		return
	}

	holderID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("DELETE /units/{id}/hold - Missing user ID: unit_id=%d", unitID)
		handlers.RespondError(w, http.StatusUnauthorized, msgMissingUserID)
		return
	}

	if err := h.service.Release(r.Context(), unitID, holderID); err != nil {
		switch {
		case errors.Is(err, reservationsService.ErrUnitNotFound):
			h.logger.Warn("DELETE /units/{id}/hold - Unit not found: unit_id=%d", unitID)
			handlers.RespondNotFound(w, msgUnitNotFound)

		case errors.Is(err, reservationsService.ErrInvalidInput):
			h.logger.Warn("DELETE /units/{id}/hold - Invalid input: unit_id=%d, error=%v", unitID, err)
			handlers.RespondBadRequest(w, msgInvalidUnitID)

		default:
			h.logger.Error("DELETE /units/{id}/hold - Failed to release: unit_id=%d, holder=%s, error=%v",
				unitID, holderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /units/{id}/hold - Hold released: unit_id=%d, holder=%s", unitID, holderID)
	handlers.RespondNoContent(w)
}
