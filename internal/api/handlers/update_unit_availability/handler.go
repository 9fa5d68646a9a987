package update_unit_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	unitsService "github.com/m04kA/SMC-ReservationService/internal/service/units"
)

const (
	msgInvalidUnitID = "некорректный ID юнита"
	msgInvalidBody   = "некорректное тело запроса: ожидается поле isAvailable"
	msgUnitNotFound  = "юнит не найден"
)

type Handler struct {
	service UnitsService
	logger  Logger
}

func NewHandler(service UnitsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/units/{unitId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	unitID, err := strconv.ParseInt(vars["unitId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /units/{id}/availability - Invalid unit ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUnitID)
		return
	}

	var req UpdateAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil || req.IsAvailable == nil {
		h.logger.Warn("PATCH /units/{id}/availability - Invalid request body: unit_id=%d, error=%v", unitID, err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	if err := h.service.SetAvailability(r.Context(), unitID, *req.IsAvailable); err != nil {
		switch {
		case errors.Is(err, unitsService.ErrUnitNotFound):
			h.logger.Warn("PATCH /units/{id}/availability - Unit not found: unit_id=%d", unitID)
			handlers.RespondNotFound(w, msgUnitNotFound)

		case errors.Is(err, unitsService.ErrInvalidInput):
			h.logger.Warn("PATCH /units/{id}/availability - Invalid input: unit_id=%d, error=%v", unitID, err)
			handlers.RespondBadRequest(w, msgInvalidUnitID)

		default:
			h.logger.Error("PATCH /units/{id}/availability - Failed to update: unit_id=%d, error=%v", unitID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /units/{id}/availability - Availability updated: unit_id=%d, available=%t",
		unitID, *req.IsAvailable)
	handlers.RespondNoContent(w)
}
