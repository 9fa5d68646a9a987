package get_unit

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

// Handle GET /api/v1/units/{unitId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	unitID, err := strconv.ParseInt(vars["unitId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /units/{id} - Invalid unit ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUnitID)
		return
	}

	unit, err := h.service.GetByID(r.Context(), unitID)
	if err != nil {
		switch {
		case errors.Is(err, unitsService.ErrUnitNotFound):
			h.logger.Warn("GET /units/{id} - Unit not found: unit_id=%d", unitID)
			handlers.RespondNotFound(w, msgUnitNotFound)

		case errors.Is(err, unitsService.ErrInvalidInput):
			h.logger.Warn("GET /units/{id} - Invalid input: unit_id=%d, error=%v", unitID, err)
			handlers.RespondBadRequest(w, msgInvalidUnitID)

		default:
			h.logger.Error("GET /units/{id} - Failed to get unit: unit_id=%d, error=%v", unitID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(unit))
}
