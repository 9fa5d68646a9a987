package create_unit

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	unitsService "github.com/m04kA/SMC-ReservationService/internal/service/units"
)

const (
	msgInvalidBody  = "некорректное тело запроса"
	msgInvalidInput = "некорректные параметры юнита"
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

// Handle POST /api/v1/units
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateUnitRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /units - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /units - Invalid timestamps: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	unit, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, unitsService.ErrInvalidInput):
			h.logger.Warn("POST /units - Validation failed: plan=%d, error=%v", req.PlanID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /units - Failed to create unit: plan=%d, error=%v", req.PlanID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /units - Unit created: id=%d, plan=%d, max_capacity=%d",
		unit.ID, unit.PlanID, unit.MaxCapacity)
	handlers.RespondJSON(w, http.StatusCreated, FromServiceResponse(unit))
}
