package list_available_units

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	listAvailableUnits "github.com/m04kA/SMC-ReservationService/internal/usecase/list_available_units"
)

const (
	msgInvalidPlanID  = "некорректный ID плана"
	msgInvalidStaffID = "некорректный ID сотрудника"
	msgInvalidTime    = "некорректный формат времени, ожидается RFC3339"
	msgInvalidRange   = "начало диапазона позже его конца"
)

type Handler struct {
	useCase ListAvailableUnitsUseCase
	logger  Logger
}

func NewHandler(useCase ListAvailableUnitsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/plans/{planId}/available-units
// Query params: staffId (опционально), startFrom, startTo (опционально, RFC3339)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	planID, err := strconv.ParseInt(vars["planId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /plans/{id}/available-units - Invalid plan ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPlanID)
		return
	}

	var staffID *int64
	if staffIDStr := r.URL.Query().Get("staffId"); staffIDStr != "" {
		id, err := strconv.ParseInt(staffIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /plans/{id}/available-units - Invalid staff ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStaffID)
			return
		}
		staffID = &id
	}

	useCaseReq, err := ToUseCaseRequest(planID, staffID, r.URL.Query().Get("startFrom"), r.URL.Query().Get("startTo"))
	if err != nil {
		h.logger.Warn("GET /plans/{id}/available-units - Invalid time format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, listAvailableUnits.ErrInvalidRange):
			h.logger.Warn("GET /plans/{id}/available-units - Invalid range: plan_id=%d", planID)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, listAvailableUnits.ErrInvalidInput):
			h.logger.Warn("GET /plans/{id}/available-units - Invalid input: plan_id=%d, error=%v", planID, err)
			handlers.RespondBadRequest(w, msgInvalidPlanID)

		case errors.Is(err, listAvailableUnits.ErrStoreUnavailable):
			h.logger.Error("GET /plans/{id}/available-units - Store unavailable: plan_id=%d, error=%v", planID, err)
			handlers.RespondServiceUnavailable(w, "хранилище временно недоступно")

		default:
			h.logger.Error("GET /plans/{id}/available-units - Failed to list units: plan_id=%d, error=%v", planID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /plans/{id}/available-units - Units listed successfully: plan_id=%d, units_count=%d",
		planID, len(result.Units))
	handlers.RespondJSON(w, http.StatusOK, response)
}
