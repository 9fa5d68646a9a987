package reserve_unit

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	reserveUnit "github.com/m04kA/SMC-ReservationService/internal/usecase/reserve_unit"
)

const (
	msgInvalidUnitID      = "некорректный ID юнита"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует идентификатор пользователя"
	msgUnitNotFound       = "юнит не найден"
	msgUnitUnavailable    = "слот больше недоступен, выберите другой"
	msgConflict           = "слот только что заняли, обновите список и выберите другой"
	msgStoreUnavailable   = "хранилище временно недоступно, повторите попытку"
)

type Handler struct {
	useCase ReserveUnitUseCase
	logger  Logger
}

func NewHandler(useCase ReserveUnitUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/units/{unitId}/hold
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	unitID, err := strconv.ParseInt(vars["unitId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /units/{id}/hold - Invalid unit ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUnitID)
		return
	}

	holderID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("POST /units/{id}/hold - Missing user ID: unit_id=%d", unitID)
		handlers.RespondError(w, http.StatusUnauthorized, msgMissingUserID)
		return
	}

	// Тело опционально: пустое тело означает TTL по умолчанию
	var req ReserveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /units/{id}/hold - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(unitID, holderID))
	if err != nil {
		switch {
		case errors.Is(err, reserveUnit.ErrUnitUnavailable):
			// Ожидаемая гонка за ёмкость, не ошибка сервиса
			h.logger.Info("POST /units/{id}/hold - Unit unavailable: unit_id=%d, holder=%s", unitID, holderID)
			handlers.RespondConflict(w, msgUnitUnavailable)

		case errors.Is(err, reserveUnit.ErrConflict):
			h.logger.Info("POST /units/{id}/hold - Concurrent conflict: unit_id=%d, holder=%s", unitID, holderID)
			handlers.RespondConflict(w, msgConflict)

		case errors.Is(err, reserveUnit.ErrUnitNotFound):
			h.logger.Warn("POST /units/{id}/hold - Unit not found: unit_id=%d", unitID)
			handlers.RespondNotFound(w, msgUnitNotFound)

		case errors.Is(err, reserveUnit.ErrInvalidInput):
			h.logger.Warn("POST /units/{id}/hold - Invalid input: unit_id=%d, error=%v", unitID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, reserveUnit.ErrStoreUnavailable):
			h.logger.Error("POST /units/{id}/hold - Store unavailable: unit_id=%d, error=%v", unitID, err)
			handlers.RespondServiceUnavailable(w, msgStoreUnavailable)

		default:
			h.logger.Error("POST /units/{id}/hold - Failed to reserve: unit_id=%d, holder=%s, error=%v",
				unitID, holderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /units/{id}/hold - Hold acquired: unit_id=%d, holder=%s, expires_at=%s, refreshed=%t",
		unitID, holderID, response.ExpiresAt, response.Refreshed)
	handlers.RespondJSON(w, http.StatusOK, response)
}
