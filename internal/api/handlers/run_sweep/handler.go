package run_sweep

import (
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
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

// Handle POST /api/v1/maintenance/sweep
// Ручной запуск уборки истёкших холдов, в дополнение к фоновому тикеру
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reclaimed, err := h.service.SweepExpired(r.Context())
	if err != nil {
		h.logger.Error("POST /maintenance/sweep - Sweep failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /maintenance/sweep - Sweep completed: reclaimed=%d", reclaimed)
	handlers.RespondJSON(w, http.StatusOK, SweepResponse{Reclaimed: reclaimed})
}
