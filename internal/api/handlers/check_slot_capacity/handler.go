package check_slot_capacity

import (
	"errors"
	"net/http"

	"github.com/Serryudy/EAD-sub000/internal/api/handlers"
	checkSlotCapacity "github.com/Serryudy/EAD-sub000/internal/usecase/check_slot_capacity"
)

const (
	msgMissingDate  = "дата обязательна"
	msgMissingTime  = "время начала обязательно"
	msgInvalidQuery = "некорректные параметры запроса"
	msgInvalidInput = "некорректные входные данные"
)

type Handler struct {
	useCase CheckSlotCapacityUseCase
	logger  Logger
}

func NewHandler(useCase CheckSlotCapacityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments/slot-capacity
// Query params: date (required, YYYY-MM-DD), time (required, HH:MM),
// duration (optional, minutes)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /appointments/slot-capacity - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	timeStr := query.Get("time")
	if timeStr == "" {
		h.logger.Warn("GET /appointments/slot-capacity - Missing time")
		handlers.RespondBadRequest(w, msgMissingTime)
		return
	}

	useCaseReq, err := ToUseCaseRequest(dateStr, timeStr, query.Get("duration"))
	if err != nil {
		h.logger.Warn("GET /appointments/slot-capacity - Invalid query params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkSlotCapacity.ErrInvalidInput):
			h.logger.Warn("GET /appointments/slot-capacity - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /appointments/slot-capacity - Failed to check capacity: date=%s, time=%s, error=%v",
				dateStr, timeStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments/slot-capacity - Capacity checked: date=%s, time=%s, available=%t, remaining=%d",
		dateStr, timeStr, result.IsAvailable, result.CapacityRemaining)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
