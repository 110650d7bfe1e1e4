package find_available_employee

import (
	"errors"
	"net/http"

	"github.com/Serryudy/EAD-sub000/internal/api/handlers"
	assignEmployee "github.com/Serryudy/EAD-sub000/internal/usecase/assign_employee"
)

const (
	msgMissingDate       = "дата обязательна"
	msgMissingTimeWindow = "временное окно обязательно"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput      = "некорректные входные данные"
)

type Handler struct {
	useCase AssignEmployeeUseCase
	logger  Logger
}

func NewHandler(useCase AssignEmployeeUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/employees/available
// Query params: date (required, YYYY-MM-DD), timeWindow (required, "10:00 AM - 11:00 AM")
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /employees/available - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	timeWindow := query.Get("timeWindow")
	if timeWindow == "" {
		h.logger.Warn("GET /employees/available - Missing time window")
		handlers.RespondBadRequest(w, msgMissingTimeWindow)
		return
	}

	useCaseReq, err := ToUseCaseRequest(dateStr, timeWindow)
	if err != nil {
		h.logger.Warn("GET /employees/available - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, assignEmployee.ErrInvalidInput):
			h.logger.Warn("GET /employees/available - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /employees/available - Failed to find employee: date=%s, window=%s, error=%v",
				dateStr, timeWindow, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if result.Employee != nil {
		h.logger.Info("GET /employees/available - Employee found: employee_id=%d, date=%s, window=%s",
			result.Employee.ID, dateStr, timeWindow)
	} else {
		h.logger.Info("GET /employees/available - No free employee: date=%s, window=%s", dateStr, timeWindow)
	}
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
