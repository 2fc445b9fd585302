package find_available_employees

import (
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

const msgInvalidParams = "ожидаются параметры date=YYYY-MM-DD, startTime=HH:MM, endTime=HH:MM"

type Handler struct {
	useCase FindAvailableEmployeesUseCase
	logger  Logger
}

func NewHandler(useCase FindAvailableEmployeesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/employees/available
// Query params: date, startTime, endTime
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	useCaseReq, err := ToUseCaseRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /employees/available - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if status := handlers.RespondDomainError(w, err); status == http.StatusInternalServerError {
			h.logger.Error("GET /employees/available - Failed to find employees: error=%v", err)
		} else {
			h.logger.Warn("GET /employees/available - Rejected: %v", err)
		}
		return
	}

	h.logger.Info("GET /employees/available - Found %d employees: date=%s, window=%s-%s",
		len(result.Employees), result.Date, result.StartTime, result.EndTime)
	handlers.RespondJSON(w, http.StatusOK, result)
}
