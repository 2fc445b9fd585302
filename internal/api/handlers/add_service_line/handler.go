package add_service_line

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidTime          = "некорректный формат времени начала, ожидается HH:MM"
)

type Handler struct {
	useCase AddServiceLineUseCase
	logger  Logger
}

func NewHandler(useCase AddServiceLineUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/{appointmentId}/lines
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := strconv.ParseInt(mux.Vars(r)["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/lines - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req AddServiceLineRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/{id}/lines - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(appointmentID)
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/lines - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if status := handlers.RespondDomainError(w, err); status == http.StatusInternalServerError {
			h.logger.Error("POST /appointments/{id}/lines - Failed to add line: appointment_id=%d, error=%v",
				appointmentID, err)
		} else {
			h.logger.Warn("POST /appointments/{id}/lines - Rejected: appointment_id=%d, service_id=%d, employee_id=%d, error=%v",
				appointmentID, req.ServiceID, req.EmployeeID, err)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/lines - Line added: appointment_id=%d, lines=%d, total=%s",
		appointmentID, len(result.Lines), result.TotalValue.StringFixed(2))
	handlers.RespondJSON(w, http.StatusCreated, result)
}
