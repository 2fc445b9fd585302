package cancel_service_line

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidLineID        = "некорректный ID строки услуги"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/lines/{lineId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/lines/{lineId}/cancel - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	lineID, err := strconv.ParseInt(vars["lineId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/lines/{lineId}/cancel - Invalid line ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLineID)
		return
	}

	result, err := h.service.CancelLine(r.Context(), appointmentID, lineID)
	if err != nil {
		if status := handlers.RespondDomainError(w, err); status == http.StatusInternalServerError {
			h.logger.Error("PATCH /appointments/{id}/lines/{lineId}/cancel - Failed to cancel line: appointment_id=%d, line_id=%d, error=%v",
				appointmentID, lineID, err)
		} else {
			h.logger.Warn("PATCH /appointments/{id}/lines/{lineId}/cancel - Rejected: appointment_id=%d, line_id=%d, error=%v",
				appointmentID, lineID, err)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/lines/{lineId}/cancel - Line cancelled: appointment_id=%d, line_id=%d, total=%s",
		appointmentID, lineID, result.TotalValue.StringFixed(2))
	handlers.RespondJSON(w, http.StatusOK, result)
}
