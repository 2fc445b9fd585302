package list_appointments

import (
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

const msgInvalidParams = "некорректные параметры запроса"

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

// Handle GET /api/v1/appointments
// Query params: clientId, employeeId, serviceId, status, dateFrom, dateTo, page, pageSize (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceReq, err := ToServiceRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /appointments - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		if status := handlers.RespondDomainError(w, err); status == http.StatusInternalServerError {
			h.logger.Error("GET /appointments - Failed to list appointments: error=%v", err)
		} else {
			h.logger.Warn("GET /appointments - Rejected: %v", err)
		}
		return
	}

	h.logger.Info("GET /appointments - Appointments retrieved successfully: count=%d, total=%d",
		len(result.Appointments), result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
