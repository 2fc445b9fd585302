package create_shift

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/shifts"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты смены, ожидается YYYY-MM-DD"
	msgDuplicateShift     = "у сотрудника уже есть смена на эту дату"
)

type Handler struct {
	service ShiftService
	logger  Logger
}

func NewHandler(service ShiftService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/shifts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateShiftRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /shifts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /shifts - Invalid shift date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	shift, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, shifts.ErrDuplicateShift) {
			h.logger.Warn("POST /shifts - Duplicate shift: employee_id=%d, date=%s", req.EmployeeID, req.ShiftDate)
			handlers.RespondConflict(w, msgDuplicateShift)
			return
		}
		if status := handlers.RespondDomainError(w, err); status == http.StatusInternalServerError {
			h.logger.Error("POST /shifts - Failed to create shift: employee_id=%d, error=%v", req.EmployeeID, err)
		} else {
			h.logger.Warn("POST /shifts - Rejected: employee_id=%d, error=%v", req.EmployeeID, err)
		}
		return
	}

	h.logger.Info("POST /shifts - Shift created successfully: shift_id=%d, employee_id=%d, date=%s",
		shift.ID, shift.EmployeeID, shift.ShiftDate)
	handlers.RespondJSON(w, http.StatusCreated, shift)
}
