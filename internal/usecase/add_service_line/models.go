package add_service_line

import (
	"github.com/m04kA/SMC-AppointmentService/internal/service/admission"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// Request модель запроса на добавление строки.
// Без StartTime строка начинается, когда заканчивается последняя активная строка записи.
type Request struct {
	AppointmentID int64
	Line          admission.LineRequest
}

// Response запись с добавленной строкой
type Response = models.AppointmentResponse
