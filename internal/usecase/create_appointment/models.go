package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/service/admission"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	ClientID  int64                   // ID клиента
	Date      time.Time               // Дата визита (без времени)
	EntryTime types.TimeString        // Время прихода клиента
	Motif     string                  // Повод визита, 1-100 символов
	Lines     []admission.LineRequest // Строки услуг, минимум одна
}

// Response созданная запись со строками
type Response = models.AppointmentResponse
