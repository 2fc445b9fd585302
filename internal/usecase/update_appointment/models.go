package update_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// LinePatch изменения одной строки. nil - поле не меняется.
type LinePatch struct {
	ID           int64
	ServiceID    *int64
	EmployeeID   *int64
	Quantity     *int
	StartTime    *types.TimeString
	Observations *string
}

// Request модель запроса на изменение записи
type Request struct {
	AppointmentID int64
	Date          *time.Time
	EntryTime     *types.TimeString
	Motif         *string
	Lines         []LinePatch
}

// IsEmpty сообщает, что запрос ничего не меняет
func (r *Request) IsEmpty() bool {
	return r.Date == nil && r.EntryTime == nil && r.Motif == nil && len(r.Lines) == 0
}

// Response изменённая запись со строками
type Response = models.AppointmentResponse
