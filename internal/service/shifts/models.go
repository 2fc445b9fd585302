package shifts

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// CreateRequest запрос на создание смены
type CreateRequest struct {
	EmployeeID int64
	ShiftDate  time.Time
	EntryTime  string
	ExitTime   string
}

// ShiftResponse ответ с данными смены
type ShiftResponse struct {
	ID         int64  `json:"id"`
	EmployeeID int64  `json:"employeeId"`
	ShiftDate  string `json:"shiftDate"`
	EntryTime  string `json:"entryTime"`
	ExitTime   string `json:"exitTime"`
}

// FromDomainShift конвертирует domain модель в DTO
func FromDomainShift(s *domain.Shift) *ShiftResponse {
	return &ShiftResponse{
		ID:         s.ID,
		EmployeeID: s.EmployeeID,
		ShiftDate:  s.ShiftDate.Format(domain.DateFormat),
		EntryTime:  s.EntryTime.String(),
		ExitTime:   s.ExitTime.String(),
	}
}
