package create_shift

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/shifts"
)

// CreateShiftRequest HTTP request model
type CreateShiftRequest struct {
	EmployeeID int64  `json:"employeeId"`
	ShiftDate  string `json:"shiftDate"` // "2025-10-15"
	EntryTime  string `json:"entryTime"` // "08:00"
	ExitTime   string `json:"exitTime"`  // "17:00"
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса. Время проверяет сервис.
func (r *CreateShiftRequest) ToServiceRequest() (*shifts.CreateRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.ShiftDate)
	if err != nil {
		return nil, err
	}

	return &shifts.CreateRequest{
		EmployeeID: r.EmployeeID,
		ShiftDate:  date,
		EntryTime:  r.EntryTime,
		ExitTime:   r.ExitTime,
	}, nil
}
