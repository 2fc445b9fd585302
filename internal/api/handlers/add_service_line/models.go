package add_service_line

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/service/admission"
	addServiceLine "github.com/m04kA/SMC-AppointmentService/internal/usecase/add_service_line"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// AddServiceLineRequest HTTP request model
type AddServiceLineRequest struct {
	ServiceID    int64   `json:"serviceId"`
	EmployeeID   int64   `json:"employeeId"`
	Quantity     int     `json:"quantity"`
	StartTime    *string `json:"startTime,omitempty"` // без него - после последней строки
	Observations *string `json:"observations,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *AddServiceLineRequest) ToUseCaseRequest(appointmentID int64) (*addServiceLine.Request, error) {
	line := admission.LineRequest{
		ServiceID:    r.ServiceID,
		EmployeeID:   r.EmployeeID,
		Quantity:     r.Quantity,
		Observations: r.Observations,
	}
	if r.StartTime != nil {
		start, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, fmt.Errorf("startTime: %w", err)
		}
		line.StartTime = &start
	}

	return &addServiceLine.Request{
		AppointmentID: appointmentID,
		Line:          line,
	}, nil
}
