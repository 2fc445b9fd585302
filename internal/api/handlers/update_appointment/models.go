package update_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	updateAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/update_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// LinePatchRequest HTTP модель изменения строки. Отсутствующее поле не меняется.
type LinePatchRequest struct {
	ID           int64   `json:"id"`
	ServiceID    *int64  `json:"serviceId,omitempty"`
	EmployeeID   *int64  `json:"employeeId,omitempty"`
	Quantity     *int    `json:"quantity,omitempty"`
	StartTime    *string `json:"startTime,omitempty"`
	Observations *string `json:"observations,omitempty"`
}

// UpdateAppointmentRequest HTTP request model
type UpdateAppointmentRequest struct {
	ServiceDate *string            `json:"serviceDate,omitempty"`
	EntryTime   *string            `json:"entryTime,omitempty"`
	Motif       *string            `json:"motif,omitempty"`
	Lines       []LinePatchRequest `json:"lines,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateAppointmentRequest) ToUseCaseRequest(appointmentID int64) (*updateAppointment.Request, error) {
	req := &updateAppointment.Request{
		AppointmentID: appointmentID,
		Motif:         r.Motif,
	}

	if r.ServiceDate != nil {
		d, err := time.Parse(domain.DateFormat, *r.ServiceDate)
		if err != nil {
			return nil, fmt.Errorf("serviceDate: %w", err)
		}
		req.Date = &d
	}

	if r.EntryTime != nil {
		t, err := types.NewTimeStringFromString(*r.EntryTime)
		if err != nil {
			return nil, fmt.Errorf("entryTime: %w", err)
		}
		req.EntryTime = &t
	}

	for i, l := range r.Lines {
		patch := updateAppointment.LinePatch{
			ID:           l.ID,
			ServiceID:    l.ServiceID,
			EmployeeID:   l.EmployeeID,
			Quantity:     l.Quantity,
			Observations: l.Observations,
		}
		if l.StartTime != nil {
			t, err := types.NewTimeStringFromString(*l.StartTime)
			if err != nil {
				return nil, fmt.Errorf("lines[%d].startTime: %w", i, err)
			}
			patch.StartTime = &t
		}
		req.Lines = append(req.Lines, patch)
	}

	return req, nil
}
