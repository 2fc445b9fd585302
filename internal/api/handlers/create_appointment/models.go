package create_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/admission"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// LineRequest HTTP модель строки услуги
type LineRequest struct {
	ServiceID    int64   `json:"serviceId"`
	EmployeeID   int64   `json:"employeeId"`
	Quantity     int     `json:"quantity"`
	StartTime    *string `json:"startTime,omitempty"` // "10:00", опционально
	Observations *string `json:"observations,omitempty"`
}

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ClientID    int64         `json:"clientId"`    // 0 - берётся из X-User-ID
	ServiceDate string        `json:"serviceDate"` // "2025-10-15"
	EntryTime   string        `json:"entryTime"`   // "09:00"
	Motif       string        `json:"motif"`
	Lines       []LineRequest `json:"lines"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(userID int64) (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.ServiceDate)
	if err != nil {
		return nil, fmt.Errorf("serviceDate: %w", err)
	}

	entry, err := types.NewTimeStringFromString(r.EntryTime)
	if err != nil {
		return nil, fmt.Errorf("entryTime: %w", err)
	}

	lines := make([]admission.LineRequest, 0, len(r.Lines))
	for i, l := range r.Lines {
		line, err := l.toLineRequest()
		if err != nil {
			return nil, fmt.Errorf("lines[%d].%w", i, err)
		}
		lines = append(lines, line)
	}

	clientID := r.ClientID
	if clientID == 0 {
		clientID = userID
	}

	return &createAppointment.Request{
		ClientID:  clientID,
		Date:      date,
		EntryTime: entry,
		Motif:     r.Motif,
		Lines:     lines,
	}, nil
}

func (l LineRequest) toLineRequest() (admission.LineRequest, error) {
	line := admission.LineRequest{
		ServiceID:    l.ServiceID,
		EmployeeID:   l.EmployeeID,
		Quantity:     l.Quantity,
		Observations: l.Observations,
	}
	if l.StartTime != nil {
		start, err := types.NewTimeStringFromString(*l.StartTime)
		if err != nil {
			return line, fmt.Errorf("startTime: %w", err)
		}
		line.StartTime = &start
	}
	return line, nil
}
