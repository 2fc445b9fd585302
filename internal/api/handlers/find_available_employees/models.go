package find_available_employees

import (
	"fmt"
	"net/url"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	findAvailable "github.com/m04kA/SMC-AppointmentService/internal/usecase/find_available_employees"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// ToUseCaseRequest собирает запрос из query параметров date, startTime, endTime
func ToUseCaseRequest(q url.Values) (*findAvailable.Request, error) {
	date, err := time.Parse(domain.DateFormat, q.Get("date"))
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}

	start, err := types.NewTimeStringFromString(q.Get("startTime"))
	if err != nil {
		return nil, fmt.Errorf("startTime: %w", err)
	}

	end, err := types.NewTimeStringFromString(q.Get("endTime"))
	if err != nil {
		return nil, fmt.Errorf("endTime: %w", err)
	}

	return &findAvailable.Request{
		Date:      date,
		StartTime: start,
		EndTime:   end,
	}, nil
}
