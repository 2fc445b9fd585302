package find_available_employees

import (
	"context"

	findAvailable "github.com/m04kA/SMC-AppointmentService/internal/usecase/find_available_employees"
)

type FindAvailableEmployeesUseCase interface {
	Execute(ctx context.Context, req *findAvailable.Request) (*findAvailable.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
