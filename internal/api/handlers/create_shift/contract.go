package create_shift

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/shifts"
)

type ShiftService interface {
	Create(ctx context.Context, req *shifts.CreateRequest) (*shifts.ShiftResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
