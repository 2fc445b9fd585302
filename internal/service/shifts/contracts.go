package shifts

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// ShiftRepository интерфейс репозитория смен
type ShiftRepository interface {
	Create(ctx context.Context, s *domain.Shift) (*domain.Shift, error)
}

// EmployeeRepository поиск сотрудника в каталоге
type EmployeeRepository interface {
	GetEmployee(ctx context.Context, id int64) (*domain.Employee, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
