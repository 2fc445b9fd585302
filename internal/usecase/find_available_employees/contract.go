package find_available_employees

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// ShiftRepository интерфейс репозитория смен
type ShiftRepository interface {
	ListCovering(ctx context.Context, date time.Time, start, end types.TimeString) ([]*domain.Shift, error)
}

// EmployeeRepository интерфейс каталога сотрудников
type EmployeeRepository interface {
	ListActiveStaff(ctx context.Context, ids []int64) ([]*domain.Employee, error)
}

// BusyChecker занятость сотрудников. Должен работать по ключу employee.
type BusyChecker interface {
	BusyResources(ctx context.Context, date time.Time, ids []int64, start, end types.TimeString) (map[int64][]domain.Occupancy, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
