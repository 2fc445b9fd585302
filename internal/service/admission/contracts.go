package admission

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/conflicts"
)

// CatalogRepository каталог услуг и сотрудников
type CatalogRepository interface {
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	GetEmployee(ctx context.Context, id int64) (*domain.Employee, error)
}

// ShiftRepository смены сотрудников
type ShiftRepository interface {
	GetByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) (*domain.Shift, error)
}

// ConflictChecker проверка пересечений окон
type ConflictChecker interface {
	CheckBatch(ctx context.Context, date time.Time, cands []conflicts.Candidate, exclude []int64) ([]domain.LineConflict, error)
}

// Metrics счетчики отклонённых строк
type Metrics interface {
	ObserveConflict(operation, reason string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
