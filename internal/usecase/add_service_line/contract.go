package add_service_line

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/admission"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	InsertLine(ctx context.Context, line *domain.ServiceLine) (*domain.ServiceLine, error)
	UpdateTotal(ctx context.Context, id int64, total decimal.Decimal) error
}

// Admission допуск строк в расписание
type Admission interface {
	Admit(ctx context.Context, req admission.Request) ([]*domain.ServiceLine, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
