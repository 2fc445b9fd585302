package admission

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// LineRequest запрошенная строка записи
type LineRequest struct {
	ServiceID  int64
	EmployeeID int64
	Quantity   int
	// StartTime опционально: без него строка начинается, когда закончилась предыдущая
	StartTime    *types.TimeString
	Observations *string
}

// Request набор строк, допускаемых в одну дату
type Request struct {
	// Operation имя операции для логов и метрик (create, add_line, update)
	Operation string
	Date      time.Time
	// EntryTime начало первой строки без явного времени
	EntryTime types.TimeString
	Lines     []LineRequest
	// ExcludeLineIDs строки, чья прежняя занятость не учитывается
	ExcludeLineIDs []int64
}

// Check уже собранные строки, которые нужно проверить на смены и пересечения
type Check struct {
	Operation      string
	Date           time.Time
	Lines          []*domain.ServiceLine
	Indexes        []int // позиции строк в исходном запросе, для отчёта об ошибке
	ExcludeLineIDs []int64
}
