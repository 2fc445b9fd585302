package find_available_employees

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса свободных сотрудников
type Request struct {
	Date      time.Time        // Дата
	StartTime types.TimeString // Начало окна
	EndTime   types.TimeString // Конец окна (не включительно)
}

// Employee свободный сотрудник и его смена на дату
type Employee struct {
	ID         int64  `json:"id"`
	FullName   string `json:"fullName"`
	ShiftEntry string `json:"shiftEntry"`
	ShiftExit  string `json:"shiftExit"`
}

// Response модель ответа
type Response struct {
	Date      string     `json:"date"`
	StartTime string     `json:"startTime"`
	EndTime   string     `json:"endTime"`
	Employees []Employee `json:"employees"`
}
