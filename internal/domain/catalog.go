package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Service is a catalog entry that can be booked
type Service struct {
	ID              int64
	Name            string
	DurationMinutes int
	UnitPrice       decimal.Decimal
	Active          bool
}

// Employee is a user that may perform services
type Employee struct {
	ID          int64
	FullName    string
	Active      bool
	RoleIsStaff bool
}

// CanPerformServices returns true if the employee may be assigned to a line
func (e *Employee) CanPerformServices() bool {
	return e.Active && e.RoleIsStaff
}

// Shift is an employee's working window on one date.
// At most one shift exists per employee per date.
type Shift struct {
	ID         int64
	EmployeeID int64
	ShiftDate  time.Time
	EntryTime  types.TimeString
	ExitTime   types.TimeString
}

// Covers returns true if [start, end) lies fully inside the shift
func (s *Shift) Covers(start, end types.TimeString) bool {
	return !start.IsBefore(s.EntryTime) && !end.IsAfter(s.ExitTime)
}
