package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// LineStatus represents the status of a single service line
type LineStatus string

const (
	LineStatusActive    LineStatus = "active"
	LineStatusCancelled LineStatus = "cancelled"
)

// Appointment is the booking header. It exclusively owns its service lines.
type Appointment struct {
	ID          int64
	ClientID    int64
	ServiceDate time.Time
	EntryTime   types.TimeString
	Motif       string
	Status      AppointmentStatus
	TotalValue  decimal.Decimal

	// Lines ordered by start time, then id
	Lines []*ServiceLine

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ServiceLine is one service-employee-window unit inside an appointment
type ServiceLine struct {
	ID            int64
	AppointmentID int64
	ServiceID     int64
	EmployeeID    int64
	Quantity      int
	StartTime     types.TimeString
	EndTime       types.TimeString

	// Snapshots copied from the catalog at admission time
	UnitPrice       decimal.Decimal
	ServiceName     string
	DurationMinutes int

	Observations *string
	Status       LineStatus
	CancelledAt  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the line still counts for totals and occupancy
func (l *ServiceLine) IsActive() bool {
	return l.Status == LineStatusActive
}

// Subtotal returns quantity x unit price snapshot
func (l *ServiceLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// ActiveLines returns lines that are not cancelled
func (a *Appointment) ActiveLines() []*ServiceLine {
	active := make([]*ServiceLine, 0, len(a.Lines))
	for _, l := range a.Lines {
		if l.IsActive() {
			active = append(active, l)
		}
	}
	return active
}

// ComputeTotal sums quantity x unit price over active lines
func (a *Appointment) ComputeTotal() decimal.Decimal {
	return ComputeTotal(a.Lines)
}

// RecomputeTotal refreshes TotalValue from the active lines
func (a *Appointment) RecomputeTotal() {
	a.TotalValue = a.ComputeTotal()
}

// FindLine returns the line with the given id
func (a *Appointment) FindLine(lineID int64) (*ServiceLine, bool) {
	for _, l := range a.Lines {
		if l.ID == lineID {
			return l, true
		}
	}
	return nil, false
}

// EnsureMutable rejects edits on finalized or cancelled appointments
func (a *Appointment) EnsureMutable() error {
	if a.Status.IsImmutable() {
		return fmt.Errorf("%w: appointment id=%d is %s", ErrImmutableAppointment, a.ID, a.Status)
	}
	return nil
}

// OccupiesResources returns true if the appointment's active lines block their windows
func (a *Appointment) OccupiesResources() bool {
	return a.Status.OccupiesResources()
}

// ComputeTotal sums quantity x unit price over the active lines given
func ComputeTotal(lines []*ServiceLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		if !l.IsActive() {
			continue
		}
		total = total.Add(l.Subtotal())
	}
	return total
}

// ValidateTotal enforces 0 < total <= MaxTotalValue
func ValidateTotal(total decimal.Decimal) error {
	if !total.IsPositive() {
		return fmt.Errorf("%w: total value must be positive, got %s", ErrValidation, total.StringFixed(2))
	}
	if total.GreaterThan(MaxTotalValue) {
		return fmt.Errorf("%w: total value %s exceeds %s", ErrValidation, total.StringFixed(2), MaxTotalValue.StringFixed(2))
	}
	return nil
}
