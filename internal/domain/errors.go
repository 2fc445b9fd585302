package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Error kinds of the scheduling engine. Callers dispatch on them with errors.Is.
var (
	ErrReferenceInvalid     = errors.New("referenced service or employee is missing or inactive")
	ErrScheduleConflict     = errors.New("requested window collides with an existing booking")
	ErrIllegalTransition    = errors.New("illegal status transition")
	ErrImmutableAppointment = errors.New("appointment can no longer be modified")
	ErrNotDeletable         = errors.New("appointment cannot be deleted in its current status")
	ErrValidation           = errors.New("validation failed")

	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrServiceLineNotFound = errors.New("service line not found")
)

// TransitionError names the rejected from/to pair
type TransitionError struct {
	From AppointmentStatus
	To   AppointmentStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrIllegalTransition, e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// Conflict reasons
const (
	ReasonOverlap      = "overlap"
	ReasonOutsideShift = "outside_shift"
)

// LineConflict describes why one requested line was refused
type LineConflict struct {
	// Index of the line inside the request (0-based)
	Index      int
	ServiceID  int64
	EmployeeID int64
	Start      types.TimeString
	End        types.TimeString
	Reason     string
	// Conflicts are the occupancies that collide with the line (empty for outside_shift)
	Conflicts []Occupancy
}

// ScheduleConflictError reports every refused line of one request
type ScheduleConflictError struct {
	Lines []LineConflict
}

func (e *ScheduleConflictError) Error() string {
	parts := make([]string, 0, len(e.Lines))
	for _, l := range e.Lines {
		parts = append(parts, fmt.Sprintf("line %d (%s-%s): %s, %d collision(s)",
			l.Index, l.Start, l.End, l.Reason, len(l.Conflicts)))
	}
	return fmt.Sprintf("%s: %s", ErrScheduleConflict, strings.Join(parts, "; "))
}

func (e *ScheduleConflictError) Unwrap() error {
	return ErrScheduleConflict
}

// ReferenceError names the missing or inactive entity
type ReferenceError struct {
	Index  int
	Entity string
	ID     int64
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s: line %d %s id=%d", ErrReferenceInvalid, e.Index, e.Entity, e.ID)
}

func (e *ReferenceError) Unwrap() error {
	return ErrReferenceInvalid
}
