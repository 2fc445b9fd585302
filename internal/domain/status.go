package domain

import "fmt"

// AppointmentStatus represents the lifecycle status of an appointment header
type AppointmentStatus string

const (
	StatusScheduled         AppointmentStatus = "scheduled"
	StatusConfirmed         AppointmentStatus = "confirmed"
	StatusInProgress        AppointmentStatus = "in_progress"
	StatusFinished          AppointmentStatus = "finished"
	StatusPaid              AppointmentStatus = "paid"
	StatusRescheduled       AppointmentStatus = "rescheduled"
	StatusCancelledByClient AppointmentStatus = "cancelled_by_client"
	StatusNoShow            AppointmentStatus = "no_show"
)

// transitions is the single source of truth for legal status changes.
// NoShow has no inbound edge and no outbound edge.
var transitions = map[AppointmentStatus][]AppointmentStatus{
	StatusScheduled:         {StatusConfirmed, StatusRescheduled, StatusCancelledByClient},
	StatusConfirmed:         {StatusInProgress, StatusRescheduled, StatusCancelledByClient},
	StatusRescheduled:       {StatusConfirmed, StatusCancelledByClient},
	StatusInProgress:        {StatusFinished, StatusCancelledByClient},
	StatusFinished:          {StatusPaid},
	StatusPaid:              {},
	StatusCancelledByClient: {},
	StatusNoShow:            {},
}

// AllStatuses lists every known status in lifecycle order
var AllStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusConfirmed,
	StatusInProgress,
	StatusFinished,
	StatusPaid,
	StatusRescheduled,
	StatusCancelledByClient,
	StatusNoShow,
}

// ReleasedStatuses are statuses whose lines no longer occupy any resource
var ReleasedStatuses = []AppointmentStatus{
	StatusCancelledByClient,
	StatusNoShow,
}

// ParseStatus converts a raw string into a known status
func ParseStatus(s string) (AppointmentStatus, error) {
	status := AppointmentStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: unknown status %q", ErrValidation, s)
	}
	return status, nil
}

// IsValid returns true if the status is one of the defined states
func (s AppointmentStatus) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransitionTo returns true if the table allows s -> to
func (s AppointmentStatus) CanTransitionTo(to AppointmentStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the statuses reachable from s in one step
func (s AppointmentStatus) AllowedTransitions() []AppointmentStatus {
	allowed := transitions[s]
	out := make([]AppointmentStatus, len(allowed))
	copy(out, allowed)
	return out
}

// IsTerminal returns true if no transition leaves s
func (s AppointmentStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// IsImmutable returns true if header and lines may no longer be edited
func (s AppointmentStatus) IsImmutable() bool {
	switch s {
	case StatusFinished, StatusPaid, StatusCancelledByClient, StatusNoShow:
		return true
	default:
		return false
	}
}

// IsDeletable returns true if the appointment may be physically removed
func (s AppointmentStatus) IsDeletable() bool {
	return s == StatusScheduled || s == StatusCancelledByClient
}

// OccupiesResources returns true if lines of an appointment in this status block their window
func (s AppointmentStatus) OccupiesResources() bool {
	for _, released := range ReleasedStatuses {
		if s == released {
			return false
		}
	}
	return true
}

// Transition validates from -> to against the table
func Transition(from, to AppointmentStatus) error {
	if !to.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, to)
	}
	if !from.CanTransitionTo(to) {
		return &TransitionError{From: from, To: to}
	}
	return nil
}
