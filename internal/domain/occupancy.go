package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// ResourceKey is the dimension on which bookings contend
type ResourceKey string

const (
	// ResourceService treats the service offering itself as the contended resource
	ResourceService ResourceKey = "service"
	// ResourceEmployee treats the assigned employee as the contended resource
	ResourceEmployee ResourceKey = "employee"
)

// ParseResourceKey converts a configuration value into a ResourceKey
func ParseResourceKey(s string) (ResourceKey, error) {
	switch ResourceKey(s) {
	case ResourceService, ResourceEmployee:
		return ResourceKey(s), nil
	default:
		return "", fmt.Errorf("%w: unknown resource key %q", ErrValidation, s)
	}
}

// ResourceOf returns the id of the contended resource for a (service, employee) pair
func (k ResourceKey) ResourceOf(serviceID, employeeID int64) int64 {
	if k == ResourceEmployee {
		return employeeID
	}
	return serviceID
}

// Occupancy is one active line of a live appointment, as seen by the conflict checker
type Occupancy struct {
	LineID        int64
	AppointmentID int64
	ServiceID     int64
	EmployeeID    int64
	Date          time.Time
	Start         types.TimeString
	End           types.TimeString
}

// Overlaps reports whether [s1,e1) and [s2,e2) intersect.
// Strict on both sides: back-to-back windows do not overlap.
func Overlaps(s1, e1, s2, e2 types.TimeString) bool {
	return s1.IsBefore(e2) && e1.IsAfter(s2)
}

// OverlapsWindow reports whether the occupancy intersects [start, end)
func (o Occupancy) OverlapsWindow(start, end types.TimeString) bool {
	return Overlaps(o.Start, o.End, start, end)
}

// OccupancyFilter selects occupancies on one date
type OccupancyFilter struct {
	Date        time.Time
	ServiceIDs  []int64 // empty = any service
	EmployeeIDs []int64 // empty = any employee
	// ExcludeLineIDs removes the lines being edited from the collision set
	ExcludeLineIDs []int64
}
