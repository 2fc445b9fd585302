package domain

import "time"

// AppointmentFilter фильтр для списка записей
type AppointmentFilter struct {
	ClientID   *int64
	EmployeeID *int64 // через строки записи
	ServiceID  *int64 // через строки записи
	Status     *AppointmentStatus
	DateFrom   *time.Time
	DateTo     *time.Time
	Page       int
	PageSize   int
}

// Offset returns the row offset for the requested page
func (f AppointmentFilter) Offset() uint64 {
	if f.Page <= 1 {
		return 0
	}
	return uint64((f.Page - 1) * f.PageSize)
}

// AppointmentPage is one page of appointments with the total count of matching rows
type AppointmentPage struct {
	Appointments []*Appointment
	Total        int
	Page         int
	PageSize     int
}
