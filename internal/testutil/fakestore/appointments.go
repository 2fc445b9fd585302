package fakestore

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
)

// AppointmentRepo mirrors appointment.Repository
type AppointmentRepo struct {
	s *Store
}

func (r *AppointmentRepo) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	if err := r.s.fail("Create"); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := time.Now()
	r.s.st.nextAppt++
	a.ID = r.s.st.nextAppt
	a.ServiceDate = domain.DateOnly(a.ServiceDate)
	a.CreatedAt, a.UpdatedAt = now, now

	for _, l := range a.Lines {
		r.s.st.nextLine++
		l.ID = r.s.st.nextLine
		l.AppointmentID = a.ID
		if l.Status == "" {
			l.Status = domain.LineStatusActive
		}
		l.CreatedAt, l.UpdatedAt = now, now
	}

	stored := copyAppointment(a)
	sortLines(stored.Lines)
	r.s.st.appointments[a.ID] = stored
	return a, nil
}

func (r *AppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.st.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return copyAppointment(a), nil
}

func (r *AppointmentRepo) List(ctx context.Context, filter domain.AppointmentFilter) (*domain.AppointmentPage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	matched := make([]*domain.Appointment, 0)
	for _, a := range r.s.st.appointments {
		if matches(a, filter) {
			matched = append(matched, copyAppointment(a))
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.ServiceDate.Equal(b.ServiceDate) {
			return a.ServiceDate.Before(b.ServiceDate)
		}
		if !a.EntryTime.Equal(b.EntryTime) {
			return a.EntryTime.IsBefore(b.EntryTime)
		}
		return a.ID < b.ID
	})

	page := &domain.AppointmentPage{
		Appointments: make([]*domain.Appointment, 0),
		Total:        len(matched),
		Page:         filter.Page,
		PageSize:     filter.PageSize,
	}

	from := int(filter.Offset())
	if from >= len(matched) {
		return page, nil
	}
	to := from + filter.PageSize
	if to > len(matched) {
		to = len(matched)
	}
	page.Appointments = matched[from:to]
	return page, nil
}

func (r *AppointmentRepo) UpdateHeader(ctx context.Context, a *domain.Appointment) error {
	if err := r.s.fail("UpdateHeader"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.st.appointments[a.ID]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	stored.ServiceDate = domain.DateOnly(a.ServiceDate)
	stored.EntryTime = a.EntryTime
	stored.Motif = a.Motif
	stored.TotalValue = a.TotalValue
	stored.UpdatedAt = time.Now()
	return nil
}

func (r *AppointmentRepo) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus, motif *string) error {
	if err := r.s.fail("UpdateStatus"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.st.appointments[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	stored.Status = status
	if motif != nil {
		stored.Motif = *motif
	}
	stored.UpdatedAt = time.Now()
	return nil
}

func (r *AppointmentRepo) UpdateTotal(ctx context.Context, id int64, total decimal.Decimal) error {
	if err := r.s.fail("UpdateTotal"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.st.appointments[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	stored.TotalValue = total
	return nil
}

func (r *AppointmentRepo) Delete(ctx context.Context, id int64) error {
	if err := r.s.fail("Delete"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.st.appointments[id]; !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	delete(r.s.st.appointments, id)
	return nil
}

func (r *AppointmentRepo) InsertLine(ctx context.Context, line *domain.ServiceLine) (*domain.ServiceLine, error) {
	if err := r.s.fail("InsertLine"); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.st.appointments[line.AppointmentID]
	if !ok {
		return nil, appointmentRepo.ErrForeignKey
	}

	now := time.Now()
	r.s.st.nextLine++
	line.ID = r.s.st.nextLine
	if line.Status == "" {
		line.Status = domain.LineStatusActive
	}
	line.CreatedAt, line.UpdatedAt = now, now

	cp := *line
	stored.Lines = append(stored.Lines, &cp)
	sortLines(stored.Lines)
	return line, nil
}

func (r *AppointmentRepo) UpdateLine(ctx context.Context, line *domain.ServiceLine) error {
	if err := r.s.fail("UpdateLine"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.st.appointments[line.AppointmentID]
	if !ok {
		return appointmentRepo.ErrLineNotFound
	}
	for i, l := range stored.Lines {
		if l.ID == line.ID {
			cp := *line
			cp.Status = l.Status
			cp.CancelledAt = l.CancelledAt
			cp.UpdatedAt = time.Now()
			stored.Lines[i] = &cp
			sortLines(stored.Lines)
			return nil
		}
	}
	return appointmentRepo.ErrLineNotFound
}

func (r *AppointmentRepo) CancelLine(ctx context.Context, appointmentID, lineID int64) error {
	if err := r.s.fail("CancelLine"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.st.appointments[appointmentID]
	if !ok {
		return appointmentRepo.ErrLineNotFound
	}
	for _, l := range stored.Lines {
		if l.ID == lineID {
			now := time.Now()
			l.Status = domain.LineStatusCancelled
			l.CancelledAt = &now
			return nil
		}
	}
	return appointmentRepo.ErrLineNotFound
}

func (r *AppointmentRepo) ListOccupancies(ctx context.Context, filter domain.OccupancyFilter) ([]domain.Occupancy, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]domain.Occupancy, 0)
	for _, a := range r.s.st.appointments {
		if !a.OccupiesResources() || !domain.SameDate(a.ServiceDate, filter.Date) {
			continue
		}
		for _, l := range a.Lines {
			if !l.IsActive() {
				continue
			}
			if len(filter.ServiceIDs) > 0 && !containsID(filter.ServiceIDs, l.ServiceID) {
				continue
			}
			if len(filter.EmployeeIDs) > 0 && !containsID(filter.EmployeeIDs, l.EmployeeID) {
				continue
			}
			if containsID(filter.ExcludeLineIDs, l.ID) {
				continue
			}
			result = append(result, domain.Occupancy{
				LineID:        l.ID,
				AppointmentID: a.ID,
				ServiceID:     l.ServiceID,
				EmployeeID:    l.EmployeeID,
				Date:          a.ServiceDate,
				Start:         l.StartTime,
				End:           l.EndTime,
			})
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].Start.Equal(result[j].Start) {
			return result[i].Start.IsBefore(result[j].Start)
		}
		return result[i].LineID < result[j].LineID
	})
	return result, nil
}

func matches(a *domain.Appointment, f domain.AppointmentFilter) bool {
	if f.ClientID != nil && a.ClientID != *f.ClientID {
		return false
	}
	if f.Status != nil && a.Status != *f.Status {
		return false
	}
	if f.DateFrom != nil && a.ServiceDate.Before(domain.DateOnly(*f.DateFrom)) {
		return false
	}
	if f.DateTo != nil && a.ServiceDate.After(domain.DateOnly(*f.DateTo)) {
		return false
	}
	if f.EmployeeID != nil && !hasLine(a, func(l *domain.ServiceLine) bool { return l.EmployeeID == *f.EmployeeID }) {
		return false
	}
	if f.ServiceID != nil && !hasLine(a, func(l *domain.ServiceLine) bool { return l.ServiceID == *f.ServiceID }) {
		return false
	}
	return true
}

func hasLine(a *domain.Appointment, pred func(*domain.ServiceLine) bool) bool {
	for _, l := range a.Lines {
		if pred(l) {
			return true
		}
	}
	return false
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
