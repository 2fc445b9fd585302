// Package fakestore is an in-memory stand-in for the PostgreSQL repositories and the
// transaction manager. Transactions snapshot the whole store and restore it on error,
// so all-or-nothing behaviour can be asserted without a database.
package fakestore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type txKey struct{}

type state struct {
	appointments map[int64]*domain.Appointment
	services     map[int64]*domain.Service
	employees    map[int64]*domain.Employee
	shifts       []*domain.Shift
	nextAppt     int64
	nextLine     int64
	nextShift    int64
}

// Store holds the data; Appointments, Catalog and Shifts expose repository views over it.
// Store itself is the transaction manager.
type Store struct {
	mu sync.Mutex
	st state

	// Fail, if set, is consulted before every write; a non-nil result aborts the call.
	Fail func(op string) error

	// Commits and Rollbacks count finished top-level transactions
	Commits   int
	Rollbacks int
}

// New creates an empty store
func New() *Store {
	return &Store{
		st: state{
			appointments: make(map[int64]*domain.Appointment),
			services:     make(map[int64]*domain.Service),
			employees:    make(map[int64]*domain.Employee),
		},
	}
}

// Appointments repository view for appointments and lines
func (s *Store) Appointments() *AppointmentRepo {
	return &AppointmentRepo{s: s}
}

// Catalog repository view for services and employees
func (s *Store) Catalog() *CatalogRepo {
	return &CatalogRepo{s: s}
}

// Shifts repository view for employee shifts
func (s *Store) Shifts() *ShiftRepo {
	return &ShiftRepo{s: s}
}

// AddService registers a catalog service
func (s *Store) AddService(id int64, name string, minutes int, price string, active bool) *domain.Service {
	s.mu.Lock()
	defer s.mu.Unlock()
	svc := &domain.Service{
		ID:              id,
		Name:            name,
		DurationMinutes: minutes,
		UnitPrice:       decimal.RequireFromString(price),
		Active:          active,
	}
	s.st.services[id] = svc
	return svc
}

// AddEmployee registers a user
func (s *Store) AddEmployee(id int64, name string, active, staff bool) *domain.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := &domain.Employee{ID: id, FullName: name, Active: active, RoleIsStaff: staff}
	s.st.employees[id] = e
	return e
}

// AddShift registers a working window and panics on a duplicate
func (s *Store) AddShift(employeeID int64, date time.Time, entry, exit string) {
	_, err := s.Shifts().Create(context.Background(), &domain.Shift{
		EmployeeID: employeeID,
		ShiftDate:  date,
		EntryTime:  types.MustTimeString(entry),
		ExitTime:   types.MustTimeString(exit),
	})
	if err != nil {
		panic(err)
	}
}

// SetStatus forces an appointment status, bypassing the state machine
func (s *Store) SetStatus(id int64, status domain.AppointmentStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.st.appointments[id]; ok {
		a.Status = status
	}
}

// AppointmentCount number of stored appointment headers
func (s *Store) AppointmentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.appointments)
}

// LineCount number of stored lines across all appointments
func (s *Store) LineCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, a := range s.st.appointments {
		n += len(a.Lines)
	}
	return n
}

// Stored returns a copy of the stored appointment or nil
func (s *Store) Stored(id int64) *domain.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.st.appointments[id]
	if !ok {
		return nil
	}
	return copyAppointment(a)
}

func (s *Store) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.run(ctx, fn)
}

func (s *Store) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.run(ctx, fn)
}

func (s *Store) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.run(ctx, fn)
}

func (s *Store) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	s.mu.Lock()
	snapshot := s.st.clone()
	s.mu.Unlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.mu.Lock()
		s.st = snapshot
		s.Rollbacks++
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.Commits++
	s.mu.Unlock()
	return nil
}

func (s *Store) fail(op string) error {
	if s.Fail == nil {
		return nil
	}
	return s.Fail(op)
}

func (st state) clone() state {
	c := state{
		appointments: make(map[int64]*domain.Appointment, len(st.appointments)),
		services:     make(map[int64]*domain.Service, len(st.services)),
		employees:    make(map[int64]*domain.Employee, len(st.employees)),
		shifts:       make([]*domain.Shift, 0, len(st.shifts)),
		nextAppt:     st.nextAppt,
		nextLine:     st.nextLine,
		nextShift:    st.nextShift,
	}
	for id, a := range st.appointments {
		c.appointments[id] = copyAppointment(a)
	}
	for id, v := range st.services {
		cp := *v
		c.services[id] = &cp
	}
	for id, v := range st.employees {
		cp := *v
		c.employees[id] = &cp
	}
	for _, v := range st.shifts {
		cp := *v
		c.shifts = append(c.shifts, &cp)
	}
	return c
}

func copyAppointment(a *domain.Appointment) *domain.Appointment {
	cp := *a
	cp.Lines = make([]*domain.ServiceLine, 0, len(a.Lines))
	for _, l := range a.Lines {
		lc := *l
		cp.Lines = append(cp.Lines, &lc)
	}
	return &cp
}

func sortLines(lines []*domain.ServiceLine) {
	sort.SliceStable(lines, func(i, j int) bool {
		if !lines[i].StartTime.Equal(lines[j].StartTime) {
			return lines[i].StartTime.IsBefore(lines[j].StartTime)
		}
		return lines[i].ID < lines[j].ID
	})
}
