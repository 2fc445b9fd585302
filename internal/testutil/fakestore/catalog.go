package fakestore

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	shiftRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/shift"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// CatalogRepo mirrors catalog.Repository
type CatalogRepo struct {
	s *Store
}

func (r *CatalogRepo) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	svc, ok := r.s.st.services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	cp := *svc
	return &cp, nil
}

func (r *CatalogRepo) GetEmployee(ctx context.Context, id int64) (*domain.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.st.employees[id]
	if !ok {
		return nil, catalogRepo.ErrEmployeeNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *CatalogRepo) ListActiveStaff(ctx context.Context, ids []int64) ([]*domain.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]*domain.Employee, 0)
	for _, e := range r.s.st.employees {
		if !e.Active || !e.RoleIsStaff {
			continue
		}
		if len(ids) > 0 && !containsID(ids, e.ID) {
			continue
		}
		cp := *e
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// ShiftRepo mirrors shift.Repository
type ShiftRepo struct {
	s *Store
}

func (r *ShiftRepo) Create(ctx context.Context, sh *domain.Shift) (*domain.Shift, error) {
	if err := r.s.fail("CreateShift"); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if !sh.EntryTime.IsBefore(sh.ExitTime) {
		return nil, shiftRepo.ErrInvalidWindow
	}
	for _, existing := range r.s.st.shifts {
		if existing.EmployeeID == sh.EmployeeID && domain.SameDate(existing.ShiftDate, sh.ShiftDate) {
			return nil, shiftRepo.ErrDuplicateShift
		}
	}

	r.s.st.nextShift++
	sh.ID = r.s.st.nextShift
	sh.ShiftDate = domain.DateOnly(sh.ShiftDate)
	cp := *sh
	r.s.st.shifts = append(r.s.st.shifts, &cp)
	return sh, nil
}

func (r *ShiftRepo) GetByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) (*domain.Shift, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, sh := range r.s.st.shifts {
		if sh.EmployeeID == employeeID && domain.SameDate(sh.ShiftDate, date) {
			cp := *sh
			return &cp, nil
		}
	}
	return nil, shiftRepo.ErrShiftNotFound
}

func (r *ShiftRepo) ListCovering(ctx context.Context, date time.Time, start, end types.TimeString) ([]*domain.Shift, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]*domain.Shift, 0)
	for _, sh := range r.s.st.shifts {
		if domain.SameDate(sh.ShiftDate, date) && sh.Covers(start, end) {
			cp := *sh
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].EmployeeID < result[j].EmployeeID })
	return result, nil
}
