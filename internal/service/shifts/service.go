package shifts

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	shiftRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/shift"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Service ведёт смены сотрудников. Записи смены только читают.
type Service struct {
	shiftRepo    ShiftRepository
	employeeRepo EmployeeRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса смен
func NewService(shiftRepo ShiftRepository, employeeRepo EmployeeRepository, logger Logger) *Service {
	return &Service{
		shiftRepo:    shiftRepo,
		employeeRepo: employeeRepo,
		logger:       logger,
	}
}

// Create регистрирует рабочее окно сотрудника на дату
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*ShiftResponse, error) {
	entry, err := types.NewTimeStringFromString(req.EntryTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid entryTime: %v", domain.ErrValidation, err)
	}
	exit, err := types.NewTimeStringFromString(req.ExitTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid exitTime: %v", domain.ErrValidation, err)
	}
	if !entry.IsBefore(exit) {
		return nil, fmt.Errorf("%w: exitTime must be after entryTime", domain.ErrValidation)
	}

	employee, err := s.employeeRepo.GetEmployee(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrEmployeeNotFound) {
			return nil, &domain.ReferenceError{Entity: "employee", ID: req.EmployeeID}
		}
		s.logger.Error("Create: failed to get employee id=%d: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: Create - get employee: %v", ErrInternal, err)
	}
	if !employee.CanPerformServices() {
		s.logger.Warn("Create: employee id=%d is inactive or not staff", req.EmployeeID)
		return nil, &domain.ReferenceError{Entity: "employee", ID: req.EmployeeID}
	}

	created, err := s.shiftRepo.Create(ctx, &domain.Shift{
		EmployeeID: req.EmployeeID,
		ShiftDate:  domain.DateOnly(req.ShiftDate),
		EntryTime:  entry,
		ExitTime:   exit,
	})
	if err != nil {
		switch {
		case errors.Is(err, shiftRepo.ErrDuplicateShift):
			s.logger.Warn("Create: employee id=%d already has a shift on %s",
				req.EmployeeID, req.ShiftDate.Format(domain.DateFormat))
			return nil, ErrDuplicateShift
		case errors.Is(err, shiftRepo.ErrInvalidWindow):
			return nil, fmt.Errorf("%w: exitTime must be after entryTime", domain.ErrValidation)
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: shift id=%d for employee id=%d on %s %s-%s",
		created.ID, created.EmployeeID, created.ShiftDate.Format(domain.DateFormat), created.EntryTime, created.ExitTime)
	return FromDomainShift(created), nil
}
