package find_available_employees

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// UseCase use case поиска сотрудников, свободных в окне.
// Занятость всегда считается по сотруднику, независимо от ключа конфликтов записей.
type UseCase struct {
	shiftRepo    ShiftRepository
	employeeRepo EmployeeRepository
	busyChecker  BusyChecker
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	shiftRepo ShiftRepository,
	employeeRepo EmployeeRepository,
	busyChecker BusyChecker,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		shiftRepo:    shiftRepo,
		employeeRepo: employeeRepo,
		busyChecker:  busyChecker,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute возвращает активных сотрудников, чья смена на дату целиком покрывает
// [StartTime, EndTime) и у которых нет пересекающихся строк
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("FindAvailableEmployees: date=%s, window=%s-%s",
		req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("FindAvailableEmployees: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)
	resp := &Response{
		Date:      date.Format(domain.DateFormat),
		StartTime: req.StartTime.String(),
		EndTime:   req.EndTime.String(),
		Employees: []Employee{},
	}

	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		// 1. Смены, покрывающие окно
		shifts, err := uc.shiftRepo.ListCovering(txCtx, date, req.StartTime, req.EndTime)
		if err != nil {
			uc.logger.Error("FindAvailableEmployees: failed to list shifts: %v", err)
			return fmt.Errorf("%w: failed to list shifts: %v", ErrInternal, err)
		}
		if len(shifts) == 0 {
			return nil
		}

		shiftByEmployee := make(map[int64]*domain.Shift, len(shifts))
		ids := make([]int64, 0, len(shifts))
		for _, s := range shifts {
			shiftByEmployee[s.EmployeeID] = s
			ids = append(ids, s.EmployeeID)
		}

		// 2. Только активные сотрудники
		staff, err := uc.employeeRepo.ListActiveStaff(txCtx, ids)
		if err != nil {
			uc.logger.Error("FindAvailableEmployees: failed to list staff: %v", err)
			return fmt.Errorf("%w: failed to list staff: %v", ErrInternal, err)
		}
		if len(staff) == 0 {
			return nil
		}

		// 3. Исключаем занятых
		busy, err := uc.busyChecker.BusyResources(txCtx, date, ids, req.StartTime, req.EndTime)
		if err != nil {
			uc.logger.Error("FindAvailableEmployees: failed to check occupancy: %v", err)
			return fmt.Errorf("%w: failed to check occupancy: %v", ErrInternal, err)
		}

		for _, e := range staff {
			if len(busy[e.ID]) > 0 {
				continue
			}
			shift := shiftByEmployee[e.ID]
			resp.Employees = append(resp.Employees, Employee{
				ID:         e.ID,
				FullName:   e.FullName,
				ShiftEntry: shift.EntryTime.String(),
				ShiftExit:  shift.ExitTime.String(),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("FindAvailableEmployees: %d employees available", len(resp.Employees))
	return resp, nil
}
